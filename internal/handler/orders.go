package handler

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// showOrders lists the user's latest orders
func (h *Handler) showOrders(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID

	orders, err := h.orders.ListForUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Int64("user_id", userID), zap.Error(err))
		return respond(c, msgTryAgain)
	}

	if len(orders) == 0 {
		return h.render(ctx, c, "📦 You have no orders yet.", inline(tele.Row{btnCatalog}, tele.Row{btnMenu}))
	}
	return h.render(ctx, c, "📦 Your orders:", ordersMarkup(orders))
}

// showOrder draws one order with its snapshotted lines
func (h *Handler) showOrder(ctx context.Context, c tele.Context, orderID int64) error {
	userID := c.Sender().ID

	order, lines, err := h.orders.Detail(ctx, userID, orderID)
	if err != nil {
		h.logger.Error("failed to load order",
			zap.Int64("user_id", userID),
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
		return respond(c, msgTryAgain)
	}
	if order == nil {
		return alert(c, "Order not found")
	}

	return h.render(ctx, c, orderText(order, lines), inline(tele.Row{btn("⬅️ Back", "orders")}, tele.Row{btnMenu}))
}

// orderPay records the chosen payment method. Manual transfer shows the
// payment details; online payment is a stub until a provider is wired.
func (h *Handler) orderPay(ctx context.Context, c tele.Context, orderID int64, method string) error {
	userID := c.Sender().ID

	switch method {
	case "manual":
		if err := h.orders.RecordPaymentMethod(ctx, userID, orderID, "manual"); err != nil {
			h.logger.Error("failed to record payment method",
				zap.Int64("user_id", userID),
				zap.Int64("order_id", orderID),
				zap.Error(err),
			)
			return respond(c, msgTryAgain)
		}
		text := fmt.Sprintf(
			"🧾 Order #%d\n\nTransfer the total using the details below and we will confirm your payment shortly.\n\n%s",
			orderID, h.cfg.PaymentDetails(orderID),
		)
		return h.render(ctx, c, text, inline(tele.Row{btnMyOrders}, tele.Row{btnMenu}))

	case "online":
		return alert(c, "Online payment is coming soon, please use a transfer for now")
	}
	return respond(c, "")
}
