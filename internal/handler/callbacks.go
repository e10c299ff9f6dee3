package handler

import (
	"strings"
	"unicode"

	"shopbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries via one decoded command
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	ctx, cancel := reqCtx()
	defer cancel()

	data := cleanCallbackData(callback.Data)
	cmd := domain.ParseCommand(data)
	h.logger.Debug("processing callback",
		zap.String("data", data),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch cmd.Kind {
	case domain.CmdMenu:
		return h.showMenu(ctx, c)
	case domain.CmdCatalog:
		return h.showCatalog(ctx, c)
	case domain.CmdCategory:
		return h.showCategory(ctx, c, cmd.ID)
	case domain.CmdProduct:
		return h.showProduct(ctx, c, cmd.ID)

	case domain.CmdCartShow:
		return h.showCart(ctx, c, "")
	case domain.CmdCartAdd:
		return h.cartAdd(ctx, c, cmd.ID)
	case domain.CmdCartRemove:
		return h.cartRemove(ctx, c, cmd.ID)
	case domain.CmdCartClear:
		return h.cartClear(ctx, c)

	case domain.CmdCheckout:
		return h.checkoutStart(ctx, c)
	case domain.CmdDelivery:
		return h.checkoutDelivery(ctx, c, cmd.Arg)
	case domain.CmdCommentSkip:
		return h.checkoutSkipComment(ctx, c)
	case domain.CmdEditField:
		return h.checkoutEdit(ctx, c, cmd.Arg)
	case domain.CmdOrderConfirm:
		return h.checkoutConfirm(ctx, c)
	case domain.CmdOrderCancel:
		return h.checkoutCancel(ctx, c)

	case domain.CmdPay:
		return h.orderPay(ctx, c, cmd.ID, cmd.Arg)
	case domain.CmdMyOrders:
		return h.showOrders(ctx, c)
	case domain.CmdOrderShow:
		return h.showOrder(ctx, c, cmd.ID)
	case domain.CmdSupport:
		return h.showSupport(ctx, c)
	}

	if h.isAdmin(c) {
		if handled, err := h.handleAdminCallback(ctx, c, cmd); handled {
			return err
		}
	}

	h.logger.Warn("unhandled callback",
		zap.String("data", data),
		zap.Int64("user_id", c.Sender().ID),
	)
	return c.Respond()
}
