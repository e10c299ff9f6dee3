package handler

import (
	"context"
	"errors"

	"shopbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// showCart draws the cart screen, optionally with a toast
func (h *Handler) showCart(ctx context.Context, c tele.Context, notice string) error {
	items, err := h.cart.Items(ctx, c.Sender().ID)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}

	if err := h.renderer.Render(ctx, c.Chat().ID, c.Sender().ID, cartText(items), cartMarkup(items)); err != nil {
		h.logger.Error("failed to render cart", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	return respond(c, notice)
}

func (h *Handler) cartAdd(ctx context.Context, c tele.Context, productID int64) error {
	err := h.cart.AddOne(ctx, c.Sender().ID, productID)
	switch {
	case errors.Is(err, domain.ErrStockNotEnough):
		return alert(c, "Not enough stock for one more")
	case errors.Is(err, domain.ErrProductInactive):
		return alert(c, "This product is no longer available")
	case err != nil:
		h.logger.Error("failed to add cart line",
			zap.Int64("user_id", c.Sender().ID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return respond(c, msgTryAgain)
	}
	return h.showCart(ctx, c, "Added ✅")
}

func (h *Handler) cartRemove(ctx context.Context, c tele.Context, productID int64) error {
	if err := h.cart.RemoveOne(ctx, c.Sender().ID, productID); err != nil {
		h.logger.Error("failed to remove cart line",
			zap.Int64("user_id", c.Sender().ID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return respond(c, msgTryAgain)
	}
	return h.showCart(ctx, c, "")
}

func (h *Handler) cartClear(ctx context.Context, c tele.Context) error {
	if err := h.cart.Clear(ctx, c.Sender().ID); err != nil {
		h.logger.Error("failed to clear cart", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	return h.showCart(ctx, c, "Cart cleared")
}
