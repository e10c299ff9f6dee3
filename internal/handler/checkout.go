package handler

import (
	"context"
	"errors"
	"fmt"

	"shopbot/internal/domain"
	"shopbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes a free-text message into whichever wizard the user
// is in. The raw message is always deleted; answers show up inside the
// anchor instead.
func (h *Handler) handleText(c tele.Context) error {
	ctx, cancel := reqCtx()
	defer cancel()
	userID := c.Sender().ID

	defer h.renderer.DeleteUserMessage(c.Chat().ID, c.Message().ID)

	sess, err := h.checkout.Current(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load session", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	if sess == nil {
		// stray text outside any conversation
		return nil
	}

	if service.IsAdminStep(sess.Step) && h.isAdmin(c) {
		return h.adminText(ctx, c, c.Text())
	}
	if service.IsCheckoutStep(sess.Step) {
		return h.checkoutText(ctx, c, c.Text())
	}
	return nil
}

func (h *Handler) checkoutText(ctx context.Context, c tele.Context, text string) error {
	userID := c.Sender().ID

	sess, err := h.checkout.Input(ctx, userID, text)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return h.renderCheckoutStep(ctx, c, sess, "⚠️ "+verr.Hint)
	case err != nil:
		h.logger.Error("failed to process checkout input", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	case sess == nil:
		return nil
	}
	return h.renderCheckoutStep(ctx, c, sess, "")
}

// checkoutStart begins the checkout conversation at the name step
func (h *Handler) checkoutStart(ctx context.Context, c tele.Context) error {
	sess, err := h.checkout.Start(ctx, c.Sender().ID)
	if errors.Is(err, domain.ErrCartEmpty) {
		return alert(c, msgCartEmpty)
	}
	if err != nil {
		h.logger.Error("failed to start checkout", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	return h.renderCheckoutStep(ctx, c, sess, "")
}

// renderCheckoutStep draws the prompt for the session's current step.
// An emptied cart aborts the flow no matter which step it is on.
func (h *Handler) renderCheckoutStep(ctx context.Context, c tele.Context, sess *domain.Session, hint string) error {
	if sess.Step == domain.StepConfirm {
		return h.renderConfirm(ctx, c)
	}

	items, err := h.checkout.Cart(ctx, c.Sender().ID)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if len(items) == 0 {
		if err := h.checkout.Cancel(ctx, c.Sender().ID); err != nil {
			h.logger.Warn("failed to cancel empty checkout", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		}
		return h.showCart(ctx, c, msgCartEmpty)
	}

	var text string
	var markup *tele.ReplyMarkup

	switch sess.Step {
	case domain.StepDelivery:
		text = "🚚 How should we deliver your order?"
		markup = deliveryMarkup()
	case domain.StepComment:
		text = stepPrompt(sess.Step)
		markup = commentMarkup()
	default:
		text = stepPrompt(sess.Step)
		markup = cancelMarkup()
	}

	if hint != "" {
		text = hint + "\n\n" + text
	}
	return h.render(ctx, c, text, markup)
}

// renderConfirm draws the summary screen from the live cart
func (h *Handler) renderConfirm(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID

	sum, err := h.checkout.Summary(ctx, userID)
	if errors.Is(err, domain.ErrSessionExpired) {
		return h.showCart(ctx, c, msgSessionLost)
	}
	if err != nil {
		h.logger.Error("failed to build order summary", zap.Int64("user_id", userID), zap.Error(err))
		return respond(c, msgTryAgain)
	}

	if len(sum.Items) == 0 {
		// cart emptied mid-checkout, nothing left to confirm
		if err := h.checkout.Cancel(ctx, userID); err != nil {
			h.logger.Warn("failed to cancel empty checkout", zap.Int64("user_id", userID), zap.Error(err))
		}
		return h.showCart(ctx, c, msgCartEmpty)
	}
	return h.render(ctx, c, summaryText(sum), confirmMarkup())
}

// checkoutDelivery handles a delivery-method button tap
func (h *Handler) checkoutDelivery(ctx context.Context, c tele.Context, method string) error {
	sess, err := h.checkout.SelectDelivery(ctx, c.Sender().ID, method)
	if err != nil {
		h.logger.Error("failed to select delivery", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if sess == nil {
		// unknown token or stale button, nothing changes
		return respond(c, "")
	}
	return h.renderCheckoutStep(ctx, c, sess, "")
}

func (h *Handler) checkoutSkipComment(ctx context.Context, c tele.Context) error {
	sess, err := h.checkout.SkipComment(ctx, c.Sender().ID)
	if err != nil {
		h.logger.Error("failed to skip comment", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if sess == nil {
		return respond(c, "")
	}
	return h.renderCheckoutStep(ctx, c, sess, "")
}

// checkoutEdit jumps from the summary back to one field's step
func (h *Handler) checkoutEdit(ctx context.Context, c tele.Context, field string) error {
	sess, err := h.checkout.EditField(ctx, c.Sender().ID, field)
	if err != nil {
		h.logger.Error("failed to start field edit", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if sess == nil {
		return respond(c, "")
	}
	return h.renderCheckoutStep(ctx, c, sess, "")
}

// checkoutConfirm commits the order. Every outcome ends the session;
// recoverable failures send the user back to the cart.
func (h *Handler) checkoutConfirm(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID

	orderID, total, err := h.checkout.Confirm(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return h.showCart(ctx, c, msgSessionLost)
	case errors.Is(err, domain.ErrCartEmpty):
		return h.showCart(ctx, c, msgCartEmpty)
	case errors.Is(err, domain.ErrStockNotEnough), errors.Is(err, domain.ErrProductInactive):
		return h.showCart(ctx, c, msgStockChanged)
	case err != nil:
		h.logger.Error("failed to commit order", zap.Int64("user_id", userID), zap.Error(err))
		return respond(c, msgTryAgain)
	}

	h.notifyNewOrder(ctx, orderID)

	text := fmt.Sprintf("🎉 Order #%d placed!\n\nTotal: %s\n\nHow would you like to pay?", orderID, formatMoney(total))
	return h.render(ctx, c, text, paymentMarkup(orderID))
}

// checkoutCancel drops the conversation and returns to the menu
func (h *Handler) checkoutCancel(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID

	if err := h.checkout.Cancel(ctx, userID); err != nil {
		h.logger.Error("failed to cancel checkout", zap.Int64("user_id", userID), zap.Error(err))
		return respond(c, msgTryAgain)
	}

	text := "🏠 Main menu\n\nWhat would you like to do?"
	if err := h.renderer.Render(ctx, c.Chat().ID, userID, text, menuMarkup(h.isAdmin(c))); err != nil {
		h.logger.Error("failed to render menu", zap.Int64("user_id", userID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	return respond(c, "Checkout canceled")
}
