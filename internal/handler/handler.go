package handler

import (
	"context"
	"time"

	"shopbot/internal/config"
	"shopbot/internal/service"
	"shopbot/internal/ui"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions. Every customer screen is drawn
// through the single-anchor renderer so each user sees exactly one live
// message.
type Handler struct {
	bot      *tele.Bot
	cfg      *config.Config
	renderer *ui.Renderer
	checkout *service.CheckoutService
	cart     *service.CartService
	catalog  *service.CatalogService
	orders   *service.OrdersService
	admin    *service.AdminService
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	cfg *config.Config,
	renderer *ui.Renderer,
	checkout *service.CheckoutService,
	cart *service.CartService,
	catalog *service.CatalogService,
	orders *service.OrdersService,
	admin *service.AdminService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		cfg:      cfg,
		renderer: renderer,
		checkout: checkout,
		cart:     cart,
		catalog:  catalog,
		orders:   orders,
		admin:    admin,
		logger:   logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/admin", h.handleAdminCommand)

	// Text messages feed the checkout and admin wizards
	h.bot.Handle(tele.OnText, h.handleText)

	// All inline buttons carry plain callback data decoded in one place
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// updateTimeout bounds the database work done for a single update
const updateTimeout = 10 * time.Second

func reqCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), updateTimeout)
}

func (h *Handler) isAdmin(c tele.Context) bool {
	return c.Sender().ID == h.cfg.AdminID
}

// render draws a screen into the user's anchor and acknowledges the
// callback when there is one
func (h *Handler) render(ctx context.Context, c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if err := h.renderer.Render(ctx, c.Chat().ID, c.Sender().ID, text, markup); err != nil {
		h.logger.Error("failed to render screen",
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		return respond(c, msgTryAgain)
	}
	return respond(c, "")
}

// respond acknowledges a callback query, optionally with a toast.
// Text updates have nothing to acknowledge.
func respond(c tele.Context, notice string) error {
	if c.Callback() == nil {
		return nil
	}
	if notice == "" {
		return c.Respond()
	}
	return c.Respond(&tele.CallbackResponse{Text: notice})
}

// alert acknowledges a callback with a popup the user must dismiss
func alert(c tele.Context, text string) error {
	if c.Callback() == nil {
		return nil
	}
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// handleStart handles /start: any in-flight conversation is dropped and
// the main menu becomes the anchor
func (h *Handler) handleStart(c tele.Context) error {
	ctx, cancel := reqCtx()
	defer cancel()

	userID := c.Sender().ID
	h.logger.Info("user started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if err := h.checkout.Cancel(ctx, userID); err != nil {
		h.logger.Warn("failed to clear session on start", zap.Error(err), zap.Int64("user_id", userID))
	}

	// The /start message itself is cleaned up like any other text input
	if c.Message() != nil {
		h.renderer.DeleteUserMessage(c.Chat().ID, c.Message().ID)
	}

	return h.showMenu(ctx, c)
}
