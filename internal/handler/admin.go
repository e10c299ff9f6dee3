package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopbot/internal/domain"
	"shopbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const adminOrdersLimit = 10

// handleAdminCommand handles /admin. Anyone else typing it is ignored.
func (h *Handler) handleAdminCommand(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}

	ctx, cancel := reqCtx()
	defer cancel()

	if c.Message() != nil {
		h.renderer.DeleteUserMessage(c.Chat().ID, c.Message().ID)
	}
	return h.showAdminHome(ctx, c)
}

// handleAdminCallback dispatches the admin command kinds. The caller
// has already checked the sender is the admin.
func (h *Handler) handleAdminCallback(ctx context.Context, c tele.Context, cmd domain.Command) (bool, error) {
	userID := c.Sender().ID

	switch cmd.Kind {
	case domain.CmdAdmin:
		return true, h.showAdminHome(ctx, c)

	case domain.CmdAdminCategories:
		return true, h.showAdminCategories(ctx, c)

	case domain.CmdAdminCategoryNew:
		if err := h.admin.BeginCategoryCreate(ctx, userID); err != nil {
			h.logger.Error("failed to start category wizard", zap.Error(err))
			return true, respond(c, msgTryAgain)
		}
		return true, h.renderAdminPrompt(ctx, c, domain.StepAdminCategoryName)

	case domain.CmdAdminCategoryRename:
		if err := h.admin.BeginCategoryRename(ctx, userID, cmd.ID); err != nil {
			h.logger.Error("failed to start rename wizard", zap.Int64("category_id", cmd.ID), zap.Error(err))
			return true, respond(c, msgTryAgain)
		}
		return true, h.renderAdminPrompt(ctx, c, domain.StepAdminCategoryRename)

	case domain.CmdAdminCategoryToggle:
		if err := h.admin.ToggleCategory(ctx, cmd.ID); err != nil {
			h.logger.Error("failed to toggle category", zap.Int64("category_id", cmd.ID), zap.Error(err))
			return true, respond(c, msgTryAgain)
		}
		return true, h.showAdminCategory(ctx, c, cmd.ID)

	case domain.CmdAdminProducts:
		return true, h.showAdminCategory(ctx, c, cmd.ID)

	case domain.CmdAdminProductNew:
		if err := h.admin.BeginProductCreate(ctx, userID, cmd.ID); err != nil {
			h.logger.Error("failed to start product wizard", zap.Int64("category_id", cmd.ID), zap.Error(err))
			return true, respond(c, msgTryAgain)
		}
		return true, h.renderAdminPrompt(ctx, c, domain.StepAdminProductTitle)

	case domain.CmdAdminProductShow:
		return true, h.showAdminProduct(ctx, c, cmd.ID)

	case domain.CmdAdminProductEdit:
		if err := h.admin.BeginProductEdit(ctx, userID, cmd.ID, cmd.Arg); err != nil {
			h.logger.Error("failed to start product edit",
				zap.Int64("product_id", cmd.ID),
				zap.String("field", cmd.Arg),
				zap.Error(err),
			)
			return true, respond(c, msgTryAgain)
		}
		return true, h.renderAdminPrompt(ctx, c, domain.StepAdminProductValue)

	case domain.CmdAdminProductToggle:
		if err := h.admin.ToggleProduct(ctx, cmd.ID); err != nil {
			h.logger.Error("failed to toggle product", zap.Int64("product_id", cmd.ID), zap.Error(err))
			return true, respond(c, msgTryAgain)
		}
		return true, h.showAdminProduct(ctx, c, cmd.ID)

	case domain.CmdAdminOrders:
		return true, h.showAdminOrders(ctx, c)

	case domain.CmdAdminOrder:
		return true, h.showAdminOrder(ctx, c, cmd.ID, "")

	case domain.CmdAdminOrderStatus:
		if err := h.admin.SetOrderStatus(ctx, cmd.ID, domain.OrderStatus(cmd.Arg)); err != nil {
			h.logger.Error("failed to set order status",
				zap.Int64("order_id", cmd.ID),
				zap.String("status", cmd.Arg),
				zap.Error(err),
			)
			return true, respond(c, msgTryAgain)
		}
		return true, h.showAdminOrder(ctx, c, cmd.ID, "Status updated")

	case domain.CmdAdminStats:
		return true, h.showAdminStats(ctx, c)
	}

	return false, nil
}

// adminText feeds a text answer into the current admin wizard
func (h *Handler) adminText(ctx context.Context, c tele.Context, text string) error {
	userID := c.Sender().ID

	res, err := h.admin.Input(ctx, userID, text)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		sess, serr := h.checkout.Current(ctx, userID)
		if serr != nil || sess == nil {
			return nil
		}
		return h.renderAdminPromptHint(ctx, c, sess.Step, "⚠️ "+verr.Hint)
	case err != nil:
		h.logger.Error("failed to process admin input", zap.Int64("user_id", userID), zap.Error(err))
		return h.showAdminHome(ctx, c)
	case res == nil:
		return nil
	}

	if !res.Done {
		return h.renderAdminPrompt(ctx, c, res.Step)
	}
	if res.ProductID != 0 {
		return h.showAdminProduct(ctx, c, res.ProductID)
	}
	return h.showAdminCategories(ctx, c)
}

func (h *Handler) renderAdminPrompt(ctx context.Context, c tele.Context, step domain.Step) error {
	return h.renderAdminPromptHint(ctx, c, step, "")
}

func (h *Handler) renderAdminPromptHint(ctx context.Context, c tele.Context, step domain.Step, hint string) error {
	var text string
	switch step {
	case domain.StepAdminCategoryName:
		text = "Send the new category name:"
	case domain.StepAdminCategoryRename:
		text = "Send the new name for this category:"
	case domain.StepAdminProductTitle:
		text = "Send the product title:"
	case domain.StepAdminProductPrice:
		text = "Send the price, e.g. 199.99:"
	case domain.StepAdminProductStock:
		text = "Send the stock quantity:"
	case domain.StepAdminProductValue:
		text = "Send the new value:"
	default:
		return h.showAdminHome(ctx, c)
	}

	if hint != "" {
		text = hint + "\n\n" + text
	}
	return h.render(ctx, c, text, inline(tele.Row{btn("❌ Cancel", "adm")}))
}

// showAdminHome draws the admin panel root. Opening it also drops any
// half-finished wizard so the cancel button lands here.
func (h *Handler) showAdminHome(ctx context.Context, c tele.Context) error {
	if err := h.admin.CancelWizard(ctx, c.Sender().ID); err != nil {
		h.logger.Warn("failed to cancel admin wizard", zap.Error(err))
	}

	markup := inline(
		tele.Row{btn("📁 Categories", "adm:cats")},
		tele.Row{btn("📦 Orders", "adm:orders"), btn("📊 Stats", "adm:stats")},
		tele.Row{btnMenu},
	)
	return h.render(ctx, c, "🛠 Admin panel", markup)
}

func activeMark(active bool) string {
	if active {
		return "✅"
	}
	return "🚫"
}

func (h *Handler) showAdminCategories(ctx context.Context, c tele.Context) error {
	cats, err := h.admin.Categories(ctx)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return respond(c, msgTryAgain)
	}

	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(cats)+2)
	for _, cat := range cats {
		label := fmt.Sprintf("%s %s", activeMark(cat.Active), cat.Name)
		rows = append(rows, m.Row(btn(label, fmt.Sprintf("adm:prods:%d", cat.ID))))
	}
	rows = append(rows,
		m.Row(btn("➕ New category", "adm:cat:new")),
		m.Row(btn("⬅️ Back", "adm")),
	)
	m.Inline(rows...)

	return h.render(ctx, c, "📁 Categories", m)
}

func (h *Handler) showAdminCategory(ctx context.Context, c tele.Context, categoryID int64) error {
	cat, err := h.admin.Category(ctx, categoryID)
	if err != nil {
		h.logger.Error("failed to load category", zap.Int64("category_id", categoryID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if cat == nil {
		return alert(c, "Category not found")
	}

	products, err := h.admin.Products(ctx, categoryID)
	if err != nil {
		h.logger.Error("failed to list products", zap.Int64("category_id", categoryID), zap.Error(err))
		return respond(c, msgTryAgain)
	}

	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(products)+3)
	for _, p := range products {
		label := fmt.Sprintf("%s %s — %s (%d)", activeMark(p.Active), p.Title, formatMoney(p.PriceCents), p.Stock)
		rows = append(rows, m.Row(btn(label, fmt.Sprintf("adm:prod:show:%d", p.ID))))
	}
	rows = append(rows,
		m.Row(btn("➕ New product", fmt.Sprintf("adm:prod:new:%d", categoryID))),
		m.Row(
			btn("✏️ Rename", fmt.Sprintf("adm:cat:ren:%d", categoryID)),
			btn(activeMark(!cat.Active)+" Toggle", fmt.Sprintf("adm:cat:tog:%d", categoryID)),
		),
		m.Row(btn("⬅️ Back", "adm:cats")),
	)
	m.Inline(rows...)

	text := fmt.Sprintf("📁 %s %s\n\n%d product(s)", activeMark(cat.Active), cat.Name, len(products))
	return h.render(ctx, c, text, m)
}

func (h *Handler) showAdminProduct(ctx context.Context, c tele.Context, productID int64) error {
	p, err := h.admin.Product(ctx, productID)
	if err != nil {
		h.logger.Error("failed to load product", zap.Int64("product_id", productID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if p == nil {
		return alert(c, "Product not found")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", activeMark(p.Active), p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	fmt.Fprintf(&b, "💰 %s\n📦 Stock: %d", formatMoney(p.PriceCents), p.Stock)

	edit := func(field string) string {
		return fmt.Sprintf("adm:prod:edit:%d:%s", p.ID, field)
	}
	markup := inline(
		tele.Row{btn("✏️ Title", edit("title")), btn("✏️ Description", edit("description"))},
		tele.Row{btn("✏️ Price", edit("price")), btn("✏️ Stock", edit("stock"))},
		tele.Row{btn(activeMark(!p.Active)+" Toggle", fmt.Sprintf("adm:prod:tog:%d", p.ID))},
		tele.Row{btn("⬅️ Back", fmt.Sprintf("adm:prods:%d", p.CategoryID))},
	)
	return h.render(ctx, c, b.String(), markup)
}

func (h *Handler) showAdminOrders(ctx context.Context, c tele.Context) error {
	orders, err := h.admin.Orders(ctx, adminOrdersLimit)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		return respond(c, msgTryAgain)
	}

	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(orders)+1)
	for _, o := range orders {
		label := fmt.Sprintf("#%d %s %s", o.ID, statusLabel(o.Status), formatMoney(o.TotalCents))
		rows = append(rows, m.Row(btn(label, fmt.Sprintf("adm:order:%d", o.ID))))
	}
	rows = append(rows, m.Row(btn("⬅️ Back", "adm")))
	m.Inline(rows...)

	text := "📦 Latest orders"
	if len(orders) == 0 {
		text = "📦 No orders yet"
	}
	return h.render(ctx, c, text, m)
}

func (h *Handler) showAdminOrder(ctx context.Context, c tele.Context, orderID int64, notice string) error {
	order, lines, err := h.admin.Order(ctx, orderID)
	if err != nil {
		h.logger.Error("failed to load order", zap.Int64("order_id", orderID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if order == nil {
		return alert(c, "Order not found")
	}

	m := &tele.ReplyMarkup{}
	statuses := []domain.OrderStatus{
		domain.StatusNew,
		domain.StatusPaid,
		domain.StatusInDelivery,
		domain.StatusDone,
		domain.StatusCanceled,
	}
	rows := []tele.Row{}
	var row tele.Row
	for _, s := range statuses {
		if s == order.Status {
			continue
		}
		row = append(row, btn(statusLabel(s), fmt.Sprintf("adm:status:%d:%s", orderID, s)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, m.Row(btn("⬅️ Back", "adm:orders")))
	m.Inline(rows...)

	if err := h.renderer.Render(ctx, c.Chat().ID, c.Sender().ID, adminOrderText(order, lines), m); err != nil {
		h.logger.Error("failed to render order", zap.Int64("order_id", orderID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	return respond(c, notice)
}

func adminOrderText(order *domain.Order, lines []domain.OrderLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d — %s\n", order.ID, statusLabel(order.Status))
	fmt.Fprintf(&b, "Placed: %s\n\n", order.CreatedAt.Format("02.01.2006 15:04"))
	for _, l := range lines {
		fmt.Fprintf(&b, "%s × %d = %s\n", l.Title, l.Qty, formatMoney(l.LineTotalCents))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\n", formatMoney(order.TotalCents))
	fmt.Fprintf(&b, "👤 %s\n📞 %s\n", order.Name, order.Phone)
	fmt.Fprintf(&b, "🚚 %s, %s, %s\n", deliveryLabel(order.DeliveryMethod), order.City, order.Address)
	if order.Comment != "" {
		fmt.Fprintf(&b, "💬 %s\n", order.Comment)
	}
	if order.PaymentMethod != "" {
		fmt.Fprintf(&b, "💳 %s\n", order.PaymentMethod)
	}
	return b.String()
}

func (h *Handler) showAdminStats(ctx context.Context, c tele.Context) error {
	stats, err := h.admin.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to load stats", zap.Error(err))
		return respond(c, msgTryAgain)
	}

	text := fmt.Sprintf("📊 Shop stats\n\nOrders: %d\nRevenue: %s", stats.OrdersCount, formatMoney(stats.RevenueCents))
	return h.render(ctx, c, text, inline(tele.Row{btn("⬅️ Back", "adm")}))
}

// notifyNewOrder sends the admin a plain message about a fresh order.
// This is out-of-band from the buyer's anchor and strictly best-effort.
func (h *Handler) notifyNewOrder(ctx context.Context, orderID int64) {
	order, lines, err := h.admin.Order(ctx, orderID)
	if err != nil || order == nil {
		h.logger.Warn("failed to load order for notification", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}

	text := "🔔 New order!\n\n" + adminOrderText(order, lines)
	if _, err := h.bot.Send(&tele.User{ID: h.cfg.AdminID}, text); err != nil {
		h.logger.Warn("failed to notify admin about new order",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}
}
