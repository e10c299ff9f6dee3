package handler

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// showMenu draws the main menu
func (h *Handler) showMenu(ctx context.Context, c tele.Context) error {
	text := "🏠 Main menu\n\nWhat would you like to do?"
	return h.render(ctx, c, text, menuMarkup(h.isAdmin(c)))
}

// showCatalog lists the active categories
func (h *Handler) showCatalog(ctx context.Context, c tele.Context) error {
	cats, err := h.catalog.Categories(ctx)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return respond(c, msgTryAgain)
	}

	if len(cats) == 0 {
		return h.render(ctx, c, "🛍 The catalog is empty for now, check back later.", menuMarkup(h.isAdmin(c)))
	}
	return h.render(ctx, c, "🛍 Catalog\n\nPick a category:", categoriesMarkup(cats))
}

// showCategory lists the active products of one category
func (h *Handler) showCategory(ctx context.Context, c tele.Context, categoryID int64) error {
	products, err := h.catalog.Products(ctx, categoryID)
	if err != nil {
		h.logger.Error("failed to list products",
			zap.Int64("category_id", categoryID),
			zap.Error(err),
		)
		return respond(c, msgTryAgain)
	}

	if len(products) == 0 {
		return h.render(ctx, c, "Nothing here yet.", inline(tele.Row{btn("⬅️ Back", "catalog"), btnMenu}))
	}
	return h.render(ctx, c, "Pick a product:", productsMarkup(products))
}

// showProduct draws one product card, with its photo when it has one
func (h *Handler) showProduct(ctx context.Context, c tele.Context, productID int64) error {
	p, err := h.catalog.Product(ctx, productID)
	if err != nil {
		h.logger.Error("failed to load product", zap.Int64("product_id", productID), zap.Error(err))
		return respond(c, msgTryAgain)
	}
	if p == nil || !p.Active {
		return alert(c, "This product is no longer available")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	fmt.Fprintf(&b, "💰 %s\n", formatMoney(p.PriceCents))
	if p.Stock > 0 {
		fmt.Fprintf(&b, "📦 In stock: %d", p.Stock)
	} else {
		b.WriteString("📦 Out of stock")
	}

	if p.PhotoFileID != "" {
		if err := h.renderer.RenderPhoto(ctx, c.Chat().ID, c.Sender().ID, p.PhotoFileID, b.String(), productMarkup(p)); err != nil {
			h.logger.Error("failed to render product photo",
				zap.Int64("product_id", productID),
				zap.Error(err),
			)
			return respond(c, msgTryAgain)
		}
		return respond(c, "")
	}
	return h.render(ctx, c, b.String(), productMarkup(p))
}

// showSupport shows the support contact
func (h *Handler) showSupport(ctx context.Context, c tele.Context) error {
	text := fmt.Sprintf("🆘 Questions about an order?\n\nWrite to %s and mention your order number.", h.cfg.SupportContact)
	return h.render(ctx, c, text, inline(tele.Row{btnMenu}))
}
