package handler

import (
	"fmt"

	"shopbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// btn builds an inline button with plain callback data. The data token
// is decoded by domain.ParseCommand on the way back in.
func btn(text, data string) tele.Btn {
	return tele.Btn{Text: text, Data: data}
}

func inline(rows ...tele.Row) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(rows...)
	return m
}

var (
	btnMenu     = btn("🏠 Menu", "menu")
	btnCatalog  = btn("🛍 Catalog", "catalog")
	btnCart     = btn("🛒 Cart", "cart")
	btnMyOrders = btn("📦 My orders", "orders")
	btnSupport  = btn("🆘 Support", "support")
	btnCancel   = btn("❌ Cancel", "order:cancel")
)

func menuMarkup(isAdmin bool) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := []tele.Row{
		m.Row(btnCatalog),
		m.Row(btnCart, btnMyOrders),
		m.Row(btnSupport),
	}
	if isAdmin {
		rows = append(rows, m.Row(btn("🛠 Admin", "adm")))
	}
	m.Inline(rows...)
	return m
}

func categoriesMarkup(cats []domain.Category) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(cats)+1)
	for _, cat := range cats {
		rows = append(rows, m.Row(btn(cat.Name, fmt.Sprintf("cat:%d", cat.ID))))
	}
	rows = append(rows, m.Row(btnMenu))
	m.Inline(rows...)
	return m
}

func productsMarkup(products []domain.Product) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(products)+1)
	for _, p := range products {
		label := fmt.Sprintf("%s — %s", p.Title, formatMoney(p.PriceCents))
		rows = append(rows, m.Row(btn(label, fmt.Sprintf("prod:%d", p.ID))))
	}
	rows = append(rows, m.Row(btn("⬅️ Back", "catalog"), btnMenu))
	m.Inline(rows...)
	return m
}

func productMarkup(p *domain.Product) *tele.ReplyMarkup {
	return inline(
		tele.Row{btn("➕ Add to cart", fmt.Sprintf("cart:add:%d", p.ID))},
		tele.Row{btn("⬅️ Back", fmt.Sprintf("cat:%d", p.CategoryID)), btnCart},
	)
}

func cartMarkup(items []domain.CartItem) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(items)+2)
	for _, it := range items {
		rows = append(rows, m.Row(
			btn("➖", fmt.Sprintf("cart:rem:%d", it.ProductID)),
			btn(fmt.Sprintf("%s ×%d", it.Title, it.Qty), fmt.Sprintf("prod:%d", it.ProductID)),
			btn("➕", fmt.Sprintf("cart:add:%d", it.ProductID)),
		))
	}
	if len(items) > 0 {
		rows = append(rows, m.Row(btn("✅ Checkout", "cart:checkout"), btn("🗑 Clear", "cart:clear")))
	}
	rows = append(rows, m.Row(btnCatalog, btnMenu))
	m.Inline(rows...)
	return m
}

func cancelMarkup() *tele.ReplyMarkup {
	return inline(tele.Row{btnCancel})
}

func deliveryMarkup() *tele.ReplyMarkup {
	return inline(
		tele.Row{btn("🏬 Pickup", "del:pickup")},
		tele.Row{btn("🚚 Courier", "del:courier")},
		tele.Row{btn("📮 Carrier office", "del:carrier")},
		tele.Row{btnCancel},
	)
}

func commentMarkup() *tele.ReplyMarkup {
	return inline(
		tele.Row{btn("⏭ Skip", "comment:skip")},
		tele.Row{btnCancel},
	)
}

func confirmMarkup() *tele.ReplyMarkup {
	return inline(
		tele.Row{btn("✅ Confirm", "order:confirm")},
		tele.Row{
			btn("✏️ Name", "edit:name"),
			btn("✏️ Phone", "edit:phone"),
			btn("✏️ City", "edit:city"),
		},
		tele.Row{
			btn("✏️ Delivery", "edit:delivery"),
			btn("✏️ Address", "edit:address"),
			btn("✏️ Comment", "edit:comment"),
		},
		tele.Row{btnCancel},
	)
}

func paymentMarkup(orderID int64) *tele.ReplyMarkup {
	return inline(
		tele.Row{btn("🧾 Pay by transfer", fmt.Sprintf("pay:manual:%d", orderID))},
		tele.Row{btn("💳 Pay online", fmt.Sprintf("pay:online:%d", orderID))},
		tele.Row{btnMenu},
	)
}

func ordersMarkup(orders []domain.Order) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(orders)+1)
	for _, o := range orders {
		label := fmt.Sprintf("#%d — %s — %s", o.ID, statusLabel(o.Status), formatMoney(o.TotalCents))
		rows = append(rows, m.Row(btn(label, fmt.Sprintf("order:show:%d", o.ID))))
	}
	rows = append(rows, m.Row(btnMenu))
	m.Inline(rows...)
	return m
}
