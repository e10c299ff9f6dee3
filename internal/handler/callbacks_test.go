package handler

import (
	"testing"

	"shopbot/internal/domain"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

// markupData collects the callback data of every inline button
func markupData(m *tele.ReplyMarkup) [][]string {
	var out [][]string
	for _, row := range m.InlineKeyboard {
		var data []string
		for _, b := range row {
			data = append(data, b.Data)
		}
		out = append(out, data)
	}
	return out
}

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal token",
			input:    "cart:add:5",
			expected: "cart:add:5",
		},
		{
			name:     "token with whitespace",
			input:    "  cart:add:5  ",
			expected: "cart:add:5",
		},
		{
			name:     "token with newline",
			input:    "cart\n:add:5",
			expected: "cart:add:5",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "unprintable characters",
			input:    "menu\x00\x01",
			expected: "menu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// every button any keyboard can emit must decode to a known command
func TestKeyboardTokensDecode(t *testing.T) {
	product := &domain.Product{ID: 5, CategoryID: 2}
	items := []domain.CartItem{{ProductID: 5, Qty: 1, Title: "Widget"}}
	orders := []domain.Order{{ID: 7}}
	cats := []domain.Category{{ID: 2, Name: "Tea"}}

	for _, m := range []struct {
		name string
		mk   func() [][]string
	}{
		{"menu", func() [][]string { return markupData(menuMarkup(true)) }},
		{"categories", func() [][]string { return markupData(categoriesMarkup(cats)) }},
		{"products", func() [][]string { return markupData(productsMarkup([]domain.Product{*product})) }},
		{"product", func() [][]string { return markupData(productMarkup(product)) }},
		{"cart", func() [][]string { return markupData(cartMarkup(items)) }},
		{"delivery", func() [][]string { return markupData(deliveryMarkup()) }},
		{"comment", func() [][]string { return markupData(commentMarkup()) }},
		{"confirm", func() [][]string { return markupData(confirmMarkup()) }},
		{"payment", func() [][]string { return markupData(paymentMarkup(7)) }},
		{"orders", func() [][]string { return markupData(ordersMarkup(orders)) }},
	} {
		t.Run(m.name, func(t *testing.T) {
			for _, row := range m.mk() {
				for _, data := range row {
					cmd := domain.ParseCommand(data)
					assert.NotEqual(t, domain.CmdUnknown, cmd.Kind, "token %q must decode", data)
				}
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{19999, "199.99"},
		{1850, "18.50"},
		{-250, "-2.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatMoney(tt.cents))
	}
}

func TestDeliveryMarkupCoversAllMethods(t *testing.T) {
	seen := map[domain.DeliveryMethod]bool{}
	for _, row := range markupData(deliveryMarkup()) {
		for _, data := range row {
			cmd := domain.ParseCommand(data)
			if cmd.Kind == domain.CmdDelivery {
				seen[domain.DeliveryMethod(cmd.Arg)] = true
				assert.True(t, domain.ValidDeliveryMethod(domain.DeliveryMethod(cmd.Arg)))
			}
		}
	}
	assert.Len(t, seen, 3)
}
