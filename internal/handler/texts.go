package handler

import (
	"fmt"
	"strings"

	"shopbot/internal/domain"
	"shopbot/internal/service"
)

// Shared user-facing messages
const (
	msgTryAgain     = "Something went wrong, please try again"
	msgCartEmpty    = "Your cart is empty"
	msgSessionLost  = "This checkout has expired, please start again"
	msgStockChanged = "Stock changed while you were checking out. Review your cart and try again."
)

// formatMoney renders minor units as a decimal amount
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func deliveryLabel(m domain.DeliveryMethod) string {
	switch m {
	case domain.DeliveryPickup:
		return "Pickup"
	case domain.DeliveryCourier:
		return "Courier"
	case domain.DeliveryCarrier:
		return "Carrier office"
	}
	return string(m)
}

func statusLabel(s domain.OrderStatus) string {
	switch s {
	case domain.StatusNew:
		return "🆕 New"
	case domain.StatusPaid:
		return "💳 Paid"
	case domain.StatusInDelivery:
		return "🚚 In delivery"
	case domain.StatusDone:
		return "✅ Done"
	case domain.StatusCanceled:
		return "❌ Canceled"
	}
	return string(s)
}

// stepPrompt is the question asked at each free-text checkout step
func stepPrompt(step domain.Step) string {
	switch step {
	case domain.StepName:
		return "👤 What is your name?"
	case domain.StepPhone:
		return "📞 Your phone number (digits, + allowed):"
	case domain.StepCity:
		return "🏙 Which city should we deliver to?"
	case domain.StepAddress:
		return "📍 Delivery address (street, building, apartment):"
	case domain.StepComment:
		return "💬 Add a comment to the order, or skip:"
	}
	return ""
}

func cartText(items []domain.CartItem) string {
	if len(items) == 0 {
		return "🛒 Your cart is empty.\n\nBrowse the catalog to add something."
	}

	var b strings.Builder
	b.WriteString("🛒 Your cart:\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%s\n%d × %s = %s\n\n", it.Title, it.Qty, formatMoney(it.PriceCents), formatMoney(it.LineTotal()))
	}
	fmt.Fprintf(&b, "Total: %s", formatMoney(domain.CartTotal(items)))
	return b.String()
}

func summaryText(sum *service.Summary) string {
	var b strings.Builder
	b.WriteString("📋 Please confirm your order:\n\n")
	for _, it := range sum.Items {
		fmt.Fprintf(&b, "%s × %d = %s\n", it.Title, it.Qty, formatMoney(it.LineTotal()))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\n", formatMoney(sum.TotalCents))
	fmt.Fprintf(&b, "👤 Name: %s\n", sum.Fields.Name)
	fmt.Fprintf(&b, "📞 Phone: %s\n", sum.Fields.Phone)
	fmt.Fprintf(&b, "🏙 City: %s\n", sum.Fields.City)
	fmt.Fprintf(&b, "🚚 Delivery: %s\n", deliveryLabel(sum.Fields.DeliveryMethod))
	fmt.Fprintf(&b, "📍 Address: %s\n", sum.Fields.Address)
	if sum.Fields.Comment != "" {
		fmt.Fprintf(&b, "💬 Comment: %s\n", sum.Fields.Comment)
	}
	return b.String()
}

func orderText(order *domain.Order, lines []domain.OrderLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d — %s\n", order.ID, statusLabel(order.Status))
	fmt.Fprintf(&b, "Placed: %s\n\n", order.CreatedAt.Format("02.01.2006 15:04"))
	for _, l := range lines {
		fmt.Fprintf(&b, "%s × %d = %s\n", l.Title, l.Qty, formatMoney(l.LineTotalCents))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", formatMoney(order.TotalCents))
	fmt.Fprintf(&b, "🚚 %s, %s, %s\n", deliveryLabel(order.DeliveryMethod), order.City, order.Address)
	if order.PaymentMethod != "" {
		fmt.Fprintf(&b, "💳 Payment: %s\n", order.PaymentMethod)
	}
	return b.String()
}
