package testutil

import (
	"shopbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestProduct creates an active product fixture
func NewTestProduct(id int64, title string, priceCents int64, stock int) *domain.Product {
	return &domain.Product{
		ID:         id,
		CategoryID: 1,
		Title:      title,
		PriceCents: priceCents,
		Stock:      stock,
		Active:     true,
	}
}

// NewTestCartItem creates a cart line fixture backed by an active product
func NewTestCartItem(productID int64, qty int, priceCents int64, stock int) domain.CartItem {
	return domain.CartItem{
		ProductID:  productID,
		Qty:        qty,
		Title:      "Item",
		PriceCents: priceCents,
		Stock:      stock,
		Active:     true,
	}
}

// CompleteCheckoutFields returns a field set that passes every validator
func CompleteCheckoutFields() domain.OrderFields {
	return domain.OrderFields{
		Name:           "Alice",
		Phone:          "+380501112233",
		City:           "Kyiv",
		DeliveryMethod: domain.DeliveryCourier,
		Address:        "Khreshchatyk 1, apt 2",
	}
}
