package domain

import "time"

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusPaid       OrderStatus = "PAID"
	StatusInDelivery OrderStatus = "IN_DELIVERY"
	StatusDone       OrderStatus = "DONE"
	StatusCanceled   OrderStatus = "CANCELED"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusNew, StatusPaid, StatusInDelivery, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// DeliveryMethod is one of the fixed delivery options
type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryCourier DeliveryMethod = "courier"
	DeliveryCarrier DeliveryMethod = "carrier"
)

// ValidDeliveryMethod reports whether m is a known delivery method
func ValidDeliveryMethod(m DeliveryMethod) bool {
	switch m {
	case DeliveryPickup, DeliveryCourier, DeliveryCarrier:
		return true
	}
	return false
}

// Order is a committed checkout. Totals are in minor currency units.
type Order struct {
	ID             int64
	UserID         int64
	Status         OrderStatus
	PaymentMethod  string // empty until the user picks one
	Name           string
	Phone          string
	City           string
	DeliveryMethod DeliveryMethod
	Address        string
	Comment        string // empty means no comment
	TotalCents     int64
	CreatedAt      time.Time
}

// OrderLine is a snapshot of one cart line at commit time.
// Title and price are copied from the product so the order stays
// readable after the product is edited or deleted.
type OrderLine struct {
	ID             int64
	OrderID        int64
	ProductID      int64
	Title          string
	PriceCents     int64
	Qty            int
	LineTotalCents int64
}

// OrderFields is the buyer data collected by the checkout conversation
type OrderFields struct {
	Name           string
	Phone          string
	City           string
	DeliveryMethod DeliveryMethod
	Address        string
	Comment        string
}

// ShopStats is an aggregate over all orders for the admin screen
type ShopStats struct {
	OrdersCount  int
	RevenueCents int64
}
