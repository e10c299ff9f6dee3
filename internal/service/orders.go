package service

import (
	"context"

	"shopbot/internal/domain"
	"shopbot/internal/repository"
)

// OrdersService is the customer-facing order history and the
// payment-method tag
type OrdersService struct {
	orders repository.OrderRepository
}

// NewOrdersService creates an orders service
func NewOrdersService(orders repository.OrderRepository) *OrdersService {
	return &OrdersService{orders: orders}
}

const historyLimit = 10

// ListForUser returns the user's latest orders
func (s *OrdersService) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, historyLimit)
}

// Detail returns one of the user's orders with its snapshotted lines.
// Orders of other users read as not found.
func (s *OrdersService) Detail(ctx context.Context, userID, orderID int64) (*domain.Order, []domain.OrderLine, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, nil, nil
	}
	lines, err := s.orders.Lines(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// RecordPaymentMethod tags one of the user's orders with the chosen
// payment method
func (s *OrdersService) RecordPaymentMethod(ctx context.Context, userID, orderID int64, method string) error {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil || order.UserID != userID {
		return nil
	}
	return s.orders.SetPaymentMethod(ctx, orderID, method)
}
