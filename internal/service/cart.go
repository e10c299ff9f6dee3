package service

import (
	"context"

	"shopbot/internal/domain"
	"shopbot/internal/repository"

	"go.uber.org/zap"
)

// CartService handles cart mutations with a stock guard on add
type CartService struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

// NewCartService creates a cart service
func NewCartService(carts repository.CartRepository, catalog repository.CatalogRepository, logger *zap.Logger) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		logger:  logger,
	}
}

// Items returns the user's cart lines
func (s *CartService) Items(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	return s.carts.GetCart(ctx, userID)
}

// AddOne increments a product's cart quantity by one. The guard here
// keeps the UI honest; the authoritative stock check happens inside
// the commit transaction.
func (s *CartService) AddOne(ctx context.Context, userID, productID int64) error {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || !p.Active {
		return domain.ErrProductInactive
	}

	current, err := s.carts.GetQty(ctx, userID, productID)
	if err != nil {
		return err
	}
	if current+1 > p.Stock {
		return domain.ErrStockNotEnough
	}

	return s.carts.SetQty(ctx, userID, productID, current+1)
}

// RemoveOne decrements a product's cart quantity; the line is deleted
// when it would drop below one
func (s *CartService) RemoveOne(ctx context.Context, userID, productID int64) error {
	current, err := s.carts.GetQty(ctx, userID, productID)
	if err != nil {
		return err
	}
	return s.carts.SetQty(ctx, userID, productID, current-1)
}

// Clear removes all cart lines for the user
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.carts.Clear(ctx, userID)
}
