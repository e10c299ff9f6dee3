package service

import (
	"context"

	"shopbot/internal/domain"
	"shopbot/internal/repository"
)

// CatalogService exposes the customer-facing catalog: only active
// categories and products are visible here
type CatalogService struct {
	catalog repository.CatalogRepository
}

// NewCatalogService creates a catalog service
func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Categories returns the active categories
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx, true)
}

// Products returns the active products of a category
func (s *CatalogService) Products(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx, categoryID, true)
}

// Product returns one product, nil when not found
func (s *CatalogService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}
