package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shopbot/internal/domain"
	"shopbot/internal/repository"
	"shopbot/internal/session"

	"go.uber.org/zap"
)

// AdminService handles shop management: catalog CRUD through short
// wizards (reusing the session machinery), the order workflow, and
// stats. The caller is responsible for gating by admin id.
type AdminService struct {
	catalog  repository.CatalogRepository
	orders   repository.OrderRepository
	sessions session.Store
	locks    *session.Locks
	logger   *zap.Logger
}

// NewAdminService creates an admin service
func NewAdminService(
	catalog repository.CatalogRepository,
	orders repository.OrderRepository,
	sessions session.Store,
	locks *session.Locks,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		catalog:  catalog,
		orders:   orders,
		sessions: sessions,
		locks:    locks,
		logger:   logger,
	}
}

// AdminResult reports the outcome of one wizard input
type AdminResult struct {
	Step       domain.Step // next step to prompt for; empty when Done
	Done       bool
	CategoryID int64
	ProductID  int64
}

// IsAdminStep reports whether a step belongs to an admin wizard
func IsAdminStep(step domain.Step) bool {
	switch step {
	case domain.StepAdminCategoryName,
		domain.StepAdminCategoryRename,
		domain.StepAdminProductTitle,
		domain.StepAdminProductPrice,
		domain.StepAdminProductStock,
		domain.StepAdminProductValue:
		return true
	}
	return false
}

// BeginCategoryCreate starts the new-category wizard
func (s *AdminService) BeginCategoryCreate(ctx context.Context, adminID int64) error {
	return s.begin(ctx, domain.NewSession(adminID, domain.StepAdminCategoryName))
}

// BeginCategoryRename starts the rename wizard for a category
func (s *AdminService) BeginCategoryRename(ctx context.Context, adminID, categoryID int64) error {
	sess := domain.NewSession(adminID, domain.StepAdminCategoryRename)
	sess.Set(domain.FieldCategoryID, strconv.FormatInt(categoryID, 10))
	return s.begin(ctx, sess)
}

// BeginProductCreate starts the title-price-stock wizard for a new
// product in the given category
func (s *AdminService) BeginProductCreate(ctx context.Context, adminID, categoryID int64) error {
	sess := domain.NewSession(adminID, domain.StepAdminProductTitle)
	sess.Set(domain.FieldCategoryID, strconv.FormatInt(categoryID, 10))
	return s.begin(ctx, sess)
}

// editable product fields and how their raw input is parsed
var productEditFields = map[string]bool{
	"title":       true,
	"description": true,
	"price":       true,
	"stock":       true,
}

// BeginProductEdit starts a single-value edit for one product field
func (s *AdminService) BeginProductEdit(ctx context.Context, adminID, productID int64, field string) error {
	if !productEditFields[field] {
		return fmt.Errorf("unknown product field %q", field)
	}
	sess := domain.NewSession(adminID, domain.StepAdminProductValue)
	sess.Set(domain.FieldProductID, strconv.FormatInt(productID, 10))
	sess.Set(domain.FieldProductField, field)
	return s.begin(ctx, sess)
}

func (s *AdminService) begin(ctx context.Context, sess *domain.Session) error {
	unlock := s.locks.Lock(sess.UserID)
	defer unlock()
	return s.sessions.Put(ctx, sess)
}

// Input feeds a text answer into the current admin wizard step.
// Rejected values return a *ValidationError with the step unchanged.
// A nil result means no admin wizard is in progress.
func (s *AdminService) Input(ctx context.Context, adminID int64, text string) (*AdminResult, error) {
	unlock := s.locks.Lock(adminID)
	defer unlock()

	sess, err := s.sessions.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if sess == nil || !IsAdminStep(sess.Step) {
		return nil, nil
	}

	text = strings.TrimSpace(text)

	switch sess.Step {
	case domain.StepAdminCategoryName:
		if !ValidMinLen(text, 2) {
			return nil, invalid(domain.FieldName, "category name must be at least 2 characters")
		}
		id, err := s.catalog.CreateCategory(ctx, text)
		if err != nil {
			return nil, err
		}
		return s.finish(ctx, adminID, &AdminResult{Done: true, CategoryID: id})

	case domain.StepAdminCategoryRename:
		if !ValidMinLen(text, 2) {
			return nil, invalid(domain.FieldName, "category name must be at least 2 characters")
		}
		categoryID, _ := strconv.ParseInt(sess.Get(domain.FieldCategoryID), 10, 64)
		if err := s.catalog.RenameCategory(ctx, categoryID, text); err != nil {
			return nil, err
		}
		return s.finish(ctx, adminID, &AdminResult{Done: true, CategoryID: categoryID})

	case domain.StepAdminProductTitle:
		if !ValidMinLen(text, 2) {
			return nil, invalid(domain.FieldProductTitle, "title must be at least 2 characters")
		}
		sess.Set(domain.FieldProductTitle, text)
		sess.Step = domain.StepAdminProductPrice
		if err := s.sessions.Put(ctx, sess); err != nil {
			return nil, err
		}
		return &AdminResult{Step: sess.Step}, nil

	case domain.StepAdminProductPrice:
		cents, err := ParsePriceCents(text)
		if err != nil {
			return nil, invalid(domain.FieldProductPrice, "send a price like 199.99")
		}
		sess.Set(domain.FieldProductPrice, strconv.FormatInt(cents, 10))
		sess.Step = domain.StepAdminProductStock
		if err := s.sessions.Put(ctx, sess); err != nil {
			return nil, err
		}
		return &AdminResult{Step: sess.Step}, nil

	case domain.StepAdminProductStock:
		stock, err := ParseStock(text)
		if err != nil {
			return nil, invalid(domain.Field("stock"), "send stock as a non-negative integer")
		}
		categoryID, _ := strconv.ParseInt(sess.Get(domain.FieldCategoryID), 10, 64)
		price, _ := strconv.ParseInt(sess.Get(domain.FieldProductPrice), 10, 64)
		productID, err := s.catalog.CreateProduct(ctx, domain.Product{
			CategoryID: categoryID,
			Title:      sess.Get(domain.FieldProductTitle),
			PriceCents: price,
			Stock:      stock,
			Active:     true,
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info("product created",
			zap.Int64("product_id", productID),
			zap.Int64("category_id", categoryID),
		)
		return s.finish(ctx, adminID, &AdminResult{Done: true, ProductID: productID, CategoryID: categoryID})

	case domain.StepAdminProductValue:
		productID, _ := strconv.ParseInt(sess.Get(domain.FieldProductID), 10, 64)
		field := sess.Get(domain.FieldProductField)

		var value any
		switch field {
		case "price":
			cents, err := ParsePriceCents(text)
			if err != nil {
				return nil, invalid(domain.FieldProductPrice, "send a price like 199.99")
			}
			value = cents
		case "stock":
			stock, err := ParseStock(text)
			if err != nil {
				return nil, invalid(domain.Field("stock"), "send stock as a non-negative integer")
			}
			value = stock
		default:
			if !ValidMinLen(text, 1) {
				return nil, invalid(domain.Field(field), "value cannot be empty")
			}
			value = text
		}

		if err := s.catalog.UpdateProductField(ctx, productID, field, value); err != nil {
			return nil, err
		}
		return s.finish(ctx, adminID, &AdminResult{Done: true, ProductID: productID})
	}

	return nil, nil
}

func (s *AdminService) finish(ctx context.Context, adminID int64, res *AdminResult) (*AdminResult, error) {
	if err := s.sessions.Clear(ctx, adminID); err != nil {
		return nil, err
	}
	return res, nil
}

// CancelWizard aborts any in-flight admin wizard
func (s *AdminService) CancelWizard(ctx context.Context, adminID int64) error {
	unlock := s.locks.Lock(adminID)
	defer unlock()
	return s.sessions.Clear(ctx, adminID)
}

// Categories returns all categories including archived ones
func (s *AdminService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx, false)
}

// Category returns one category, nil when not found
func (s *AdminService) Category(ctx context.Context, id int64) (*domain.Category, error) {
	return s.catalog.GetCategory(ctx, id)
}

// ToggleCategory flips a category's active flag
func (s *AdminService) ToggleCategory(ctx context.Context, id int64) error {
	c, err := s.catalog.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("category %d not found", id)
	}
	return s.catalog.SetCategoryActive(ctx, id, !c.Active)
}

// Products returns all products of a category including inactive ones
func (s *AdminService) Products(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx, categoryID, false)
}

// Product returns one product, nil when not found
func (s *AdminService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}

// ToggleProduct flips a product's active flag
func (s *AdminService) ToggleProduct(ctx context.Context, id int64) error {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("product %d not found", id)
	}
	return s.catalog.SetProductActive(ctx, id, !p.Active)
}

// Orders returns the latest orders across all users
func (s *AdminService) Orders(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.orders.List(ctx, limit)
}

// Order returns one order with its lines
func (s *AdminService) Order(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderLine, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, nil
	}
	lines, err := s.orders.Lines(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// SetOrderStatus moves an order through its lifecycle
func (s *AdminService) SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.orders.SetStatus(ctx, orderID, status)
}

// Stats returns order count and revenue
func (s *AdminService) Stats(ctx context.Context) (domain.ShopStats, error) {
	return s.orders.Stats(ctx)
}
