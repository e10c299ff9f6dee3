package repository

import (
	"context"

	"shopbot/internal/domain"
)

// UserRepository defines user bookkeeping and the UI anchor row
type UserRepository interface {
	EnsureUser(ctx context.Context, userID int64) error
	GetAnchor(ctx context.Context, userID int64) (int, error)
	SetAnchor(ctx context.Context, userID int64, messageID int) error
}

// CatalogRepository defines category and product data operations
type CatalogRepository interface {
	ListCategories(ctx context.Context, onlyActive bool) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (int64, error)
	RenameCategory(ctx context.Context, id int64, name string) error
	SetCategoryActive(ctx context.Context, id int64, active bool) error

	ListProducts(ctx context.Context, categoryID int64, onlyActive bool) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (int64, error)
	UpdateProductField(ctx context.Context, id int64, field string, value any) error
	SetProductActive(ctx context.Context, id int64, active bool) error
}

// CartRepository defines cart line operations keyed by (user, product)
type CartRepository interface {
	GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error)
	GetQty(ctx context.Context, userID, productID int64) (int, error)
	SetQty(ctx context.Context, userID, productID int64, qty int) error
	Clear(ctx context.Context, userID int64) error
}

// OrderRepository defines order persistence including the atomic
// cart-to-order commit
type OrderRepository interface {
	// CreateFromCart turns the user's cart into an order in one
	// transaction: validate lines, snapshot them, decrement stock,
	// clear the cart. Business-rule failures come back as
	// domain.ErrCartEmpty / ErrProductInactive / ErrStockNotEnough
	// and leave the store untouched.
	CreateFromCart(ctx context.Context, userID int64, f domain.OrderFields) (orderID int64, totalCents int64, err error)

	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	Get(ctx context.Context, orderID int64) (*domain.Order, error)
	Lines(ctx context.Context, orderID int64) ([]domain.OrderLine, error)
	SetPaymentMethod(ctx context.Context, orderID int64, method string) error
	SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	Stats(ctx context.Context) (domain.ShopStats, error)
}
