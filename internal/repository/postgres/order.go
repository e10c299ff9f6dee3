package postgres

import (
	"context"
	"database/sql"

	"shopbot/internal/domain"
)

// OrderRepo implements repository.OrderRepository
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo creates a new order repository
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateFromCart commits the user's cart as an order in a single
// transaction. Touched product rows are locked with FOR UPDATE, so the
// stock check and the decrement cannot interleave with a concurrent
// commit or an admin stock edit.
func (r *OrderRepo) CreateFromCart(ctx context.Context, userID int64, f domain.OrderFields) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	lockQuery := `
		SELECT ci.product_id, ci.qty, p.title, p.price_cents, p.stock, p.is_active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.product_id
		FOR UPDATE OF p
	`
	rows, err := tx.QueryContext(ctx, lockQuery, userID)
	if err != nil {
		return 0, 0, err
	}

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ProductID, &it.Qty, &it.Title, &it.PriceCents, &it.Stock, &it.Active); err != nil {
			rows.Close()
			return 0, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, 0, err
	}
	rows.Close()

	if len(items) == 0 {
		return 0, 0, domain.ErrCartEmpty
	}

	// All-or-nothing: one bad line aborts the whole commit
	for _, it := range items {
		if !it.Active {
			return 0, 0, domain.ErrProductInactive
		}
		if it.Qty > it.Stock {
			return 0, 0, domain.ErrStockNotEnough
		}
	}

	var comment sql.NullString
	if f.Comment != "" {
		comment = sql.NullString{String: f.Comment, Valid: true}
	}

	var orderID int64
	insertOrder := `
		INSERT INTO orders (user_id, status, name, phone, city, delivery_method, address, comment, total_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insertOrder,
		userID, domain.StatusNew, f.Name, f.Phone, f.City, string(f.DeliveryMethod), f.Address, comment,
	).Scan(&orderID)
	if err != nil {
		return 0, 0, err
	}

	var total int64
	for _, it := range items {
		line := it.LineTotal()
		total += line

		insertLine := `
			INSERT INTO order_items (order_id, product_id, title, price_cents, qty, line_total_cents)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.ExecContext(ctx, insertLine, orderID, it.ProductID, it.Title, it.PriceCents, it.Qty, line); err != nil {
			return 0, 0, err
		}

		decrement := `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2`
		if _, err := tx.ExecContext(ctx, decrement, it.Qty, it.ProductID); err != nil {
			return 0, 0, err
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET total_cents = $1, updated_at = NOW() WHERE id = $2`, total, orderID); err != nil {
		return 0, 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return orderID, total, nil
}

// ListByUser returns the user's latest orders
func (r *OrderRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error) {
	query := `
		SELECT id, user_id, status, COALESCE(payment_method, ''), name, phone, city, delivery_method, address, COALESCE(comment, ''), total_cents, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// List returns the latest orders across all users
func (r *OrderRepo) List(ctx context.Context, limit int) ([]domain.Order, error) {
	query := `
		SELECT id, user_id, status, COALESCE(payment_method, ''), name, phone, city, delivery_method, address, COALESCE(comment, ''), total_cents, created_at
		FROM orders
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.Name, &o.Phone, &o.City, &o.DeliveryMethod, &o.Address, &o.Comment, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Get returns one order, nil when not found
func (r *OrderRepo) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	var o domain.Order
	query := `
		SELECT id, user_id, status, COALESCE(payment_method, ''), name, phone, city, delivery_method, address, COALESCE(comment, ''), total_cents, created_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.Name, &o.Phone, &o.City, &o.DeliveryMethod, &o.Address, &o.Comment, &o.TotalCents, &o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Lines returns the snapshotted lines of an order
func (r *OrderRepo) Lines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, title, price_cents, qty, line_total_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Title, &l.PriceCents, &l.Qty, &l.LineTotalCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// SetPaymentMethod records the payment method tag on an order
func (r *OrderRepo) SetPaymentMethod(ctx context.Context, orderID int64, method string) error {
	query := `UPDATE orders SET payment_method = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, method, orderID)
	return err
}

// SetStatus moves an order through its lifecycle
func (r *OrderRepo) SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, string(status), orderID)
	return err
}

// Stats returns order count and revenue over non-canceled orders
func (r *OrderRepo) Stats(ctx context.Context) (domain.ShopStats, error) {
	var s domain.ShopStats
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_cents) FILTER (WHERE status <> 'CANCELED'), 0)
		FROM orders
	`
	err := r.db.QueryRowContext(ctx, query).Scan(&s.OrdersCount, &s.RevenueCents)
	return s, err
}
