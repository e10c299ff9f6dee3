package postgres

import (
	"context"
	"database/sql"

	"shopbot/internal/domain"
)

// CartRepo implements repository.CartRepository
type CartRepo struct {
	db *sql.DB
}

// NewCartRepo creates a new cart repository
func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

// GetCart returns the user's cart lines joined with live product rows
func (r *CartRepo) GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	query := `
		SELECT ci.product_id, ci.qty, p.title, p.price_cents, p.stock, p.is_active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.product_id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ProductID, &it.Qty, &it.Title, &it.PriceCents, &it.Stock, &it.Active); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetQty returns the current quantity of a product in the cart, 0 when absent
func (r *CartRepo) GetQty(ctx context.Context, userID, productID int64) (int, error) {
	var qty int
	query := `SELECT qty FROM cart_items WHERE user_id = $1 AND product_id = $2`

	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&qty)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// SetQty upserts a cart line; qty <= 0 deletes the line instead
func (r *CartRepo) SetQty(ctx context.Context, userID, productID int64, qty int) error {
	if qty <= 0 {
		query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
		_, err := r.db.ExecContext(ctx, query, userID, productID)
		return err
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, qty)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET qty = EXCLUDED.qty
	`
	_, err := r.db.ExecContext(ctx, query, userID, productID, qty)
	return err
}

// Clear removes all of the user's cart lines
func (r *CartRepo) Clear(ctx context.Context, userID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
