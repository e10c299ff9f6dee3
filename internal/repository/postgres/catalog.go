package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"shopbot/internal/domain"
)

// CatalogRepo implements repository.CatalogRepository
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// ListCategories returns categories, newest first
func (r *CatalogRepo) ListCategories(ctx context.Context, onlyActive bool) ([]domain.Category, error) {
	query := `SELECT id, name, is_active, created_at FROM categories`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory returns one category, nil when not found
func (r *CatalogRepo) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	query := `SELECT id, name, is_active, created_at FROM categories WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCategory inserts an active category and returns its id
func (r *CatalogRepo) CreateCategory(ctx context.Context, name string) (int64, error) {
	var id int64
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id)
	return id, err
}

// RenameCategory updates a category name
func (r *CatalogRepo) RenameCategory(ctx context.Context, id int64, name string) error {
	query := `UPDATE categories SET name = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, name, id)
	return err
}

// SetCategoryActive toggles category visibility
func (r *CatalogRepo) SetCategoryActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE categories SET is_active = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, active, id)
	return err
}

// ListProducts returns products of a category, newest first
func (r *CatalogRepo) ListProducts(ctx context.Context, categoryID int64, onlyActive bool) ([]domain.Product, error) {
	query := `
		SELECT id, category_id, title, description, price_cents, stock, is_active, COALESCE(photo_file_id, ''), created_at
		FROM products
		WHERE category_id = $1`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Title, &p.Description, &p.PriceCents, &p.Stock, &p.Active, &p.PhotoFileID, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct returns one product, nil when not found
func (r *CatalogRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	query := `
		SELECT id, category_id, title, description, price_cents, stock, is_active, COALESCE(photo_file_id, ''), created_at
		FROM products
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.CategoryID, &p.Title, &p.Description, &p.PriceCents, &p.Stock, &p.Active, &p.PhotoFileID, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a product and returns its id
func (r *CatalogRepo) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	var id int64
	var photo sql.NullString
	if p.PhotoFileID != "" {
		photo = sql.NullString{String: p.PhotoFileID, Valid: true}
	}

	query := `
		INSERT INTO products (category_id, title, description, price_cents, stock, is_active, photo_file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		p.CategoryID, p.Title, p.Description, p.PriceCents, p.Stock, p.Active, photo,
	).Scan(&id)
	return id, err
}

// product columns an admin edit may touch
var productColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"price":       "price_cents",
	"stock":       "stock",
	"photo":       "photo_file_id",
}

// UpdateProductField updates a single whitelisted product column
func (r *CatalogRepo) UpdateProductField(ctx context.Context, id int64, field string, value any) error {
	column, ok := productColumns[field]
	if !ok {
		return fmt.Errorf("unknown product field %q", field)
	}

	query := fmt.Sprintf(`UPDATE products SET %s = $1, updated_at = NOW() WHERE id = $2`, column)
	_, err := r.db.ExecContext(ctx, query, value, id)
	return err
}

// SetProductActive toggles product visibility
func (r *CatalogRepo) SetProductActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE products SET is_active = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, active, id)
	return err
}
