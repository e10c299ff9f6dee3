package domain

import "time"

// Category groups products in the catalog
type Category struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt time.Time
}

// Product is a catalog item. Price is in minor currency units (cents).
type Product struct {
	ID          int64
	CategoryID  int64
	Title       string
	Description string
	PriceCents  int64
	Stock       int
	Active      bool
	PhotoFileID string
	CreatedAt   time.Time
}
