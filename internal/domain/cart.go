package domain

// CartItem is one cart line joined with the live product row.
// Qty is always >= 1; a line that would drop to zero is deleted instead.
type CartItem struct {
	ProductID  int64
	Qty        int
	Title      string
	PriceCents int64
	Stock      int
	Active     bool
}

// LineTotal returns qty * unit price in minor units
func (i CartItem) LineTotal() int64 {
	return int64(i.Qty) * i.PriceCents
}

// CartTotal sums line totals over all items
func CartTotal(items []CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}
