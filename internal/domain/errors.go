package domain

import "errors"

// Business-rule failures of the order commit. Callers switch on these
// with errors.Is; anything else coming out of the store is treated as
// an infrastructure failure.
var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrProductInactive = errors.New("product is no longer available")
	ErrStockNotEnough  = errors.New("not enough stock")
	ErrSessionExpired  = errors.New("session expired")
)
