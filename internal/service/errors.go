package service

import "errors"

var (
	// ErrPromoCodeExists is returned when creating a code whose normalized name is taken
	ErrPromoCodeExists = errors.New("promo code already exists")

	// ErrPromoCodeNotFound is returned when a promo code cannot be found
	ErrPromoCodeNotFound = errors.New("promo code not found")

	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUsageLimitReached is returned when applying a code that has no uses left
	ErrUsageLimitReached = errors.New("promo code usage limit reached")

	// ErrProductNotFound is returned when a product is missing from the catalog or inactive
	ErrProductNotFound = errors.New("product not found")

	// ErrProductSoldOut is returned when adding a sold out product to a cart
	ErrProductSoldOut = errors.New("product sold out")

	// ErrEmptyCart is returned when submitting an order for an empty cart
	ErrEmptyCart = errors.New("cart is empty")

	// ErrRegionRequired is returned when submitting an order without a delivery region
	ErrRegionRequired = errors.New("delivery region is required")
)

// ValidationError reports a rejected input field. It matches ErrInvalidRequest.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
