package pricing

import "errors"

var (
	// ErrInvalidInput negative, NaN or infinite amounts, non-positive nights
	ErrInvalidInput = errors.New("pricing: invalid input")

	// ErrInvalidPolicy VAT rate or cancellation window out of range
	ErrInvalidPolicy = errors.New("pricing: invalid policy")
)
