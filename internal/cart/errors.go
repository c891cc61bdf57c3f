package cart

import "errors"

// ErrInvalidQuantity is returned when a quantity update asks for a negative
// value. Negative input fails loudly instead of being clamped.
var ErrInvalidQuantity = errors.New("invalid quantity")
