package order

import "errors"

var (
	// -- Validation & Input --
	ErrMissingUser    = errors.New("user id is required")
	ErrEmptyOrder     = errors.New("order has no line items")
	ErrInvalidUserID  = errors.New("user id must be a positive integer")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrInvalidOrderID = errors.New("order id must be a positive integer")

	// -- Backend Failures --
	ErrFailedSubmitOrder  = errors.New("failed to submit order")
	ErrFailedUpdateStatus = errors.New("failed to update order status")
)

// IsValidation reports whether err was rejected before reaching the backend.
func IsValidation(err error) bool {
	for _, target := range []error{ErrMissingUser, ErrEmptyOrder, ErrInvalidUserID, ErrInvalidStatus, ErrInvalidOrderID} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
