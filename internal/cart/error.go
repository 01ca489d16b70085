package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNoStock          = errors.New("product has no available stock")

	// -- Database & Operation Failures --
	ErrFailedLoadCart   = errors.New("failed to load cart")
	ErrFailedSaveCart   = errors.New("failed to save cart")
	ErrFailedDeleteCart = errors.New("failed to delete cart")
)
