package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidStockAmount = errors.New("stock amount must be greater than zero")
	ErrInvalidManifest    = errors.New("invalid asset manifest")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Backend Failures --
	ErrFailedFetchProducts = errors.New("failed to fetch products")
	ErrFailedUpdateStock   = errors.New("failed to update product stock")
)
