package user

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidFilter    = errors.New("invalid user filter")
	ErrInvalidUserInput = errors.New("invalid user input")

	// -- Resource State --
	ErrUserNotFound = errors.New("user not found")

	// -- Backend Failures --
	ErrFailedFetchUsers = errors.New("failed to fetch users")
	ErrFailedCreateUser = errors.New("failed to create user")
)
