package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrEmailTaken = errors.New("email already registered")

	ErrUsernameTaken = errors.New("username already registered")

	ErrInvalidToken = errors.New("invalid token")
)
