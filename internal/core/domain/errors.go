package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash
	// (over 72 bytes).
	ErrPasswordTooLong = errors.New("password too long")
)
