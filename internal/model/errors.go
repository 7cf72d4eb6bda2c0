package model

import "errors"

// Common errors used across the application
var (
	// Splash errors
	ErrAlreadyActivated = errors.New("splash already activated")

	// Shell errors
	ErrInputClosed = errors.New("input closed")

	// Form errors
	ErrUnknownField = errors.New("unknown form field")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)
