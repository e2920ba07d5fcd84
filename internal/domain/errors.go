package domain

import "errors"

var (
	// Validation errors (local, pre-flight)
	ErrValidation = errors.New("validation failed")

	// Not-found errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Business-rule errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transport errors
	ErrTransport    = errors.New("backend request failed")
	ErrEmptyResult  = errors.New("backend returned no data")
	ErrNotSignedIn  = errors.New("no active session")
	ErrInvalidLogin = errors.New("invalid email or password")
	ErrEmailTaken   = errors.New("email already registered")
)
