package domain

import "errors"

var (
	// Not-found errors
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Validation errors
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidType   = errors.New("transaction type must be CREDIT or DEBIT")

	// Conflict errors
	ErrDuplicateMobile = errors.New("mobile number already registered to another customer")

	// Backup errors
	ErrDriveNotConfigured = errors.New("google drive session not configured")
)
