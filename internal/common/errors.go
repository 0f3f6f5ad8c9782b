// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound      = errors.New("not found")
	ErrStorageFailed = errors.New("could not save data")

	// Ledger validation errors.
	ErrCategoryInUse   = errors.New("category is in use")
	ErrBudgetLineInUse = errors.New("budget line has recorded expenses")
	ErrBudgetExceeded  = errors.New("budget line limit exceeded")
	ErrDuplicateName   = errors.New("name already exists")

	// Backup errors.
	ErrBackupNotFound = errors.New("backup not found")
	ErrInvalidImport  = errors.New("invalid or corrupted file")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
