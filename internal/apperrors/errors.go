package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrExtraction indicates that an OCR or speech engine failed to produce text.
var ErrExtraction = errors.New("extraction failed")

// ErrNoInputDetected indicates that speech capture timed out or heard nothing.
var ErrNoInputDetected = errors.New("no input detected")

// ErrNoTransactionBlock indicates that text handed to posting carries no reviewed transaction banner.
var ErrNoTransactionBlock = errors.New("no transaction block")

// ErrPersistence indicates that writing the ledgers to the persistence medium failed.
var ErrPersistence = errors.New("persistence failed")

// ErrExternal indicates that an external feed (rates, bank) could not be reached.
var ErrExternal = errors.New("external service unavailable")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
