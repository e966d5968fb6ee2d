// Package apperrors defines the typed failures the ledger core can raise.
// Every error carries an HTTP status classification so the handler layer can
// map it without inspecting messages.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// ValidationError reports caller-supplied input that the recorder rejects,
// such as an unknown transaction type.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError reports an outcome transaction that would drive
// the total balance below zero.
type InsufficientBalanceError struct {
	Total     decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: total %s, requested %s",
		e.Total.StringFixed(2), e.Requested.StringFixed(2))
}

// ImportError reports a failure to read or parse an import source. It wraps
// the underlying cause.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func NewImport(err error) *ImportError {
	return &ImportError{Err: err}
}

// StatusOf maps a core error to its HTTP status. Validation, balance and
// import failures are client errors; anything else is a server error.
func StatusOf(err error) int {
	var ve *ValidationError
	var be *InsufficientBalanceError
	var ie *ImportError
	switch {
	case errors.As(err, &ve), errors.As(err, &be), errors.As(err, &ie):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
