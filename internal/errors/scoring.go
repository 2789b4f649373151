package errors

import (
	"fmt"
	"net/http"
)

var (
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
		Status:  http.StatusNotFound,
	}
	ErrModelUnavailable = &DomainError{
		Code:    "MODEL_UNAVAILABLE",
		Message: "anomaly model failed to initialize",
		Status:  http.StatusServiceUnavailable,
	}
)

// Validation builds a field-level validation error. The field name is part of
// the message so callers can see what to fix.
func Validation(field, reason string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("invalid field %q: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// MissingField builds a validation error for an absent required field.
func MissingField(field string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("missing required field: %s", field),
		Status:  http.StatusBadRequest,
	}
}

// Persistence wraps a store failure. Predictions are never reported as
// successful when the underlying append failed.
func Persistence(op string, err error) *DomainError {
	return &DomainError{
		Code:    "PERSISTENCE_ERROR",
		Message: fmt.Sprintf("persistence failure during %s", op),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ModelUnavailable wraps a model initialization or scoring failure.
func ModelUnavailable(err error) *DomainError {
	return &DomainError{
		Code:    ErrModelUnavailable.Code,
		Message: ErrModelUnavailable.Message,
		Status:  ErrModelUnavailable.Status,
		Err:     err,
	}
}
