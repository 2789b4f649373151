// Package errors defines the domain error taxonomy shared by services and
// handlers. Every user-visible failure carries a machine-readable code and a
// human-readable message.
package errors

import (
	"fmt"
)

// DomainError is a typed error with an HTTP-equivalent status.
type DomainError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is matches two domain errors by code so wrapped instances created by the
// constructor helpers compare equal to the sentinel values.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
