// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an absent resource. Handlers map it to 404.
var ErrNotFound = errors.New("resource not found")

// InternalError marks a database or storage fault. Handlers respond 500 with
// a generic message; the wrapped detail is for logs only and must never reach
// a client.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

func internalErrorf(format string, args ...interface{}) error {
	return &InternalError{Err: fmt.Errorf(format, args...)}
}

// InsufficientStockError rejects an order whose quantity exceeds the stock
// available at the instant of the check. The message carries both numbers.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("ordered quantity (%d) exceeds available stock (%d)", e.Requested, e.Available)
}
