// Package errors provides domain-specific error types for pdlink.
//
// These types carry structured context (operation, address) that helps
// callers decide how to handle failures and provides better diagnostics
// than plain string wrapping.
package errors

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// ErrBrokenConnection is reported by a synchronous send when the
	// OS accepts zero bytes, meaning the peer has closed the socket.
	ErrBrokenConnection = errors.New("socket connection broken")

	// ErrNotConnected is returned when an operation requires an
	// established connection and none exists.
	ErrNotConnected = errors.New("not connected")

	// ErrClosed is returned for operations on a client that has
	// already been shut down.
	ErrClosed = errors.New("client is closed")
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a network operation.
type NetworkError struct {
	Op   string // operation: "dial", "write", "read"
	Addr string // network address involved
	Err  error  // underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Wrap creates a NetworkError for the given operation and address.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{Op: op, Addr: addr, Err: err}
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use pdlink/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
