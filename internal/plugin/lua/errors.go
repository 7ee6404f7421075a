package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a chunk or callback runs too long.
	ErrExecutionTimeout = errors.New("lua execution timeout")
)
