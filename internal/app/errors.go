package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called while the app is running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoSurface indicates the window was opened without a surface.
	ErrNoSurface = errors.New("no surface")
)

// ComponentError reports a failure while starting one component of the
// app: the codec tables, the watcher, the window or a script.
type ComponentError struct {
	Component string
	Action    string // e.g. "load", "verify" or a script path
	Err       error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	msg := e.Component
	if e.Action != "" {
		msg += ": " + e.Action
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// RecoveredPanicError is a panic raised by a callback during a tick.
// Error includes the stack, so keep it out of user-facing output.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError creates a new RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: stack}
}

func (e *RecoveredPanicError) Error() string {
	if e.Stack == "" {
		return fmt.Sprintf("callback panicked: %v", e.Value)
	}
	return fmt.Sprintf("callback panicked: %v\n%s", e.Value, e.Stack)
}
