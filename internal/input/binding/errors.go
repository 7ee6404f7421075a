package binding

import (
	"errors"
	"fmt"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/codec"
)

// Sentinel errors for the binding manager.
var (
	// ErrConfigIO is returned when a binding or codec file cannot be read.
	ErrConfigIO = codec.ErrIO

	// ErrConfigParse is returned when a binding file names an unknown event
	// kind, key or modifier, or is otherwise malformed.
	ErrConfigParse = codec.ErrParse

	// ErrContractViolation is returned when a matching order has no callback.
	// It indicates an owner broke the setup/teardown protocol.
	ErrContractViolation = errors.New("binding contract violation")

	// ErrStaleOwner is returned when an owner handle was released or never issued.
	ErrStaleOwner = errors.New("owner handle is not live")

	// ErrDuplicateCallback is returned when a name is already bound for an owner.
	ErrDuplicateCallback = errors.New("callback already bound")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrEmptyName is returned when a binding name is empty.
	ErrEmptyName = errors.New("binding name cannot be empty")

	// ErrReentrant is returned when Reconcile is called while an event is
	// being dispatched.
	ErrReentrant = errors.New("reconcile called during dispatch")
)

// ContractViolationError reports an order that matched an event while no
// callback was registered under its key.
type ContractViolationError struct {
	// Key is the identity key of the orphaned order.
	Key Key

	// Event is the event being dispatched.
	Event event.Event
}

// Error implements the error interface.
func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%v: order %q matched %s but has no callback", ErrContractViolation, e.Key, e.Event)
}

// Is allows errors.Is to match ContractViolationError with ErrContractViolation.
func (e *ContractViolationError) Is(target error) bool {
	return target == ErrContractViolation
}
