package wizard

import (
	"errors"
	"fmt"

	"github.com/wdm0006/dswizard/pkg/filter"
)

var (
	// ErrIllegalTransition is returned for an operation the current state does not accept.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrInvalidFilter is returned when a filter whose configuration is invalid is applied.
	ErrInvalidFilter = errors.New("filter configuration is invalid")
	// ErrFinishInFlight is returned by Finish while a submission is outstanding.
	ErrFinishInFlight = errors.New("a submission is already in flight")
)

// TransitionError describes a rejected operation.
type TransitionError struct {
	Op    string
	State State
	Kind  filter.Kind
}

func (e *TransitionError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s: %s in state %s", ErrIllegalTransition, e.Op, e.State)
	}
	return fmt.Sprintf("%s: %s(%s) in state %s", ErrIllegalTransition, e.Op, e.Kind, e.State)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }
