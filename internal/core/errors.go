package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName indicates an empty name or one with whitespace, comma or colon.
	ErrInvalidName = errors.New("core: invalid name")

	// ErrNotImplemented indicates an unknown formulation selector.
	ErrNotImplemented = errors.New("core: not implemented")

	// ErrType indicates a component that does not satisfy a requirement or parent kind.
	ErrType = errors.New("core: type mismatch")

	// ErrUsage indicates an operation invoked in the wrong lifecycle state.
	ErrUsage = errors.New("core: usage error")

	// ErrMissingRequirement indicates a non-optional requirement left unbound.
	ErrMissingRequirement = errors.New("core: missing requirement")

	// ErrInvalidMixin indicates a value that is not a capability fragment.
	ErrInvalidMixin = errors.New("core: invalid mixin")

	// ErrConfiguration indicates connection peers that are missing, repeated or incompatible.
	ErrConfiguration = errors.New("core: invalid configuration")

	// ErrValue indicates a configuration value rejected by a component.
	ErrValue = errors.New("core: invalid value")

	// ErrUnknownRequirement indicates an attribute no requirement declares.
	ErrUnknownRequirement = errors.New("core: unknown requirement")

	// ErrCycle indicates a component reachable from itself.
	ErrCycle = errors.New("core: dependency cycle")
)

// ComponentError wraps an error with the component, attribute and phase it occurred in.
type ComponentError struct {
	Component string
	Attribute string
	Phase     Phase
	Detail    string
	Wrapped   error
}

func (e *ComponentError) Error() string {
	loc := e.Component
	if e.Attribute != "" {
		loc += "." + e.Attribute
	}
	msg := fmt.Sprintf("%s: %v", loc, e.Wrapped)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Phase != PhaseUninitialized {
		msg += " (" + e.Phase.String() + ")"
	}
	return msg
}

func (e *ComponentError) Unwrap() error {
	return e.Wrapped
}
