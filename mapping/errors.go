package mapping

import "errors"

var (
	// ErrPoolExhausted is returned when the shared id pool runs out. The pool
	// bounds or the reservations are misconfigured and the run must stop.
	ErrPoolExhausted = errors.New("identifier pool exhausted")

	// ErrDuplicateTarget is returned when two M0 records would share a target URI.
	ErrDuplicateTarget = errors.New("duplicate target URI")

	// ErrInvalidTarget is returned for a fixed target URI without a numeric id.
	ErrInvalidTarget = errors.New("invalid target URI")
)
