package symbolic

import "errors"

var (
	// ErrEmptyNet is returned by New for a net with no places; there is
	// nothing to declare variables over.
	ErrEmptyNet = errors.New("symbolic: net has no places")

	// ErrNotComputed is returned by any operation that reads the reachable
	// set before Compute has run.
	ErrNotComputed = errors.New("symbolic: reachable set not computed")

	// ErrUnknownPlace is returned when a marking references a place absent
	// from the engine's variable declaration.
	ErrUnknownPlace = errors.New("symbolic: unknown place")

	// ErrManager wraps a failure reported by the underlying BDD manager.
	ErrManager = errors.New("symbolic: bdd manager error")
)
