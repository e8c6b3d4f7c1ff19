package optimize

import "errors"

var (
	// ErrEmptyObjective is returned by ParseWeights for a blank input.
	ErrEmptyObjective = errors.New("optimize: empty weight expression")

	// ErrMalformedTerm is returned by ParseWeights for a term that is not
	// "place=weight".
	ErrMalformedTerm = errors.New("optimize: malformed weight term")

	// ErrUnreachableNet is returned by Maximize when the reachable set is
	// empty (no marking, not even the initial one, satisfies it) — this
	// cannot happen for a well-formed net but is checked defensively.
	ErrUnreachableNet = errors.New("optimize: reachable set is empty")
)
