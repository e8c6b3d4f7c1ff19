package petri

import "errors"

// Sentinel errors returned by the net model. Every operation in this
// package has a total signature: a value plus one of these, never a panic.
var (
	// ErrDuplicateID is returned when AddPlace/AddTransition is given an id
	// already present in the net.
	ErrDuplicateID = errors.New("petri: duplicate id")

	// ErrInvalidArc is returned by AddArc when source and target are not
	// one place and one transition (place-place and transition-transition
	// arcs are rejected; the flow relation is bipartite).
	ErrInvalidArc = errors.New("petri: arc must connect a place and a transition")

	// ErrDanglingRef is returned by Validate when an arc references a place
	// or transition id that was never added.
	ErrDanglingRef = errors.New("petri: dangling reference")

	// ErrNot1Safe names a net that is not 1-safe. No function of this
	// package returns it: AddPlace takes a boolean token state, and Fire
	// does not check whether a place of post(t) is already marked.
	ErrNot1Safe = errors.New("petri: net is not 1-safe")

	// ErrUnknownTransition is returned by IsEnabled/Fire for a transition id
	// not present in the net.
	ErrUnknownTransition = errors.New("petri: unknown transition")

	// ErrNotEnabled is returned by Fire when the named transition is not
	// enabled in the given marking.
	ErrNotEnabled = errors.New("petri: transition not enabled")
)
