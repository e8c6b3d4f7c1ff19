package deadlock

import "errors"

var (
	// ErrSolverFailure describes a non-optimal, non-infeasible status
	// reported by the ILP solver. Detect logs it and returns an absent
	// result ("no deadlock proven"); it does not return it as an error.
	ErrSolverFailure = errors.New("deadlock: ilp solver failed")

	// ErrNotComputed names a query issued before Detect has run. No
	// function of this package returns it: Detect and IsDeadlockFree run
	// the detection themselves.
	ErrNotComputed = errors.New("deadlock: detection not yet run")
)
