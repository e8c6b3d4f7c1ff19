// Package deadlock implements the hybrid ILP+BDD deadlock detector: an
// integer program proposes a candidate dead marking consistent with the
// net's state equation, the symbolic reachable set confirms or refutes it,
// and refuted candidates are excluded by a no-good cut until the solver
// reports infeasibility or a confirmed witness is found.
package deadlock

import (
	"context"
	"fmt"
	"time"

	"github.com/draffensperger/golp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pflow-xyz/go-petrinet/petri"
	"github.com/pflow-xyz/go-petrinet/symbolic"
)

// Result is the outcome of a successful Detect call.
type Result struct {
	Marking  petri.Marking
	Cuts     int // number of refuted candidates excluded before this witness
	Elapsed  time.Duration
}

// Detector finds a reachable dead marking of a net, or proves none exists.
// It borrows a symbolic.Engine that has already run Compute; it never
// mutates the engine's reachable set.
type Detector struct {
	net    *petri.PetriNet
	engine *symbolic.Engine
	logger zerolog.Logger
}

// New returns a Detector for net, validating candidates against engine's
// computed reachable set.
func New(net *petri.PetriNet, engine *symbolic.Engine) *Detector {
	return &Detector{
		net:    net,
		engine: engine,
		logger: log.With().Str("component", "deadlock").Logger(),
	}
}

type cut struct {
	row []float64
	rhs float64
}

// Detect searches for a reachable marking at which no transition is
// enabled. It returns (result, true, nil) if one is found, and (nil, false,
// nil) if none exists or none could be proven: the solver reports
// infeasibility, a transition has an empty preset, or the solver ends with
// a status other than optimal, suboptimal or infeasible. It returns a
// non-nil error on cancellation or when a reachability query fails.
func (d *Detector) Detect(ctx context.Context) (*Result, bool, error) {
	start := time.Now()

	places := d.net.SortedPlaceIDs()
	transitions := d.net.SortedTransitionIDs()
	inc := d.net.Incidence()
	m0 := d.net.InitialMarking()

	numPlaces := len(places)
	numTrans := len(transitions)
	numVars := numPlaces + numTrans

	placeIndex := make(map[string]int, numPlaces)
	for i, p := range places {
		placeIndex[p] = i
	}

	// A transition with an empty preset is always enabled, at every
	// marking: its presence means the net can never deadlock, so the
	// detector short-circuits as deadlock-free without solving anything.
	for _, t := range transitions {
		if len(d.net.Pre(t)) == 0 {
			d.logger.Debug().Str("transition", t).Msg("no deadlock: transition has empty preset and is always enabled")
			return nil, false, nil
		}
	}

	var cuts []cut

	for iteration := 0; ; iteration++ {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}

		lp := golp.NewLP(0, numVars)

		// State equation: x_p - sum_t C[p][t]*n_t = M0[p].
		for pi, p := range places {
			row := make([]float64, numVars)
			row[pi] = 1
			for ti, t := range transitions {
				row[numPlaces+ti] = -float64(inc.At(p, t))
			}
			rhs := 0.0
			if m0.HasToken(p) {
				rhs = 1
			}
			lp.AddConstraint(row, golp.EQ, rhs)
		}

		// Dead-transition constraint: every t must be disabled at the
		// candidate marking.
		for _, t := range transitions {
			pre := d.net.Pre(t)
			row := make([]float64, numVars)
			for _, p := range pre {
				row[placeIndex[p]] = 1
			}
			lp.AddConstraint(row, golp.LE, float64(len(pre)-1))
		}

		for pi := range places {
			lp.SetBinary(pi, true)
		}
		for ti := range transitions {
			col := numPlaces + ti
			lp.SetInt(col, true)
			row := make([]float64, numVars)
			row[col] = 1
			lp.AddConstraint(row, golp.GE, 0)
		}

		for _, c := range cuts {
			lp.AddConstraint(c.row, golp.GE, c.rhs)
		}

		obj := make([]float64, numVars)
		for ti := range transitions {
			obj[numPlaces+ti] = 1
		}
		lp.SetObjFn(obj)
		lp.SetMinimize()

		status := lp.Solve()
		switch status {
		case golp.INFEASIBLE:
			d.logger.Debug().Int("cuts", iteration).Msg("no deadlock: ilp infeasible")
			return nil, false, nil
		case golp.OPTIMAL, golp.SUBOPTIMAL:
			// fall through
		default:
			// A failed solve proves nothing: report "no deadlock proven".
			d.logger.Debug().Err(fmt.Errorf("%w: status %v", ErrSolverFailure, status)).Msg("no deadlock proven")
			return nil, false, nil
		}

		vars := lp.Variables()
		tokens := make(map[string]int, numPlaces)
		for pi, p := range places {
			if vars[pi] > 0.5 {
				tokens[p] = 1
			}
		}
		candidate := petri.NewMarking(tokens)

		reachable, err := d.engine.IsReachable(candidate)
		if err != nil {
			return nil, false, err
		}
		if reachable {
			d.logger.Debug().Int("cuts", iteration).Msg("confirmed deadlock witness")
			return &Result{Marking: candidate, Cuts: iteration, Elapsed: time.Since(start)}, true, nil
		}

		// Refuted: add a no-good cut excluding this exact x-assignment and
		// retry (spec.md §4.3: sum_{x̂_p=1}(1-x_p) + sum_{x̂_p=0} x_p >= 1).
		row := make([]float64, numVars)
		rhs := 1.0
		for pi, p := range places {
			if tokens[p] == 1 {
				row[pi] = -1
				rhs--
			} else {
				row[pi] = 1
			}
		}
		cuts = append(cuts, cut{row: row, rhs: rhs})
	}
}

// IsDeadlockFree is a convenience wrapper returning only the boolean
// outcome of Detect.
func (d *Detector) IsDeadlockFree(ctx context.Context) (bool, error) {
	_, found, err := d.Detect(ctx)
	if err != nil {
		return false, err
	}
	return !found, nil
}
