// Package optimize implements a branch-and-bound search for the reachable
// marking that maximizes a linear objective over place weights, pruning
// against the symbolic engine's BDD-encoded reachable set rather than
// enumerating markings.
package optimize

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dalzilio/rudd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pflow-xyz/go-petrinet/petri"
	"github.com/pflow-xyz/go-petrinet/symbolic"
)

// Result is the outcome of a successful Maximize call.
type Result struct {
	Marking       petri.Marking
	Value         int
	NodesExplored int
	Elapsed       time.Duration
}

// Optimizer searches the reachable set of a computed symbolic.Engine for
// the marking maximizing a linear objective sum_p weight[p]*x_p. Places
// absent from weights contribute 0 regardless of their token.
type Optimizer struct {
	engine  *symbolic.Engine
	weights map[string]int
	order   []string // places in descending-weight order, ties by name
	logger  zerolog.Logger
}

// New returns an Optimizer over engine's reachable set (which must already
// be computed) for the given per-place weights.
func New(engine *symbolic.Engine, weights map[string]int) *Optimizer {
	places := append([]string(nil), engine.Places()...)
	sort.Slice(places, func(i, j int) bool {
		wi, wj := weights[places[i]], weights[places[j]]
		if wi != wj {
			return wi > wj
		}
		return places[i] < places[j]
	})
	return &Optimizer{
		engine:  engine,
		weights: weights,
		order:   places,
		logger:  log.With().Str("component", "optimize").Logger(),
	}
}

// frame is one node of the explicit DFS stack: the BDD restricted by the
// literals fixed so far, the next place index to branch on, the value
// accumulated from those fixed literals, and which branch (1 then 0) to try
// next at this node.
type frame struct {
	node     rudd.Node
	index    int
	value    int
	triedOne bool
}

// Maximize runs the search. With no weights it takes the fast path: any
// reachable marking has objective value 0, so the first one extracted is
// returned without branching.
func (o *Optimizer) Maximize(ctx context.Context) (*Result, error) {
	start := time.Now()

	r, err := o.engine.Reachable()
	if err != nil {
		return nil, err
	}
	mgr := o.engine.Manager()
	set := rudd.Set{BDD: mgr}

	if set.Equal(r, mgr.False()) {
		return nil, ErrUnreachableNet
	}

	if len(o.weights) == 0 {
		m, err := firstMarking(mgr, r, o.engine.Places())
		if err != nil {
			return nil, err
		}
		return &Result{Marking: m, Value: 0, NodesExplored: 1, Elapsed: time.Since(start)}, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	suffixBound := make([]int, len(o.order)+1)
	for i := len(o.order) - 1; i >= 0; i-- {
		gain := o.weights[o.order[i]]
		if gain < 0 {
			gain = 0
		}
		suffixBound[i] = suffixBound[i+1] + gain
	}

	bestMarking, bestValue, err := o.greedy(mgr, set, r)
	if err != nil {
		return nil, err
	}

	stack := []frame{{node: r, index: 0, value: 0}}
	explored := 0

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		top := &stack[len(stack)-1]
		explored++

		if top.index == len(o.order) {
			if top.value > bestValue {
				bestValue = top.value
				bestMarking, err = decodeAssignment(mgr, top.node, o.engine.Places())
				if err != nil {
					return nil, err
				}
			}
			stack = stack[:len(stack)-1]
			continue
		}

		if top.value+suffixBound[top.index] <= bestValue {
			stack = stack[:len(stack)-1]
			continue
		}

		place := o.order[top.index]
		idx, _ := o.engine.VarIndex(place)

		if !top.triedOne {
			top.triedOne = true
			one := set.And(top.node, mgr.Ithvar(idx))
			if !set.Equal(one, mgr.False()) {
				stack = append(stack, frame{
					node:  one,
					index: top.index + 1,
					value: top.value + o.weights[place],
				})
			}
			continue
		}

		zero := set.And(top.node, mgr.NIthvar(idx))
		stack = stack[:len(stack)-1]
		if !set.Equal(zero, mgr.False()) {
			stack = append(stack, frame{
				node:  zero,
				index: top.index + 1,
				value: top.value,
			})
		}
	}

	o.logger.Debug().Int("nodes", explored).Int("value", bestValue).Msg("search complete")
	return &Result{
		Marking:       bestMarking,
		Value:         bestValue,
		NodesExplored: explored,
		Elapsed:       time.Since(start),
	}, nil
}

// greedy builds one complete, reachable marking by fixing each positive-
// weight place to 1 (in descending-weight order) whenever doing so keeps
// the restricted BDD satisfiable, else 0; non-positive-weight places are
// fixed to 0 first and only set to 1 if 0 is infeasible there. It seeds the
// branch-and-bound lower bound so early pruning is effective from the first
// real node.
func (o *Optimizer) greedy(mgr *rudd.BDD, set rudd.Set, r rudd.Node) (petri.Marking, int, error) {
	node := r
	value := 0
	for _, place := range o.order {
		idx, _ := o.engine.VarIndex(place)
		positive := o.weights[place] > 0

		first, second := mgr.NIthvar(idx), mgr.Ithvar(idx)
		firstValue, secondValue := 0, o.weights[place]
		if positive {
			first, second = second, first
			firstValue, secondValue = secondValue, firstValue
		}

		restricted := set.And(node, first)
		gain := firstValue
		if set.Equal(restricted, mgr.False()) {
			restricted = set.And(node, second)
			gain = secondValue
			if set.Equal(restricted, mgr.False()) {
				return nil, 0, fmt.Errorf("optimize: restriction became unsatisfiable building greedy bound at place %q", place)
			}
		}
		node = restricted
		value += gain
	}
	m, err := decodeAssignment(mgr, node, o.engine.Places())
	if err != nil {
		return nil, 0, err
	}
	return m, value, nil
}

// decodeAssignment reads a single satisfying cube off node — valid once
// every variable in places has been fixed, as is true at the frontier
// reached by greedy and at every DFS leaf.
func decodeAssignment(mgr *rudd.BDD, node rudd.Node, places []string) (petri.Marking, error) {
	var result petri.Marking
	err := mgr.Allsat(node, func(assignment []int) error {
		tokens := make(map[string]int, len(places))
		for i, p := range places {
			if assignment[i] > 0 {
				tokens[p] = 1
			}
		}
		result = petri.NewMarking(tokens)
		return errStopEnumeration
	})
	if err != nil && err != errStopEnumeration {
		return nil, fmt.Errorf("optimize: decoding assignment: %w", err)
	}
	return result, nil
}

var errStopEnumeration = fmt.Errorf("optimize: stop after first satisfying assignment")

func firstMarking(mgr *rudd.BDD, r rudd.Node, places []string) (petri.Marking, error) {
	return decodeAssignment(mgr, r, places)
}
