// Package symbolic implements the BDD-backed reachability engine: it
// encodes the set of reachable markings of a 1-safe Petri net as a Boolean
// characteristic function and computes it as the fixpoint of a transition
// relation, rather than by enumerating states one at a time.
package symbolic

import (
	"context"
	"fmt"
	"sort"

	"github.com/dalzilio/rudd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pflow-xyz/go-petrinet/petri"
)

// Engine owns a BDD manager dedicated to one net: the current/next variable
// declaration, the cached transition relation, and — once Compute has run —
// the reachable set. An Engine is not safe for concurrent use; the deadlock
// detector and optimizer borrow its manager and reachable set but never
// mutate either (spec.md §5).
type Engine struct {
	net    *petri.PetriNet
	places []string // sorted; canonical variable declaration order

	index      map[string]int // place -> current-state variable index
	primeIndex map[string]int // place -> next-state variable index

	mgr *rudd.BDD
	set rudd.Set

	initial   rudd.Node
	relation  rudd.Node // T(s,s'), built once at construction time
	reachable rudd.Node // R(s), nil until Compute succeeds
	computed  bool

	logger zerolog.Logger
}

// New declares two Boolean variables per place — current and next — in
// sorted place-name order, builds and caches the transition relation, and
// encodes the initial marking as the fixpoint's starting set. It does not
// run the fixpoint; call Compute for that.
func New(net *petri.PetriNet) (*Engine, error) {
	places := net.SortedPlaceIDs()
	n := len(places)
	if n == 0 {
		return nil, ErrEmptyNet
	}

	mgr, err := rudd.New(2 * n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManager, err)
	}

	index := make(map[string]int, n)
	primeIndex := make(map[string]int, n)
	for i, p := range places {
		index[p] = i
		primeIndex[p] = n + i
	}

	e := &Engine{
		net:        net,
		places:     places,
		index:      index,
		primeIndex: primeIndex,
		mgr:        mgr,
		set:        rudd.Set{BDD: mgr},
		logger:     log.With().Str("component", "symbolic").Int("places", n).Logger(),
	}

	e.initial, err = e.encode(net.InitialMarking(), e.index)
	if err != nil {
		return nil, err
	}

	e.relation = e.buildRelation()
	e.logger.Debug().Msg("engine initialized")
	return e, nil
}

// encode returns the cube (conjunction of literals) asserting m over the
// variable family selected by idx (current or next).
func (e *Engine) encode(m petri.Marking, idx map[string]int) (rudd.Node, error) {
	for p, marked := range m {
		if _, ok := idx[p]; marked && !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlace, p)
		}
	}
	n := e.mgr.True()
	for _, p := range e.places {
		i, ok := idx[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlace, p)
		}
		var lit rudd.Node
		if m.HasToken(p) {
			lit = e.mgr.Ithvar(i)
		} else {
			lit = e.mgr.NIthvar(i)
		}
		n = e.set.And(n, lit)
	}
	if msg := e.mgr.Error(); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrManager, msg)
	}
	return n, nil
}

// buildRelation constructs T(s,s') = OR_t enabled_t(s) AND update_t(s,s'),
// per spec.md §3 (update_t sets post(t), clears pre(t)\post(t), and holds
// every other place fixed — the frame axiom).
func (e *Engine) buildRelation() rudd.Node {
	var clauses []rudd.Node
	for _, t := range e.net.SortedTransitionIDs() {
		pre := e.net.Pre(t)
		post := e.net.Post(t)

		postSet := make(map[string]bool, len(post))
		for _, p := range post {
			postSet[p] = true
		}
		preSet := make(map[string]bool, len(pre))
		for _, p := range pre {
			preSet[p] = true
		}

		enabled := e.mgr.True()
		for _, p := range pre {
			enabled = e.set.And(enabled, e.mgr.Ithvar(e.index[p]))
		}

		update := e.mgr.True()
		for _, p := range e.places {
			cur, next := e.index[p], e.primeIndex[p]
			var delta rudd.Node
			switch {
			case postSet[p]:
				delta = e.mgr.Ithvar(next)
			case preSet[p]:
				delta = e.mgr.NIthvar(next)
			default:
				delta = e.set.Equiv(e.mgr.Ithvar(cur), e.mgr.Ithvar(next))
			}
			update = e.set.And(update, delta)
		}

		clauses = append(clauses, e.set.And(enabled, update))
	}
	if len(clauses) == 0 {
		return e.mgr.False()
	}
	return e.set.Or(clauses...)
}

// currentVarset is the Makeset cube used to existentially quantify the
// current-state variables while leaving the next-state variables free.
func (e *Engine) currentVarset() rudd.Node {
	idx := make([]int, len(e.places))
	for i, p := range e.places {
		idx[i] = e.index[p]
	}
	return e.mgr.Makeset(idx)
}

// Post computes the set of one-step successors of R: conjoin with the
// transition relation, quantify away the current-state variables, then
// rename the surviving next-state variables back to their current
// counterparts (spec.md §4.2, steps 1-3).
func (e *Engine) Post(r rudd.Node) (rudd.Node, error) {
	joint := e.set.AndExist(e.currentVarset(), r, e.relation)

	oldVars := make([]int, len(e.places))
	newVars := make([]int, len(e.places))
	for i, p := range e.places {
		oldVars[i] = e.primeIndex[p]
		newVars[i] = e.index[p]
	}
	replacer := rudd.NewReplacer(oldVars, newVars)
	renamed := e.mgr.Replace(joint, replacer)
	if msg := e.mgr.Error(); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrManager, msg)
	}
	return renamed, nil
}

// Compute runs the fixpoint R <- R0 OR Post(R) until a step adds nothing
// new, or ctx is cancelled. It is idempotent: a second call simply recomputes
// from R0 and overwrites the cached reachable set.
func (e *Engine) Compute(ctx context.Context) error {
	r := e.initial
	for iteration := 0; ; iteration++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		post, err := e.Post(r)
		if err != nil {
			return err
		}
		next := e.set.Or(r, post)
		if e.set.Equal(next, r) {
			e.reachable = next
			e.computed = true
			e.logger.Debug().Int("iterations", iteration+1).Msg("fixpoint reached")
			return nil
		}
		r = next
	}
}

// Reachable returns the computed reachable set, for the deadlock detector
// and optimizer to borrow; its owning manager is returned by Manager.
// Returns ErrNotComputed if Compute has not yet run.
func (e *Engine) Reachable() (rudd.Node, error) {
	if !e.computed {
		return nil, ErrNotComputed
	}
	return e.reachable, nil
}

// Manager returns the BDD manager owning every node this engine produces.
func (e *Engine) Manager() *rudd.BDD {
	return e.mgr
}

// Places returns the canonical sorted variable declaration order.
func (e *Engine) Places() []string {
	out := make([]string, len(e.places))
	copy(out, e.places)
	return out
}

// VarIndex returns the current-state variable index for p.
func (e *Engine) VarIndex(p string) (int, bool) {
	i, ok := e.index[p]
	return i, ok
}

// IsReachable reports whether m belongs to the computed reachable set.
func (e *Engine) IsReachable(m petri.Marking) (bool, error) {
	r, err := e.Reachable()
	if err != nil {
		return false, err
	}
	cube, err := e.encode(m, e.index)
	if err != nil {
		return false, err
	}
	conj := e.set.And(r, cube)
	return !e.set.Equal(conj, e.mgr.False()), nil
}

// ExtractMarkings enumerates every marking in the computed reachable set.
// It is intended for tests and verbose CLI output on small nets — spec.md
// §4.2: "never needed for the core analyses."
func (e *Engine) ExtractMarkings() ([]petri.Marking, error) {
	r, err := e.Reachable()
	if err != nil {
		return nil, err
	}

	n := len(e.places)
	seen := make(map[string]petri.Marking)

	err = e.mgr.Allsat(r, func(assignment []int) error {
		pattern := make([]int, n)
		copy(pattern, assignment[:n])
		for _, m := range expandDontCares(pattern, e.places) {
			seen[m.Hash()] = m
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: enumerating reachable set: %v", ErrManager, err)
	}

	out := make([]petri.Marking, 0, len(seen))
	for _, m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hash() < out[j].Hash() })
	return out, nil
}

// expandDontCares turns one Allsat pattern (values 0, 1, or -1 for a
// don't-care place) into every concrete marking it represents.
func expandDontCares(pattern []int, places []string) []petri.Marking {
	dontCares := []int{}
	for i, v := range pattern {
		if v < 0 {
			dontCares = append(dontCares, i)
		}
	}
	base := make(map[string]int, len(places))
	for i, p := range places {
		if pattern[i] >= 0 {
			base[p] = pattern[i]
		}
	}
	if len(dontCares) == 0 {
		return []petri.Marking{petri.NewMarking(base)}
	}

	out := make([]petri.Marking, 0, 1<<len(dontCares))
	for mask := 0; mask < 1<<len(dontCares); mask++ {
		tokens := make(map[string]int, len(places))
		for p, v := range base {
			tokens[p] = v
		}
		for bit, idx := range dontCares {
			if mask&(1<<bit) != 0 {
				tokens[places[idx]] = 1
			} else {
				tokens[places[idx]] = 0
			}
		}
		out = append(out, petri.NewMarking(tokens))
	}
	return out
}

// Count returns the number of distinct reachable markings.
func (e *Engine) Count() (int, error) {
	markings, err := e.ExtractMarkings()
	if err != nil {
		return 0, err
	}
	return len(markings), nil
}
