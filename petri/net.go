// Package petri implements the core data model for 1-safe Petri nets:
// places, transitions, the flow relation, enabling and firing, and the
// lazily-cached incidence matrix used by the deadlock detector's state
// equation.
package petri

import (
	"fmt"
	"sort"
)

// Place is a state-holding node of the net. It carries at most one token
// (the net is assumed 1-safe by its caller; see Invariants in SPEC_FULL.md §3).
type Place struct {
	ID   string
	Name string // optional human-readable label; empty if unset
}

// Transition is an event node of the net.
type Transition struct {
	ID   string
	Name string
}

// PetriNet is a complete 1-safe Petri net: places, transitions, and the
// flow relation, committed to a single typed representation (pre/post
// place-id sequences per transition) at AddArc time rather than probed
// from an ambiguous arc list.
type PetriNet struct {
	Places      map[string]*Place
	Transitions map[string]*Transition

	pre  map[string][]string // transition id -> consumed place ids, insertion order
	post map[string][]string // transition id -> produced place ids, insertion order

	initial Marking

	incidence *Incidence // lazily built, invalidated on structural change
}

// New creates an empty Petri net.
func New() *PetriNet {
	return &PetriNet{
		Places:      make(map[string]*Place),
		Transitions: make(map[string]*Transition),
		pre:         make(map[string][]string),
		post:        make(map[string][]string),
		initial:     make(Marking),
	}
}

// AddPlace adds a place with the given initial token state. name is
// optional; pass "" if there is no display label.
func (n *PetriNet) AddPlace(id string, hasToken bool, name string) error {
	if _, exists := n.Places[id]; exists {
		return fmt.Errorf("%w: place %q", ErrDuplicateID, id)
	}
	if _, exists := n.Transitions[id]; exists {
		return fmt.Errorf("%w: %q already used by a transition", ErrDuplicateID, id)
	}
	n.Places[id] = &Place{ID: id, Name: name}
	if hasToken {
		n.initial[id] = true
	}
	n.incidence = nil
	return nil
}

// AddTransition adds a transition. name is optional.
func (n *PetriNet) AddTransition(id string, name string) error {
	if _, exists := n.Transitions[id]; exists {
		return fmt.Errorf("%w: transition %q", ErrDuplicateID, id)
	}
	if _, exists := n.Places[id]; exists {
		return fmt.Errorf("%w: %q already used by a place", ErrDuplicateID, id)
	}
	n.Transitions[id] = &Transition{ID: id, Name: name}
	if _, ok := n.pre[id]; !ok {
		n.pre[id] = nil
	}
	if _, ok := n.post[id]; !ok {
		n.post[id] = nil
	}
	n.incidence = nil
	return nil
}

// AddArc adds a directed arc. src->dst must be place->transition (an input
// arc, recorded in pre(dst)) or transition->place (an output arc, recorded
// in post(src)); any other combination — place-place, transition-transition,
// or an unknown id — is rejected, keeping the flow relation bipartite.
// Re-adding an existing arc is idempotent (spec.md §3: duplicates within
// pre(t)/post(t) are not expected and, if present, are treated as idempotent).
func (n *PetriNet) AddArc(src, dst string) error {
	_, srcPlace := n.Places[src]
	_, dstPlace := n.Places[dst]
	_, srcTrans := n.Transitions[src]
	_, dstTrans := n.Transitions[dst]

	switch {
	case srcPlace && dstTrans:
		n.pre[dst] = appendUnique(n.pre[dst], src)
	case srcTrans && dstPlace:
		n.post[src] = appendUnique(n.post[src], dst)
	default:
		return fmt.Errorf("%w: %q -> %q", ErrInvalidArc, src, dst)
	}
	n.incidence = nil
	return nil
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

// Pre returns the (consumed) preset of transition t, or nil if t is unknown.
func (n *PetriNet) Pre(t string) []string {
	return n.pre[t]
}

// Post returns the (produced) postset of transition t, or nil if t is unknown.
func (n *PetriNet) Post(t string) []string {
	return n.post[t]
}

// InitialMarking returns a copy of the net's initial marking M0.
func (n *PetriNet) InitialMarking() Marking {
	return n.initial.Copy()
}

// SortedPlaceIDs returns place ids in sorted order — the canonical
// variable declaration order used by the symbolic engine (spec.md §3).
func (n *PetriNet) SortedPlaceIDs() []string {
	ids := make([]string, 0, len(n.Places))
	for id := range n.Places {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedTransitionIDs returns transition ids in sorted order.
func (n *PetriNet) SortedTransitionIDs() []string {
	ids := make([]string, 0, len(n.Transitions))
	for id := range n.Transitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsEnabled reports whether t is enabled at marking m: every place in
// pre(t) is marked.
func (n *PetriNet) IsEnabled(t string, m Marking) (bool, error) {
	if _, ok := n.Transitions[t]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTransition, t)
	}
	for _, p := range n.pre[t] {
		if !m.HasToken(p) {
			return false, nil
		}
	}
	return true, nil
}

// Fire fires t at marking m and returns the resulting marking: every place
// in pre(t) is cleared, then every place in post(t) is set. m is never
// mutated. Returns ErrNotEnabled if t is not enabled at m.
func (n *PetriNet) Fire(t string, m Marking) (Marking, error) {
	enabled, err := n.IsEnabled(t, m)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, fmt.Errorf("%w: %q", ErrNotEnabled, t)
	}
	out := m.Copy()
	for _, p := range n.pre[t] {
		out.SetToken(p, false)
	}
	for _, p := range n.post[t] {
		out.SetToken(p, true)
	}
	return out, nil
}

// EnabledTransitions returns the transitions enabled at m, in sorted-id
// order (a deterministic iteration order, per spec.md §4.1).
func (n *PetriNet) EnabledTransitions(m Marking) []string {
	var enabled []string
	for _, t := range n.SortedTransitionIDs() {
		if ok, _ := n.IsEnabled(t, m); ok {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// Incidence lazily builds and caches the incidence matrix
// C[p][t] = 1[p in post(t)] - 1[p in pre(t)].
func (n *PetriNet) Incidence() *Incidence {
	if n.incidence != nil {
		return n.incidence
	}
	places := n.SortedPlaceIDs()
	transitions := n.SortedTransitionIDs()

	placeIndex := make(map[string]int, len(places))
	for i, p := range places {
		placeIndex[p] = i
	}

	c := make([][]int, len(places))
	for i := range c {
		c[i] = make([]int, len(transitions))
	}

	for j, t := range transitions {
		for _, p := range n.pre[t] {
			if i, ok := placeIndex[p]; ok {
				c[i][j]--
			}
		}
		for _, p := range n.post[t] {
			if i, ok := placeIndex[p]; ok {
				c[i][j]++
			}
		}
	}

	n.incidence = &Incidence{Places: places, Transitions: transitions, C: c}
	return n.incidence
}

// Incidence is the cached C[p][t] matrix of a net, indexed by the sorted
// place/transition order recorded alongside it.
type Incidence struct {
	Places      []string
	Transitions []string
	C           [][]int
}

// At returns C[place][transition], or 0 if either id is unknown.
func (inc *Incidence) At(place, transition string) int {
	pi, ti := -1, -1
	for i, p := range inc.Places {
		if p == place {
			pi = i
			break
		}
	}
	for j, t := range inc.Transitions {
		if t == transition {
			ti = j
			break
		}
	}
	if pi < 0 || ti < 0 {
		return 0
	}
	return inc.C[pi][ti]
}

// ValidationError describes one structural problem found by Validate.
type ValidationError struct {
	Kind    error // one of the Err* sentinels
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Validate checks the net's structural invariants (spec.md §3): flow is
// bipartite (guaranteed by AddArc, checked here defensively), and every
// place or transition referenced by a pre/post set exists. It returns
// ok=true iff no errors were found; missing entries in the initial marking
// are already defaulted to 0 by Marking's semantics, so that part of
// spec.md §4.1 requires no separate check.
func (n *PetriNet) Validate() (bool, []*ValidationError) {
	var errs []*ValidationError

	for t := range n.Transitions {
		for _, p := range n.pre[t] {
			if _, ok := n.Places[p]; !ok {
				errs = append(errs, &ValidationError{
					Kind:    ErrDanglingRef,
					Message: fmt.Sprintf("petri: transition %q consumes unknown place %q", t, p),
				})
			}
		}
		for _, p := range n.post[t] {
			if _, ok := n.Places[p]; !ok {
				errs = append(errs, &ValidationError{
					Kind:    ErrDanglingRef,
					Message: fmt.Sprintf("petri: transition %q produces unknown place %q", t, p),
				})
			}
		}
	}
	for t := range n.pre {
		if _, ok := n.Transitions[t]; !ok {
			errs = append(errs, &ValidationError{
				Kind:    ErrDanglingRef,
				Message: fmt.Sprintf("petri: arcs reference unknown transition %q", t),
			})
		}
	}
	for t := range n.post {
		if _, ok := n.Transitions[t]; !ok {
			errs = append(errs, &ValidationError{
				Kind:    ErrDanglingRef,
				Message: fmt.Sprintf("petri: arcs reference unknown transition %q", t),
			})
		}
	}

	return len(errs) == 0, errs
}
