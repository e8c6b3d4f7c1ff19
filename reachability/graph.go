// Package reachability computes the reachability graph of a 1-safe Petri
// net by explicit breadth-first search. It exists solely as a
// cross-validation oracle for the symbolic engine (package symbolic) on
// small nets — spec.md §4.4: "straightforward and ... not the hard part".
package reachability

import (
	"github.com/pflow-xyz/go-petrinet/petri"
)

// Graph is the explicit reachability graph (state space) of a net: every
// marking reachable from the initial marking, plus the one-step firing
// relation between them.
type Graph struct {
	Net     *petri.PetriNet
	Initial petri.Marking

	// states maps a marking's hash to the marking itself.
	states map[string]petri.Marking

	// adjacency maps a marking's hash to the transitions enabled there and
	// the hash of the resulting successor marking.
	adjacency map[string]map[string]string
}

// BuildGraph performs a breadth-first search from the net's initial
// marking, enumerating enabled transitions and firing each to discover
// successors, until no unseen marking remains.
func BuildGraph(net *petri.PetriNet) *Graph {
	initial := net.InitialMarking()
	g := &Graph{
		Net:       net,
		Initial:   initial,
		states:    make(map[string]petri.Marking),
		adjacency: make(map[string]map[string]string),
	}

	queue := []petri.Marking{initial}
	g.states[initial.Hash()] = initial

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		currentHash := current.Hash()

		for _, t := range net.EnabledTransitions(current) {
			next, err := net.Fire(t, current)
			if err != nil {
				// EnabledTransitions already filtered to enabled transitions;
				// Fire cannot fail here.
				continue
			}
			nextHash := next.Hash()

			if g.adjacency[currentHash] == nil {
				g.adjacency[currentHash] = make(map[string]string)
			}
			g.adjacency[currentHash][t] = nextHash

			if _, seen := g.states[nextHash]; !seen {
				g.states[nextHash] = next
				queue = append(queue, next)
			}
		}
	}

	return g
}

// Markings returns every reachable marking, in no particular order.
func (g *Graph) Markings() []petri.Marking {
	out := make([]petri.Marking, 0, len(g.states))
	for _, m := range g.states {
		out = append(out, m)
	}
	return out
}

// Contains reports whether m is reachable.
func (g *Graph) Contains(m petri.Marking) bool {
	_, ok := g.states[m.Hash()]
	return ok
}

// StateCount returns the number of reachable markings.
func (g *Graph) StateCount() int {
	return len(g.states)
}

// Successors returns the transition -> successor-marking map for m, or nil
// if m is unreachable or terminal.
func (g *Graph) Successors(m petri.Marking) map[string]petri.Marking {
	edges, ok := g.adjacency[m.Hash()]
	if !ok {
		return nil
	}
	out := make(map[string]petri.Marking, len(edges))
	for t, hash := range edges {
		out[t] = g.states[hash]
	}
	return out
}

// Deadlocks returns every reachable marking at which no transition is
// enabled.
func (g *Graph) Deadlocks() []petri.Marking {
	var out []petri.Marking
	for hash, m := range g.states {
		if len(g.adjacency[hash]) == 0 {
			out = append(out, m)
		}
	}
	return out
}
