package reachability

import (
	"testing"

	"github.com/pflow-xyz/go-petrinet/petri"
)

func must(t *testing.T, net *petri.PetriNet, err error) *petri.PetriNet {
	t.Helper()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return net
}

// TestLinearChainScenario is end-to-end scenario 1 from spec.md §8.
func TestLinearChainScenario(t *testing.T) {
	net := must(t, petri.Build().
		Place("p1", true).
		Place("p2", false).
		Place("p3", false).
		Transition("t1").
		Transition("t2").
		Arc("p1", "t1").Arc("t1", "p2").
		Arc("p2", "t2").Arc("t2", "p3").
		Done())

	g := BuildGraph(net)
	if g.StateCount() != 3 {
		t.Fatalf("expected 3 reachable states, got %d", g.StateCount())
	}
	want := petri.NewMarking(map[string]int{"p3": 1})
	if !g.Contains(want) {
		t.Errorf("expected {p3:1} to be reachable")
	}
	deadlocks := g.Deadlocks()
	if len(deadlocks) != 1 || !deadlocks[0].Equals(want) {
		t.Errorf("expected single deadlock {p3:1}, got %v", deadlocks)
	}
}

// TestCycleScenario is end-to-end scenario 2 from spec.md §8.
func TestCycleScenario(t *testing.T) {
	net := must(t, petri.Build().
		Place("p1", true).
		Place("p2", false).
		Transition("t1").
		Transition("t2").
		Arc("p1", "t1").Arc("t1", "p2").
		Arc("p2", "t2").Arc("t2", "p1").
		Done())

	g := BuildGraph(net)
	if g.StateCount() != 2 {
		t.Fatalf("expected 2 reachable states, got %d", g.StateCount())
	}
	if len(g.Deadlocks()) != 0 {
		t.Errorf("cycle should have no deadlock")
	}
}

// TestChoiceScenario is end-to-end scenario 3 from spec.md §8.
func TestChoiceScenario(t *testing.T) {
	net := must(t, petri.Build().
		Place("p1", true).
		Place("p2", false).
		Place("p3", false).
		Transition("t1").
		Transition("t2").
		Arc("p1", "t1").Arc("t1", "p2").
		Arc("p1", "t2").Arc("t2", "p3").
		Done())

	g := BuildGraph(net)
	if g.StateCount() != 3 {
		t.Fatalf("expected 3 reachable states, got %d", g.StateCount())
	}
	deadlocks := g.Deadlocks()
	if len(deadlocks) != 2 {
		t.Fatalf("expected 2 deadlocks, got %d", len(deadlocks))
	}
}

// TestForkScenario is end-to-end scenario 4 from spec.md §8.
func TestForkScenario(t *testing.T) {
	net := must(t, petri.Build().
		Place("p1", true).
		Place("p2", false).
		Place("p3", false).
		Transition("t1").
		Arc("p1", "t1").Arc("t1", "p2").Arc("t1", "p3").
		Done())

	g := BuildGraph(net)
	if g.StateCount() != 2 {
		t.Fatalf("expected 2 reachable states, got %d", g.StateCount())
	}
	want := petri.NewMarking(map[string]int{"p2": 1, "p3": 1})
	deadlocks := g.Deadlocks()
	if len(deadlocks) != 1 || !deadlocks[0].Equals(want) {
		t.Errorf("expected deadlock {p2:1,p3:1}, got %v", deadlocks)
	}
}

// TestSelfLoopScenario is end-to-end scenario 6 from spec.md §8.
func TestSelfLoopScenario(t *testing.T) {
	net := must(t, petri.Build().
		Place("p", true).
		Transition("t").
		Arc("p", "t").Arc("t", "p").
		Done())

	g := BuildGraph(net)
	if g.StateCount() != 1 {
		t.Fatalf("expected 1 reachable state, got %d", g.StateCount())
	}
	if len(g.Deadlocks()) != 0 {
		t.Errorf("self-loop transition is always enabled; expected no deadlock")
	}
}

// TestIndependentBinaryPlaces is the scaling scenario 5 from spec.md §8:
// n disjoint (place, place, transition) pairs give 2^n reachable states.
func TestIndependentBinaryPlaces(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		n := n
		t.Run("", func(t *testing.T) {
			b := petri.Build()
			for i := 0; i < n; i++ {
				a := placeName(i, "a")
				c := placeName(i, "b")
				tr := placeName(i, "t")
				b = b.Place(a, true).Place(c, false).Transition(tr).Arc(a, tr).Arc(tr, c)
			}
			net := must(t, b.Done())
			g := BuildGraph(net)
			want := 1
			for i := 0; i < n; i++ {
				want *= 2
			}
			if g.StateCount() != want {
				t.Errorf("n=%d: expected %d states, got %d", n, want, g.StateCount())
			}
		})
	}
}

func placeName(i int, suffix string) string {
	return string(rune('A'+i)) + "_" + suffix
}

func TestFiringConservation(t *testing.T) {
	net := must(t, petri.Build().
		Place("p1", true).
		Place("p2", false).
		Place("p3", false).
		Transition("t1").
		Arc("p1", "t1").Arc("t1", "p2").Arc("t1", "p3").
		Done())

	m0 := net.InitialMarking()
	m1, err := net.Fire("t1", m0)
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	// |post(t)\pre(t)| - |pre(t)\post(t)| = 2 - 1 = 1
	if m1.TotalTokens()-m0.TotalTokens() != 1 {
		t.Errorf("firing conservation violated: delta = %d, want 1", m1.TotalTokens()-m0.TotalTokens())
	}
}
