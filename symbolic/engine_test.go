package symbolic

import (
	"context"
	"errors"
	"testing"

	"github.com/pflow-xyz/go-petrinet/petri"
	"github.com/pflow-xyz/go-petrinet/reachability"
)

func buildChain(t *testing.T) *petri.PetriNet {
	t.Helper()
	net, err := petri.Build().
		Place("p1", true).
		Place("p2", false).
		Place("p3", false).
		Transition("t1").
		Transition("t2").
		Arc("p1", "t1").Arc("t1", "p2").
		Arc("p2", "t2").Arc("t2", "p3").
		Done()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return net
}

func TestNewRejectsEmptyNet(t *testing.T) {
	_, err := New(petri.New())
	if !errors.Is(err, ErrEmptyNet) {
		t.Fatalf("expected ErrEmptyNet, got %v", err)
	}
}

func TestIsReachableBeforeComputeErrors(t *testing.T) {
	e, err := New(buildChain(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = e.IsReachable(petri.NewMarking(map[string]int{"p1": 1}))
	if !errors.Is(err, ErrNotComputed) {
		t.Fatalf("expected ErrNotComputed, got %v", err)
	}
}

func TestComputeMatchesExplicitChain(t *testing.T) {
	net := buildChain(t)
	e, err := New(net)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Compute(context.Background()); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	oracle := reachability.BuildGraph(net)
	for _, m := range oracle.Markings() {
		ok, err := e.IsReachable(m)
		if err != nil {
			t.Fatalf("IsReachable(%v): %v", m, err)
		}
		if !ok {
			t.Errorf("marking %v reachable by BFS but not by BDD fixpoint", m)
		}
	}

	count, err := e.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != oracle.StateCount() {
		t.Errorf("symbolic reachable count = %d, want %d", count, oracle.StateCount())
	}
}

func TestComputeRejectsUnreachableMarking(t *testing.T) {
	net := buildChain(t)
	e, err := New(net)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Compute(context.Background()); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// p1 and p3 marked simultaneously is never reachable in a linear chain.
	ok, err := e.IsReachable(petri.NewMarking(map[string]int{"p1": 1, "p3": 1}))
	if err != nil {
		t.Fatalf("IsReachable: %v", err)
	}
	if ok {
		t.Errorf("{p1:1,p3:1} should not be reachable")
	}
}

func TestComputeCycle(t *testing.T) {
	net, err := petri.Build().
		Place("p1", true).
		Place("p2", false).
		Transition("t1").
		Transition("t2").
		Arc("p1", "t1").Arc("t1", "p2").
		Arc("p2", "t2").Arc("t2", "p1").
		Done()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	e, err := New(net)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Compute(context.Background()); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	count, err := e.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 reachable states in a 2-cycle, got %d", count)
	}
}

func TestComputeRespectsCancellation(t *testing.T) {
	e, err := New(buildChain(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.Compute(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIndependentBinaryPlacesCount(t *testing.T) {
	b := petri.Build()
	const n = 10
	for i := 0; i < n; i++ {
		a := rune('A' + i)
		b = b.Place(string(a)+"_on", true).
			Place(string(a)+"_off", false).
			Transition(string(a) + "_t").
			Arc(string(a)+"_on", string(a)+"_t").
			Arc(string(a)+"_t", string(a)+"_off")
	}
	net, err := b.Done()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	e, err := New(net)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Compute(context.Background()); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	count, err := e.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1<<n {
		t.Errorf("expected 2^%d = %d reachable states, got %d", n, 1<<n, count)
	}
}
