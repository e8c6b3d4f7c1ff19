package petri

import (
	"errors"
	"testing"
)

func TestBuilderFluentChain(t *testing.T) {
	net, err := Build().
		Place("p1", true).
		Place("p2", false).
		Transition("t1").
		Arc("p1", "t1").
		Arc("t1", "p2").
		Done()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(net.Places) != 2 || len(net.Transitions) != 1 {
		t.Fatalf("unexpected net shape: %d places, %d transitions", len(net.Places), len(net.Transitions))
	}
	if !net.InitialMarking().HasToken("p1") {
		t.Errorf("p1 should start marked")
	}
}

func TestBuilderStopsAtFirstError(t *testing.T) {
	net, err := Build().
		Place("p1", true).
		Place("p1", false). // duplicate: should set err and short-circuit the rest
		Transition("t1").
		Arc("p1", "t1").
		Done()
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	// Despite the chained Transition/Arc calls after the error, nothing
	// further should have been added.
	if _, ok := net.Transitions["t1"]; ok {
		t.Errorf("builder should stop applying calls after the first error")
	}
}

func TestBuilderFlow(t *testing.T) {
	net, err := Build().
		Place("in", true).
		Place("out", false).
		Transition("process").
		Flow("in", "process", "out").
		Done()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m1, err := net.Fire("process", net.InitialMarking())
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if !m1.HasToken("out") || m1.HasToken("in") {
		t.Errorf("unexpected marking after flow: %v", m1)
	}
}

func TestBuilderChain(t *testing.T) {
	net, err := Build().
		Chain("p1", "t1", "p2", "t2", "p3").
		Done()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(net.Places) != 3 || len(net.Transitions) != 2 {
		t.Fatalf("unexpected net shape: %d places, %d transitions", len(net.Places), len(net.Transitions))
	}
	if !net.InitialMarking().HasToken("p1") {
		t.Errorf("chain should mark the first place")
	}
}

func TestBuilderChainRejectsEvenLength(t *testing.T) {
	net, err := Build().
		Chain("p1", "t1"). // even length, not a valid chain shape
		Done()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(net.Places) != 0 {
		t.Errorf("malformed chain should be a no-op, got %d places", len(net.Places))
	}
}
