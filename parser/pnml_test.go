package parser

import (
	"errors"
	"testing"
)

func TestFromPNMLBasicNet(t *testing.T) {
	input := []byte(`<?xml version="1.0"?>
<pnml>
  <net id="n1">
    <place id="p1"><initialMarking><text>1</text></initialMarking></place>
    <place id="p2"></place>
    <transition id="t1"/>
    <arc id="a1" source="p1" target="t1"><inscription><text>1</text></inscription></arc>
    <arc id="a2" source="t1" target="p2"/>
  </net>
</pnml>`)

	net, err := FromPNML(input)
	if err != nil {
		t.Fatalf("FromPNML: %v", err)
	}
	if len(net.Places) != 2 || len(net.Transitions) != 1 {
		t.Fatalf("unexpected shape: %d places, %d transitions", len(net.Places), len(net.Transitions))
	}
	if !net.InitialMarking().HasToken("p1") {
		t.Errorf("p1 should be marked")
	}
	m1, err := net.Fire("t1", net.InitialMarking())
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if !m1.HasToken("p2") || m1.HasToken("p1") {
		t.Errorf("unexpected marking after firing t1: %v", m1)
	}
}

func TestFromPNMLRejectsInitialMarkingAboveOne(t *testing.T) {
	input := []byte(`<pnml><net id="n1">
    <place id="p1"><initialMarking><text>2</text></initialMarking></place>
  </net></pnml>`)
	_, err := FromPNML(input)
	if !errors.Is(err, ErrNot1Safe) {
		t.Fatalf("expected ErrNot1Safe, got %v", err)
	}
}

func TestFromPNMLRejectsArcWeightAboveOne(t *testing.T) {
	input := []byte(`<pnml><net id="n1">
    <place id="p1"/>
    <transition id="t1"/>
    <arc id="a1" source="p1" target="t1"><inscription><text>3</text></inscription></arc>
  </net></pnml>`)
	_, err := FromPNML(input)
	if !errors.Is(err, ErrNot1Safe) {
		t.Fatalf("expected ErrNot1Safe, got %v", err)
	}
}

func TestFromPNMLRejectsMissingNet(t *testing.T) {
	_, err := FromPNML([]byte(`<pnml></pnml>`))
	if !errors.Is(err, ErrNoNet) {
		t.Fatalf("expected ErrNoNet, got %v", err)
	}
}
