package parser

import "testing"

func TestFromJSONRoundTrip(t *testing.T) {
	input := []byte(`{
		"places": [
			{"id": "p1", "initial": 1},
			{"id": "p2", "initial": 0, "name": "holding"}
		],
		"transitions": [{"id": "t1"}],
		"arcs": [
			{"source": "p1", "target": "t1"},
			{"source": "t1", "target": "p2"}
		]
	}`)

	net, err := FromJSON(input)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if len(net.Places) != 2 || len(net.Transitions) != 1 {
		t.Fatalf("unexpected shape: %d places, %d transitions", len(net.Places), len(net.Transitions))
	}
	if !net.InitialMarking().HasToken("p1") {
		t.Errorf("p1 should be marked")
	}

	out, err := ToJSON(net)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	roundTripped, err := FromJSON(out)
	if err != nil {
		t.Fatalf("FromJSON(ToJSON(net)): %v", err)
	}
	if !roundTripped.InitialMarking().Equals(net.InitialMarking()) {
		t.Errorf("round trip changed the initial marking")
	}
}

func TestFromJSONRejectsInvalidJSON(t *testing.T) {
	if _, err := FromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}

func TestFromJSONRejectsDanglingArc(t *testing.T) {
	input := []byte(`{"places":[{"id":"p1"}],"transitions":[],"arcs":[{"source":"p1","target":"missing"}]}`)
	if _, err := FromJSON(input); err == nil {
		t.Fatalf("expected an error for an arc referencing an unknown transition")
	}
}
