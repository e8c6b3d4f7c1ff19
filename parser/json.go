package parser

import (
	"encoding/json"
	"fmt"

	"github.com/pflow-xyz/go-petrinet/petri"
)

// document is the compact JSON representation: places carry only an id,
// optional display name, and a 0/1 initial token; arcs are unweighted and
// directional. There is no token-color or capacity layer — every place in
// this model is 1-safe by construction.
type document struct {
	Places      []jsonPlace      `json:"places"`
	Transitions []jsonTransition `json:"transitions"`
	Arcs        []jsonArc        `json:"arcs"`
}

type jsonPlace struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Initial int    `json:"initial"`
}

type jsonTransition struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type jsonArc struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// FromJSON parses a net from the compact JSON document format.
func FromJSON(data []byte) (*petri.PetriNet, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	net := petri.New()
	for _, p := range doc.Places {
		if err := net.AddPlace(p.ID, p.Initial != 0, p.Name); err != nil {
			return nil, err
		}
	}
	for _, t := range doc.Transitions {
		if err := net.AddTransition(t.ID, t.Name); err != nil {
			return nil, err
		}
	}
	for _, a := range doc.Arcs {
		if err := net.AddArc(a.Source, a.Target); err != nil {
			return nil, err
		}
	}

	if ok, errs := net.Validate(); !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, errs[0])
	}
	return net, nil
}

// ToJSON renders net in the compact JSON document format.
func ToJSON(net *petri.PetriNet) ([]byte, error) {
	m0 := net.InitialMarking()
	doc := document{}

	for _, id := range net.SortedPlaceIDs() {
		initial := 0
		if m0.HasToken(id) {
			initial = 1
		}
		doc.Places = append(doc.Places, jsonPlace{
			ID:      id,
			Name:    net.Places[id].Name,
			Initial: initial,
		})
	}
	for _, id := range net.SortedTransitionIDs() {
		doc.Transitions = append(doc.Transitions, jsonTransition{
			ID:   id,
			Name: net.Transitions[id].Name,
		})
		for _, p := range net.Pre(id) {
			doc.Arcs = append(doc.Arcs, jsonArc{Source: p, Target: id})
		}
		for _, p := range net.Post(id) {
			doc.Arcs = append(doc.Arcs, jsonArc{Source: id, Target: p})
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}
