package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pflow-xyz/go-petrinet/petri"
)

// pnmlDocument is the restricted subset of PNML (ISO/IEC 15909-2) this
// loader understands: a single net, places and transitions with an optional
// name label, plain arcs. Initial markings and arc weights above 1 are rejected rather than
// silently truncated, since this model has no notion of a multi-token place.
type pnmlDocument struct {
	XMLName xml.Name `xml:"pnml"`
	Nets    []pnmlNet `xml:"net"`
}

type pnmlNet struct {
	ID          string            `xml:"id,attr"`
	Places      []pnmlPlace       `xml:"place"`
	Transitions []pnmlTransition  `xml:"transition"`
	Arcs        []pnmlArc         `xml:"arc"`
}

type pnmlPlace struct {
	ID              string       `xml:"id,attr"`
	Name            *pnmlText    `xml:"name>text"`
	InitialMarking  *pnmlText    `xml:"initialMarking>text"`
}

type pnmlTransition struct {
	ID   string    `xml:"id,attr"`
	Name *pnmlText `xml:"name>text"`
}

type pnmlArc struct {
	Source      string    `xml:"source,attr"`
	Target      string    `xml:"target,attr"`
	Inscription *pnmlText `xml:"inscription>text"`
}

type pnmlText struct {
	Value string `xml:",chardata"`
}

// FromPNML parses the first net of a PNML document. It rejects any place
// with an initial marking other than 0 or 1, and any arc with a weight
// other than 1 (ErrNot1Safe) — this model has no multi-token semantics.
func FromPNML(data []byte) (*petri.PetriNet, error) {
	var doc pnmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPNML, err)
	}
	if len(doc.Nets) == 0 {
		return nil, ErrNoNet
	}
	pn := doc.Nets[0]

	net := petri.New()
	for _, p := range pn.Places {
		tokens := 0
		if p.InitialMarking != nil {
			v, err := parseMarkingText(p.InitialMarking.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: place %q: %v", ErrInvalidPNML, p.ID, err)
			}
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("%w: place %q has initial marking %d", ErrNot1Safe, p.ID, v)
			}
			tokens = v
		}
		name := ""
		if p.Name != nil {
			name = strings.TrimSpace(p.Name.Value)
		}
		if err := net.AddPlace(p.ID, tokens == 1, name); err != nil {
			return nil, err
		}
	}
	for _, t := range pn.Transitions {
		name := ""
		if t.Name != nil {
			name = strings.TrimSpace(t.Name.Value)
		}
		if err := net.AddTransition(t.ID, name); err != nil {
			return nil, err
		}
	}
	for _, a := range pn.Arcs {
		if a.Inscription != nil {
			w, err := parseMarkingText(a.Inscription.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: arc %s->%s: %v", ErrInvalidPNML, a.Source, a.Target, err)
			}
			if w != 1 {
				return nil, fmt.Errorf("%w: arc %s->%s has weight %d", ErrNot1Safe, a.Source, a.Target, w)
			}
		}
		if err := net.AddArc(a.Source, a.Target); err != nil {
			return nil, err
		}
	}

	if ok, errs := net.Validate(); !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPNML, errs[0])
	}
	return net, nil
}

func parseMarkingText(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
