package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pflow-xyz/go-petrinet/parser"
	"github.com/pflow-xyz/go-petrinet/petri"
)

// loadNet reads path and parses it as PNML (.pnml, .xml) or the compact
// JSON format (anything else).
func loadNet(path string) (*petri.PetriNet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".pnml") || strings.HasSuffix(lower, ".xml") {
		return parser.FromPNML(data)
	}
	return parser.FromJSON(data)
}
