// Package parser loads a 1-safe Petri net from an external file format: a
// compact JSON representation, or a restricted subset of PNML (ISO/IEC
// 15909-2) accepted only when it describes a 1-safe net.
package parser

import "errors"

var (
	// ErrInvalidJSON is returned when the input is not well-formed JSON or
	// its root is not an object.
	ErrInvalidJSON = errors.New("parser: invalid JSON")

	// ErrInvalidPNML is returned when the input is not well-formed PNML XML.
	ErrInvalidPNML = errors.New("parser: invalid PNML")

	// ErrNot1Safe is returned when a PNML document declares an initial
	// marking other than 0 or 1, or an arc weight other than 1 — this
	// loader accepts only the 1-safe subset of PNML.
	ErrNot1Safe = errors.New("parser: PNML net is not 1-safe")

	// ErrNoNet is returned when a PNML document contains no <net> element.
	ErrNoNet = errors.New("parser: PNML document has no net element")
)
