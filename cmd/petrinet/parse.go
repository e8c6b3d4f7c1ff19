package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/pflow-xyz/go-petrinet/petri"
)

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	format := fs.String("format", "", "export the parsed net to this format (cbor) instead of just validating")
	out := fs.String("output", "", "file to write the export to (required with --format)")
	verbose := fs.Bool("verbose", false, "enable diagnostic logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: petrinet parse <net-file> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("net file required")
	}
	// Options may also follow the net file.
	path := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}

	logger := newLogger(*verbose)
	net, err := loadNet(path)
	if err != nil {
		return err
	}
	logger.Debug().Int("places", len(net.Places)).Int("transitions", len(net.Transitions)).Msg("parsed net")

	if ok, errs := net.Validate(); !ok {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "invalid: %v\n", e)
		}
		return fmt.Errorf("net failed validation (%d errors)", len(errs))
	}

	fmt.Printf("places: %d\n", len(net.Places))
	fmt.Printf("transitions: %d\n", len(net.Transitions))
	fmt.Printf("initial tokens: %d\n", net.InitialMarking().TotalTokens())

	if *format == "" {
		return nil
	}
	if *format != "cbor" {
		return fmt.Errorf("unsupported export format %q", *format)
	}
	if *out == "" {
		return fmt.Errorf("--output is required with --format")
	}
	return exportCBOR(net, *out)
}

// exportCBOR is a one-shot, user-requested export of a parsed net — not an
// automatic persistence layer, so a simple marshal-and-write is sufficient.
func exportCBOR(net *petri.PetriNet, path string) error {
	snapshot := struct {
		Places      []string `cbor:"places"`
		Transitions []string `cbor:"transitions"`
		Initial     []string `cbor:"initial"`
	}{
		Places:      net.SortedPlaceIDs(),
		Transitions: net.SortedTransitionIDs(),
		Initial:     net.InitialMarking().SortedPlaces(),
	}
	data, err := cbor.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode cbor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
