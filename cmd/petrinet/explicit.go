package main

import (
	"flag"
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"

	"github.com/pflow-xyz/go-petrinet/reachability"
)

func runExplicit(args []string) error {
	fs := flag.NewFlagSet("explicit", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "list every reachable marking")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: petrinet explicit <net-file> [options]\n\nOptions:\n")
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

	graph := reachability.BuildGraph(net)
	logger.Debug().Int("states", graph.StateCount()).Msg("explicit BFS complete")

	fmt.Printf("reachable states: %s\n", humanize.Comma(int64(graph.StateCount())))
	deadlocks := graph.Deadlocks()
	fmt.Printf("dead markings: %d\n", len(deadlocks))

	if *verbose {
		for _, m := range graph.Markings() {
			fmt.Printf("  %s\n", m)
		}
	}
	return nil
}
