package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/pflow-xyz/go-petrinet/symbolic"
)

func runBDD(args []string) error {
	fs := flag.NewFlagSet("bdd", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "list every reachable marking")
	timeout := fs.Duration("timeout", 30*time.Second, "cancel the fixpoint after this long")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: petrinet bdd <net-file> [options]\n\nOptions:\n")
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

	engine, err := symbolic.New(net)
	if err != nil {
		return fmt.Errorf("symbolic: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	if err := engine.Compute(ctx); err != nil {
		return fmt.Errorf("symbolic: %w", err)
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("fixpoint complete")

	count, err := engine.Count()
	if err != nil {
		return err
	}
	fmt.Printf("reachable states: %s\n", humanize.Comma(int64(count)))

	if *verbose {
		markings, err := engine.ExtractMarkings()
		if err != nil {
			return err
		}
		for _, m := range markings {
			fmt.Printf("  %s\n", m)
		}
	}
	return nil
}
