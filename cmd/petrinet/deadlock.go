package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pflow-xyz/go-petrinet/deadlock"
	"github.com/pflow-xyz/go-petrinet/symbolic"
)

func runDeadlock(args []string) error {
	fs := flag.NewFlagSet("deadlock", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "enable diagnostic logging")
	timeout := fs.Duration("timeout", 30*time.Second, "cancel the search after this long")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: petrinet deadlock <net-file> [options]\n\nOptions:\n")
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

	if err := engine.Compute(ctx); err != nil {
		return fmt.Errorf("symbolic: %w", err)
	}

	detector := deadlock.New(net, engine)
	result, found, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("deadlock: %w", err)
	}
	if !found {
		fmt.Println("deadlock-free: no reachable marking disables every transition")
		return nil
	}

	logger.Debug().Int("cuts", result.Cuts).Dur("elapsed", result.Elapsed).Msg("deadlock confirmed")
	fmt.Printf("deadlock found: %s\n", result.Marking)
	return nil
}
