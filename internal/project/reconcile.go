package project

import (
	"context"
	"fmt"
	"io"
)

// Order selects whether the coarse project update runs before or after the
// per-submodule updates.
type Order string

const (
	CoarseFirst Order = "coarse-first"
	FineFirst   Order = "fine-first"
)

// ParseOrder converts a flag value to an Order.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", CoarseFirst:
		return CoarseFirst, nil
	case FineFirst:
		return FineFirst, nil
	default:
		return "", fmt.Errorf("invalid order %q: expected %q or %q", s, CoarseFirst, FineFirst)
	}
}

// ReconcileOptions controls Reconcile.
type ReconcileOptions struct {
	Order Order
	// SkipProjectUpdate leaves out the pull and recursive submodule update.
	SkipProjectUpdate bool
	Update            UpdateOptions
}

// Reconcile runs the project update and the per-submodule updates in the
// configured order. It returns the submodules present at the end of the run
// together with one Result per updated submodule. Only a failed project
// update or scan is returned as an error.
func Reconcile(ctx context.Context, p *Project, s *Scanner, opts ReconcileOptions, out io.Writer) ([]Submodule, []Result, error) {
	coarse := func() error {
		if opts.SkipProjectUpdate {
			return nil
		}
		return p.Update(ctx)
	}
	load := func() ([]Submodule, error) {
		fmt.Fprintln(out, "Loading submodules")
		return s.Scan(p.Root)
	}

	if opts.Order == FineFirst {
		subs, err := load()
		if err != nil {
			return nil, nil, err
		}
		results := UpdateSubmodules(ctx, p.Runner, subs, opts.Update, out)
		if err := coarse(); err != nil {
			return subs, results, err
		}
		if opts.SkipProjectUpdate {
			return subs, results, nil
		}
		// The coarse update may have checked out submodules the first scan missed.
		subs, err = load()
		return subs, results, err
	}

	if err := coarse(); err != nil {
		return nil, nil, err
	}
	subs, err := load()
	if err != nil {
		return nil, nil, err
	}
	return subs, UpdateSubmodules(ctx, p.Runner, subs, opts.Update, out), nil
}
