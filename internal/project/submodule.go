package project

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vcsxml/vcsxml/internal/gitmodules"
	"github.com/vcsxml/vcsxml/internal/vcs"
)

// DefaultResetMode keeps local changes in the index.
const DefaultResetMode = "soft"

// ResetModes are the accepted `git reset` modes.
var ResetModes = []string{"soft", "mixed", "hard", "merge", "keep"}

// ValidateResetMode returns an error for modes git reset does not accept.
func ValidateResetMode(mode string) error {
	for _, m := range ResetModes {
		if m == mode {
			return nil
		}
	}
	return fmt.Errorf("invalid reset mode %q: expected one of %s", mode, strings.Join(ResetModes, ", "))
}

// Submodule is one discovered submodule checkout bound to its declaration.
type Submodule struct {
	FullPath   string
	Config     gitmodules.Record
	DeclaredIn string // declaration file the record came from
}

// Path returns the declared relative path.
func (s Submodule) Path() string {
	return s.Config.Path
}

// UpdateOptions controls the per-submodule update.
type UpdateOptions struct {
	ResetMode     string
	TrackRevision bool
}

// Update checks out the declared branch and, when revisions are tracked,
// resets to the registered commit.
func (s Submodule) Update(ctx context.Context, r vcs.Runner, opts UpdateOptions) error {
	if err := r.Run(ctx, s.FullPath, vcs.CheckoutArgs(s.Config.Branch)...); err != nil {
		return fmt.Errorf("checking out %s: %w", s.Config.Branch, err)
	}

	if !opts.TrackRevision || s.Config.Revision == "" {
		return nil
	}

	mode := opts.ResetMode
	if mode == "" {
		mode = DefaultResetMode
	}
	if err := r.Run(ctx, s.FullPath, vcs.ResetArgs(mode, s.Config.Revision)...); err != nil {
		return fmt.Errorf("resetting to %s: %w", s.Config.Revision, err)
	}
	return nil
}

// Result is the outcome of updating one submodule.
type Result struct {
	Submodule Submodule
	Err       error
}

// UpdateSubmodules updates every submodule in order and never stops early.
func UpdateSubmodules(ctx context.Context, r vcs.Runner, subs []Submodule, opts UpdateOptions, out io.Writer) []Result {
	results := make([]Result, 0, len(subs))
	for _, sm := range subs {
		fmt.Fprintf(out, "Submodule update %q\n", sm.Path())
		results = append(results, Result{Submodule: sm, Err: sm.Update(ctx, r, opts)})
	}
	return results
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// ResultsError summarizes failed results, or returns nil when all succeeded.
func ResultsError(results []Result) error {
	failed := Failed(results)
	if len(failed) == 0 {
		return nil
	}

	lines := make([]string, len(failed))
	for i, r := range failed {
		lines[i] = fmt.Sprintf("%s: %v", r.Submodule.Path(), r.Err)
	}
	return fmt.Errorf("%d submodule(s) failed to update:\n  %s", len(failed), strings.Join(lines, "\n  "))
}
