package revision

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vcsxml/vcsxml/internal/gitmodules"
	"github.com/vcsxml/vcsxml/internal/vcs"
)

// ErrUnexpectedTree is returned when ls-tree output is not a
// `<mode> <type> <hash>\t<path>` line.
var ErrUnexpectedTree = errors.New("unexpected ls-tree output")

var treeEntry = regexp.MustCompile(`^\d+\s\w+\s(\S+)`)

// Resolver looks up registered submodule commits in one repository.
type Resolver struct {
	Runner vcs.Runner
	Root   string
	Logger zerolog.Logger
}

// New returns a Resolver for the repository at root.
func New(runner vcs.Runner, root string, logger zerolog.Logger) *Resolver {
	return &Resolver{Runner: runner, Root: root, Logger: logger}
}

// Resolve returns the commit hash registered for submodulePath on the current branch.
// Without a current branch it falls back to gitmodules.DefaultBranch.
func (r *Resolver) Resolve(ctx context.Context, submodulePath string) (string, error) {
	out, err := r.Runner.Output(ctx, r.Root, vcs.BranchArgs()...)
	if err != nil {
		return "", fmt.Errorf("listing branches in %s: %w", r.Root, err)
	}

	branch, ok := CurrentBranch(out)
	if !ok {
		branch = gitmodules.DefaultBranch
		r.Logger.Warn().
			Str("submodule", submodulePath).
			Str("branch", branch).
			Msg("no current branch, using default")
	}

	out, err = r.Runner.Output(ctx, r.Root, vcs.LsTreeArgs(branch, submodulePath)...)
	if err != nil {
		return "", fmt.Errorf("listing tree of %s at %s: %w", submodulePath, branch, err)
	}

	return ParseTreeHash(out)
}

// Func adapts the resolver for gitmodules.WithRevisions.
func (r *Resolver) Func(ctx context.Context) gitmodules.RevisionFunc {
	return func(path string) (string, error) {
		return r.Resolve(ctx, path)
	}
}

// CurrentBranch extracts the branch marked with "* " from `git branch` output.
// A detached HEAD is reported as no branch.
func CurrentBranch(output string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "* ") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(line, "* "))
		if name == "" || strings.HasPrefix(name, "(") {
			return "", false
		}
		if i := strings.IndexAny(name, " \t"); i >= 0 {
			name = name[:i]
		}
		return name, true
	}
	return "", false
}

// ParseTreeHash returns the object id from the first line of ls-tree output.
func ParseTreeHash(output string) (string, error) {
	line, _, _ := strings.Cut(output, "\n")
	m := treeEntry.FindStringSubmatch(line)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedTree, strings.TrimSpace(output))
	}
	return m[1], nil
}
