package project

import (
	"context"
	"fmt"
	"io"

	"github.com/vcsxml/vcsxml/internal/vcs"
)

// Project is a superproject checkout.
type Project struct {
	Root   string
	Remote string // remote passed to pull together with Branch
	Branch string // branch to pull; empty pulls the tracked upstream
	Runner vcs.Runner
	Out    io.Writer
}

// Update pulls the project and runs the recursive submodule update so every
// declared submodule is initialized and checked out.
func (p *Project) Update(ctx context.Context) error {
	fmt.Fprintf(p.Out, "Project update %q\n", p.Root)

	if err := p.Runner.Run(ctx, p.Root, vcs.PullArgs(p.Remote, p.Branch)...); err != nil {
		return fmt.Errorf("pulling project: %w", err)
	}
	if err := p.Runner.Run(ctx, p.Root, vcs.SubmoduleUpdateArgs()...); err != nil {
		return fmt.Errorf("updating submodules: %w", err)
	}
	return nil
}
