package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultTool is the git client looked up on PATH when no explicit path is configured.
const DefaultTool = "git"

// Runner runs the version-control tool with an argument list in a directory.
type Runner interface {
	// Run executes the tool, streaming its output to the console.
	Run(ctx context.Context, dir string, args ...string) error
	// Output executes the tool and returns its captured stdout.
	Output(ctx context.Context, dir string, args ...string) (string, error)
}

// CommandError reports a tool invocation that exited with a non-zero status.
type CommandError struct {
	Tool     string
	Args     []string
	Dir      string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s (in %s) exited with status %d", e.Tool, strings.Join(e.Args, " "), e.Dir, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Git invokes the git executable.
type Git struct {
	tool   string
	stdout io.Writer
	stderr io.Writer
	env    []string
	logger zerolog.Logger
}

// Option configures a Git gateway.
type Option func(*Git)

// WithOutput sets where streamed stdout and stderr go (default os.Stdout/os.Stderr).
func WithOutput(stdout, stderr io.Writer) Option {
	return func(g *Git) {
		g.stdout = stdout
		g.stderr = stderr
	}
}

// WithEnv replaces the inherited environment.
func WithEnv(env []string) Option {
	return func(g *Git) {
		g.env = env
	}
}

// WithLogger sets the logger used for per-invocation debug records.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Git) {
		g.logger = logger
	}
}

// New creates a gateway for the given tool path. An empty tool means DefaultTool.
func New(tool string, opts ...Option) *Git {
	if tool == "" {
		tool = DefaultTool
	}
	g := &Git{
		tool:   tool,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Tool returns the executable this gateway invokes.
func (g *Git) Tool() string {
	return g.tool
}

// Run executes the tool in dir, streaming stdout and stderr to the configured writers.
func (g *Git) Run(ctx context.Context, dir string, args ...string) error {
	var stderrBuf bytes.Buffer
	cmd := g.command(ctx, dir, args)
	cmd.Stdout = g.stdout
	cmd.Stderr = io.MultiWriter(g.stderr, &stderrBuf)

	err := cmd.Run()
	return g.wrap(err, dir, args, stderrBuf.String())
}

// Output executes the tool in dir and returns its stdout. Stderr is still
// streamed so the user sees the tool's own diagnostics.
func (g *Git) Output(ctx context.Context, dir string, args ...string) (string, error) {
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := g.command(ctx, dir, args)
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = io.MultiWriter(g.stderr, &stderrBuf)

	err := cmd.Run()
	return stdoutBuf.String(), g.wrap(err, dir, args, stderrBuf.String())
}

func (g *Git) command(ctx context.Context, dir string, args []string) *exec.Cmd {
	g.logger.Debug().Str("dir", dir).Strs("args", args).Msg("running " + g.tool)

	cmd := exec.CommandContext(ctx, g.tool, args...)
	cmd.Dir = dir
	if g.env != nil {
		cmd.Env = g.env
	} else {
		cmd.Env = os.Environ()
	}
	return cmd
}

func (g *Git) wrap(err error, dir string, args []string, stderr string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{
			Tool:     g.tool,
			Args:     args,
			Dir:      dir,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr),
		}
	}
	return fmt.Errorf("running %s %s: %w", g.tool, strings.Join(args, " "), err)
}
