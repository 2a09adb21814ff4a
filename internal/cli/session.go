package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/vcsxml/vcsxml/internal/config"
	"github.com/vcsxml/vcsxml/internal/gitmodules"
	"github.com/vcsxml/vcsxml/internal/logging"
	"github.com/vcsxml/vcsxml/internal/project"
	"github.com/vcsxml/vcsxml/internal/revision"
	"github.com/vcsxml/vcsxml/internal/vcs"
)

// newRunner builds the git runner for a session. Tests replace it.
var newRunner = func(s *config.Settings, stdout, stderr io.Writer, logger zerolog.Logger) vcs.Runner {
	return vcs.New(s.GitPath, vcs.WithOutput(stdout, stderr), vcs.WithLogger(logger))
}

// session carries the resolved settings and collaborators of one command run.
type session struct {
	settings *config.Settings
	logger   zerolog.Logger
	runner   vcs.Runner
	out      io.Writer
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	s, err := config.Load(cmd.Flags(), args)
	if err != nil {
		return nil, err
	}

	logger := logging.WithRun(logging.New(s.LogLevel, s.LogFormat, cmd.ErrOrStderr()))
	logger.Debug().
		Str("root", s.ProjectRoot).
		Str("project_file", s.ProjectFile).
		Str("git", s.GitPath).
		Str("ide_file", s.IDEFile).
		Msg("settings resolved")

	return &session{
		settings: s,
		logger:   logger,
		runner:   newRunner(s, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger),
		out:      cmd.OutOrStdout(),
	}, nil
}

// scanner returns a project scanner. With revisions it resolves the
// registered commit of every declared submodule in the declaring repository.
func (s *session) scanner(ctx context.Context, revisions bool) *project.Scanner {
	sc := &project.Scanner{
		Matcher: s.settings.Matcher(),
		Logger:  s.logger,
	}
	if revisions {
		sc.ParseOptions = func(dir string) []gitmodules.Option {
			resolver := revision.New(s.runner, dir, s.logger)
			return []gitmodules.Option{gitmodules.WithRevisions(resolver.Func(ctx))}
		}
	}
	return sc
}

func (s *session) project() *project.Project {
	return &project.Project{
		Root:   s.settings.ProjectRoot,
		Remote: s.settings.Remote,
		Branch: s.settings.Branch,
		Runner: s.runner,
		Out:    s.out,
	}
}

func (s *session) reconcileOptions() project.ReconcileOptions {
	return project.ReconcileOptions{
		Order:             s.settings.Order,
		SkipProjectUpdate: !s.settings.Pull,
		Update: project.UpdateOptions{
			ResetMode:     s.settings.ResetMode,
			TrackRevision: s.settings.TrackRevision,
		},
	}
}

func submoduleDirs(subs []project.Submodule) []string {
	dirs := make([]string, len(subs))
	for i, sm := range subs {
		dirs[i] = sm.FullPath
	}
	return dirs
}
