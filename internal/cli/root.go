package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vcsxml/vcsxml/internal/branding"
	"github.com/vcsxml/vcsxml/internal/ide"
	"github.com/vcsxml/vcsxml/internal/logging"
	"github.com/vcsxml/vcsxml/internal/project"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [project-root]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` pulls a superproject, brings every checked-out submodule to its
declared branch and registered commit, and registers each submodule directory
in the IDE's VCS mapping file so the IDE tracks it.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		return s.sync(cmd.Context())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("path", "p", "", "Project root (default: current directory)")
	pf.StringP("branch", "b", "", "Branch to pull (default: the tracked upstream)")
	pf.String("remote", "origin", "Remote to pull the branch from")
	pf.StringP("sm-reset", "s", project.DefaultResetMode, "Reset mode for submodules (soft, mixed, hard, merge, keep)")
	pf.Bool("no-revision", false, "Check out declared branches without resetting to the registered commit")
	pf.Bool("no-pull", false, "Skip the project pull and recursive submodule update")
	pf.String("order", string(project.CoarseFirst), "Run the project update before (coarse-first) or after (fine-first) the submodule updates")
	pf.String("match", "suffix", "How checkouts are matched to declared paths (suffix, segment)")
	pf.String("vcs", ide.DefaultKind, "VCS kind written to the IDE mapping")
	pf.String("ide-file", ide.DefaultFile, "IDE mapping file, relative to the project root")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", logging.FormatConsole, "Log format (console, json)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}
