package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vcsxml/vcsxml/internal/config"
	"github.com/vcsxml/vcsxml/internal/ide"
	"github.com/vcsxml/vcsxml/internal/vcs"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [project-root]",
	Short: "Check git, the project settings and the IDE mapping file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Settings errors are reported as a failed check, not an abort.
		s, err := newSession(cmd, args)
		if err != nil {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Settings check:")
			fmt.Fprintf(out, "  [FAIL] %v\n", err)
			return errDoctor
		}

		ok := true
		ok = checkGit(cmd.Context(), s.out, s.runner, s.settings.GitPath) && ok
		ok = checkProjectFile(s.out, s.settings) && ok
		ok = checkIDEFile(s.out, s.settings) && ok
		if !ok {
			return errDoctor
		}
		return nil
	},
}

var errDoctor = errors.New("one or more checks failed")

func checkGit(ctx context.Context, out io.Writer, r vcs.Runner, tool string) bool {
	fmt.Fprintln(out, "Git check:")
	v, err := vcs.Version(ctx, r)
	if err != nil {
		fmt.Fprintf(out, "  [MISS] %s: %v\n", tool, err)
		return false
	}
	if !vcs.SupportsMinimum(v) {
		fmt.Fprintf(out, "  [FAIL] %s version %s is older than %s\n", tool, v, vcs.MinimumVersion)
		return false
	}
	fmt.Fprintf(out, "  [ OK ] %s version %s\n", tool, v)
	return true
}

func checkProjectFile(out io.Writer, s *config.Settings) bool {
	fmt.Fprintln(out, "Project settings check:")
	if s.ProjectFile == "" {
		fmt.Fprintln(out, "  [ OK ] no project file, using defaults")
		return true
	}
	// Load already rejected an invalid file.
	fmt.Fprintf(out, "  [ OK ] %s is valid\n", s.ProjectFile)
	return true
}

func checkIDEFile(out io.Writer, s *config.Settings) bool {
	fmt.Fprintln(out, "IDE file check:")
	if _, err := os.Stat(s.IDEFile); err != nil {
		fmt.Fprintf(out, "  [MISS] %s not found\n", s.IDEFile)
		return false
	}
	doc, err := ide.Load(s.IDEFile)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}
	fmt.Fprintf(out, "  [ OK ] %s maps %d %s director(ies)\n", s.IDEFile, len(doc.Mappings(s.VCS)), ide.CanonicalKind(s.VCS))
	return true
}
