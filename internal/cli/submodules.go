package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vcsxml/vcsxml/internal/project"
)

func init() {
	rootCmd.AddCommand(submodulesCmd)
}

var submodulesCmd = &cobra.Command{
	Use:   "submodules [project-root]",
	Short: "Update the project and every submodule without touching the IDE file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, results, err := project.Reconcile(ctx, s.project(), s.scanner(ctx, s.settings.TrackRevision), s.reconcileOptions(), s.out)
		if err != nil {
			return err
		}
		if err := s.finish(results); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Done")
		return nil
	},
}
