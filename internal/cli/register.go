package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register [project-root]",
	Short: "Register checked-out submodules in the IDE file without running git",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}

		fmt.Fprintln(s.out, "Loading submodules")
		subs, err := s.scanner(cmd.Context(), false).Scan(s.settings.ProjectRoot)
		if err != nil {
			return err
		}
		if err := s.register(subs); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Done")
		return nil
	},
}
