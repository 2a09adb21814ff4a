package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [project-root]",
	Short: "List checked-out submodules with their declared branch and registered commit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}

		subs, err := s.scanner(cmd.Context(), s.settings.TrackRevision).Scan(s.settings.ProjectRoot)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Fprintln(s.out, "No submodules found.")
			return nil
		}

		w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tBRANCH\tREVISION\tURL")
		for _, sm := range subs {
			rev := sm.Config.Revision
			if rev == "" {
				rev = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sm.Path(), sm.Config.Branch, rev, sm.Config.URL)
		}
		return w.Flush()
	},
}
