package totals

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/state"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

func NewCmdTotals(s *state.State) *cobra.Command {
	var client string

	cmd := &cobra.Command{
		Use:     "totals",
		Aliases: []string{"t"},
		Short:   "Show session and supervision hours",
		Long: heredoc.Doc(`
			Prints session and supervision counts and hours. Without --client the
			totals cover every client in the current filter.
		`),
		Example: heredoc.Doc(`
			casebook totals
			casebook totals --filter all
			casebook totals --client ADA
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				t     note.Totals
				label string
				err   error
			)

			if client != "" {
				c, rerr := cmdpkg.ResolveClient(cmd.Context(), s.API(), client)
				if rerr != nil {
					return rerr
				}
				label = c.Label()
				t, err = s.API().ClientTotals(cmd.Context(), c.ID)
			} else {
				label = fmt.Sprintf("%s clients", s.Config.Filter())
				t, err = s.API().Totals(cmd.Context(), s.Config.Filter())
			}
			if err != nil {
				return fmt.Errorf("failed to load totals: %w", err)
			}

			cmd.Printf("%s\n%s\n", label, t)
			return nil
		},
	}

	cmd.Flags().StringVarP(&client, "client", "c", "", "Totals for one client (id or code)")
	return cmd
}
