package remove

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/state"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

func NewCmdRemove(s *state.State) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id|code>",
		Aliases: []string{"rm"},
		Short:   "Delete a client and all of their notes",
		Long: heredoc.Doc(`
			Permanently deletes a client together with their sessions and
			assessments. Asks for confirmation unless --yes is given; without a
			terminal --yes is required.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cmdpkg.ResolveClient(cmd.Context(), s.API(), args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !cmdpkg.IsInteractive() {
					return fmt.Errorf("refusing to delete %s without --yes", c.Label())
				}
				ok, err := cmdpkg.Confirm(fmt.Sprintf("Delete %s and all of their notes?", c.Label()))
				if err != nil {
					return err
				}
				if !ok {
					cmd.Println("Kept client")
					return nil
				}
			}

			if err := s.API().DeleteClient(cmd.Context(), c.ID); err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}

			cmd.Printf("Deleted %s\n", c.Label())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}
