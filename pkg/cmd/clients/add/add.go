package add

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/state"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

func NewCmdAdd(s *state.State) *cobra.Command {
	var flags cmdpkg.ClientFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Long: heredoc.Doc(`
			Creates a client. Code, first name and last name are required; any that
			are not given as flags are prompted for on a terminal.
		`),
		Example: heredoc.Doc(`
			casebook clients add --code ADA --first Ada --last Lovelace
			casebook clients add --code BOB --born 1984-03-02
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in note.ClientInput
			if err := flags.Apply(cmd.Flags(), &in); err != nil {
				return err
			}
			if cmdpkg.IsInteractive() {
				if err := cmdpkg.PromptMissing(&in); err != nil {
					return err
				}
			}
			if err := in.Validate(); err != nil {
				return err
			}

			c, err := s.API().CreateClient(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to add client: %w", err)
			}

			cmd.Printf("Added client %s (id %d)\n", c.Label(), c.ID)
			return nil
		},
	}

	flags.Bind(cmd.Flags())
	return cmd
}
