package edit

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/state"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

func NewCmdEdit(s *state.State) *cobra.Command {
	var flags cmdpkg.ClientFlags

	cmd := &cobra.Command{
		Use:   "edit <id|code>",
		Short: "Edit a client",
		Long: heredoc.Doc(`
			Updates a client. Only the flags you pass are changed; pass --born ""
			to clear the date of birth.
		`),
		Example: heredoc.Doc(`
			casebook clients edit ADA --email ada@example.com
			casebook clients edit 4 --last Byron
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.Changed(cmd.Flags()) {
				return fmt.Errorf("nothing to change: pass at least one field flag")
			}

			c, err := cmdpkg.ResolveClient(cmd.Context(), s.API(), args[0])
			if err != nil {
				return err
			}

			in := note.InputFrom(c)
			if err := flags.Apply(cmd.Flags(), &in); err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}

			updated, err := s.API().UpdateClient(cmd.Context(), c.ID, in)
			if err != nil {
				return fmt.Errorf("failed to update client: %w", err)
			}

			cmd.Printf("Updated client %s\n", updated.Label())
			return nil
		},
	}

	flags.Bind(cmd.Flags())
	return cmd
}
