package notes

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/state"
	"github.com/Paintersrp/casebook/internal/tui/casebook"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	var client string

	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"n"},
		Short:   "Open the notes screen.",
		Long: heredoc.Doc(`
			Opens the interactive notes screen. Clients are listed on the left with
			the Supervision and CPD entries; the selected context's notes are in the
			middle and the open note on the right.

			Unsaved edits are never dropped silently: leaving a modified note asks
			first, and leaving a new note you never saved deletes it.
		`),
		Example: heredoc.Doc(`
			casebook notes
			casebook notes --client ADA
			casebook notes --filter archived
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), s, client)
		},
	}

	cmd.Flags().StringVarP(&client, "client", "c", "", "Open with this client (id or code) selected")
	return cmd
}

func run(ctx context.Context, s *state.State, client string) error {
	opts := casebook.Options{
		Filter:   s.Config.Filter(),
		Defaults: s.Config.Defaults(),
	}
	if client != "" {
		c, err := cmdpkg.ResolveClient(ctx, s.API(), client)
		if err != nil {
			return err
		}
		opts.ClientID = c.ID
	}
	return casebook.Run(s.API(), opts)
}
