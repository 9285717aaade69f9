package open

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/fzf"
	"github.com/Paintersrp/casebook/internal/state"
	"github.com/Paintersrp/casebook/internal/tui/casebook"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Fuzzy-pick a client and open their notes.",
		Long: heredoc.Doc(`
			Lists clients for the current filter in a fuzzy finder. The chosen
			client is selected when the notes screen opens.
		`),
		Example: heredoc.Doc(`
			casebook open
			casebook open lovelace
			casebook open --filter all
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			filter := s.Config.Filter()
			clients, err := s.API().ListClients(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			finder := fzf.NewClientFinder(clients, fmt.Sprintf("%s clients", filter))
			c, err := finder.RunWithQuery(query)
			if errors.Is(err, fzf.ErrNoSelection) {
				cmd.Println("No client selected")
				return nil
			}
			if err != nil {
				return err
			}

			return casebook.Run(s.API(), casebook.Options{
				Filter:   filter,
				ClientID: c.ID,
				Defaults: s.Config.Defaults(),
			})
		},
	}

	return cmd
}
