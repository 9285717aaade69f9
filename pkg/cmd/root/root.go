package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/casebook/internal/constants"
	"github.com/Paintersrp/casebook/internal/state"
	"github.com/Paintersrp/casebook/pkg/cmd/clients"
	"github.com/Paintersrp/casebook/pkg/cmd/export"
	"github.com/Paintersrp/casebook/pkg/cmd/notes"
	"github.com/Paintersrp/casebook/pkg/cmd/open"
	"github.com/Paintersrp/casebook/pkg/cmd/settings"
	"github.com/Paintersrp/casebook/pkg/cmd/totals"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	var (
		baseURL string
		filter  string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Aliases: []string{"cb"},
		Version: constants.Version,
		Short:   "Keep client, session and CPD notes from the terminal.",
		Long: heredoc.Doc(`
			casebook is a terminal client for a practice notes service. It lists
			your clients with their sessions and assessments, your supervision and
			CPD records, and lets you write and edit notes in place.

			Run with no arguments to open the notes screen.
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.ApplyOverrides(); err != nil {
				return err
			}
			return s.StartLogging()
		},
		RunE: notes.NewCmdNotes(s).RunE,
	}
	cmd.SetUsageTemplate(constants.Help)

	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend API base URL")
	cmd.PersistentFlags().StringVar(&filter, "filter", "", "Client filter: active, archived or all")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write a debug log")
	viper.BindPFlag("base_url", cmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("filter", cmd.PersistentFlags().Lookup("filter"))
	viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	cmd.AddCommand(
		notes.NewCmdNotes(s),
		open.NewCmdOpen(s),
		clients.NewCmdClients(s),
		totals.NewCmdTotals(s),
		export.NewCmdExport(s),
		settings.NewCmdSettings(s),
	)

	return cmd, nil
}
