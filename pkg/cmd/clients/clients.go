package clients

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/state"
	clientsadd "github.com/Paintersrp/casebook/pkg/cmd/clients/add"
	clientsarchive "github.com/Paintersrp/casebook/pkg/cmd/clients/archive"
	clientsedit "github.com/Paintersrp/casebook/pkg/cmd/clients/edit"
	clientslist "github.com/Paintersrp/casebook/pkg/cmd/clients/list"
	clientsremove "github.com/Paintersrp/casebook/pkg/cmd/clients/remove"
)

func NewCmdClients(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"c"},
		Short:   "Manage clients",
		Long: heredoc.Doc(`
			List, add, edit, archive and delete clients without opening the notes
			screen. Clients can be given by numeric id or by client code.
		`),
	}

	cmd.AddCommand(
		clientslist.NewCmdList(s),
		clientsadd.NewCmdAdd(s),
		clientsedit.NewCmdEdit(s),
		clientsarchive.NewCmdArchive(s, true),
		clientsarchive.NewCmdArchive(s, false),
		clientsremove.NewCmdRemove(s),
	)

	return cmd
}
