package list

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/state"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = cellStyle.Copy().Foreground(lipgloss.Color("245"))
)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List clients",
		Long: heredoc.Doc(`
			Lists clients for the current filter. Output is a table on a terminal
			and tab separated lines otherwise.
		`),
		Example: heredoc.Doc(`
			casebook clients list
			casebook clients list --filter all
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := s.API().ListClients(cmd.Context(), s.Config.Filter())
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}
			if len(clients) == 0 {
				cmd.Printf("No %s clients\n", s.Config.Filter())
				return nil
			}

			if cmdpkg.IsInteractive() {
				fmt.Fprintln(cmd.OutOrStdout(), Table(clients, cmdpkg.TerminalWidth()))
				return nil
			}
			return WriteLines(cmd.OutOrStdout(), clients)
		},
	}

	return cmd
}

func row(c note.Client) []string {
	dob := ""
	if !c.DateOfBirth.IsZero() {
		dob = c.DateOfBirth.Display()
	}
	return []string{strconv.Itoa(c.ID), c.Code, c.FullName(), string(c.Status), dob, c.Email}
}

// Table renders clients as a bordered table no wider than width.
func Table(clients []note.Client, width int) string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, row(c))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Code", "Name", "Status", "Born", "Email").
		Rows(rows...).
		Width(width).
		StyleFunc(func(r, col int) lipgloss.Style {
			switch {
			case r == 0:
				return headerStyle
			case r-1 < len(clients) && clients[r-1].Archived():
				return mutedStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// WriteLines writes one tab separated line per client.
func WriteLines(w io.Writer, clients []note.Client) error {
	for _, c := range clients {
		r := row(c)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r[0], r[1], r[2], r[3], r[4], r[5]); err != nil {
			return err
		}
	}
	return nil
}
