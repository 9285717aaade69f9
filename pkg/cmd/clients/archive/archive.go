package archive

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/state"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

// NewCmdArchive builds "archive" when archive is true and "unarchive"
// otherwise.
func NewCmdArchive(s *state.State, archive bool) *cobra.Command {
	use, short, done := "archive", "Archive a client", "Archived"
	if !archive {
		use, short, done = "unarchive", "Restore an archived client", "Restored"
	}

	cmd := &cobra.Command{
		Use:   use + " <id|code>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cmdpkg.ResolveClient(cmd.Context(), s.API(), args[0])
			if err != nil {
				return err
			}
			if c.Archived() == archive {
				cmd.Printf("%s is already %s\n", c.Label(), c.Status)
				return nil
			}

			updated, err := s.API().SetArchived(cmd.Context(), c.ID, archive)
			if err != nil {
				return fmt.Errorf("failed to %s client: %w", use, err)
			}

			cmd.Printf("%s %s\n", done, updated.Label())
			return nil
		},
	}

	return cmd
}
