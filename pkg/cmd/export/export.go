package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/casebook/internal/export"
	"github.com/Paintersrp/casebook/internal/state"
)

func NewCmdExport(s *state.State) *cobra.Command {
	var (
		out  string
		toS3 bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every client and note as JSON",
		Long: heredoc.Doc(`
			Takes a snapshot of all clients, archived ones included, with their
			sessions and assessments, plus supervision and CPD records and the
			overall totals.

			The snapshot is written to a file readable only by you, or uploaded to
			the S3 bucket configured under "backup" with --s3.
		`),
		Example: heredoc.Doc(`
			casebook export
			casebook export --out ~/backups/casebook.json
			casebook export --s3
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := export.Collect(ctx, s.API(), time.Now())
			if err != nil {
				return err
			}
			clients, notes := snap.Counts()

			if toS3 {
				u, err := export.NewS3Uploader(ctx, s.Config.Backup)
				if err != nil {
					return err
				}
				loc, err := export.Upload(ctx, u, s.Config.Backup, snap)
				if err != nil {
					return err
				}
				cmd.Printf("Uploaded %d clients and %d notes to %s\n", clients, notes, loc)
				return nil
			}

			path := out
			if path == "" {
				path = filepath.Join(".", export.FileName(snap.TakenAt))
			}
			if err := export.WriteFile(path, snap); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			cmd.Printf("Wrote %d clients and %d notes to %s\n", clients, notes, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default casebook-<timestamp>.json)")
	cmd.Flags().BoolVar(&toS3, "s3", false, "Upload to the configured backup bucket")
	cmd.MarkFlagsMutuallyExclusive("out", "s3")
	return cmd
}
