package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/cli/formatter"
	"github.com/alexanderramin/tasktracker/internal/repository"
	"github.com/spf13/cobra"
)

// RevisionLister lists the saved revisions of the store, newest first.
type RevisionLister interface {
	Revisions(ctx context.Context) ([]*repository.Snapshot, error)
}

type snapshotView struct {
	Revision int    `yaml:"revision"`
	ID       string `yaml:"id"`
	SavedAt  string `yaml:"saved_at"`
	Records  int    `yaml:"records"`
}

func newSnapshotsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List saved revisions of the store (sqlite storage only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Revisions == nil {
				return errors.New("snapshots need the sqlite storage backend")
			}
			snaps, err := app.Revisions.Revisions(cmd.Context())
			if err != nil {
				return err
			}
			switch {
			case app.format() == OutputYAML:
				views := make([]snapshotView, 0, len(snaps))
				for _, s := range snaps {
					views = append(views, snapshotView{
						Revision: s.Revision,
						ID:       s.ID,
						SavedAt:  s.CreatedAt.Local().Format(yamlTimeLayout),
						Records:  s.RecordCount,
					})
				}
				return writeYAML(cmd, views)
			case len(snaps) == 0:
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots saved.")
			default:
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshots(snaps))
			}
			return nil
		},
	}
}
