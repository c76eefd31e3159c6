// Package cli is the cobra command tree over a tracker.Manager.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/alexanderramin/tasktracker/internal/tracker"
	"github.com/spf13/cobra"
)

// Output formats accepted by --output.
const (
	OutputAuto  = "auto"
	OutputTable = "table"
	OutputYAML  = "yaml"
)

// App holds what the commands act on.
type App struct {
	Manager tracker.Manager

	// LogLevel, when set, is lowered to debug by --verbose.
	LogLevel *slog.LevelVar

	// IsInteractive reports whether stdout is a terminal. Auto output renders
	// tables for a terminal and YAML otherwise.
	IsInteractive func() bool

	// Revisions is set when the storage keeps saved revisions.
	Revisions RevisionLister

	output string
}

// NewRootCmd creates the top-level "tasktracker" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Track tasks, epics and subtasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && app.LogLevel != nil {
				app.LogLevel.Set(slog.LevelDebug)
			}
			switch app.output {
			case OutputAuto, OutputTable, OutputYAML:
				return nil
			}
			return fmt.Errorf("invalid output format %q (want auto, table or yaml)", app.output)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	root.PersistentFlags().StringVarP(&app.output, "output", "o", OutputAuto, "Output format: auto, table or yaml")

	root.AddCommand(
		newTaskCmd(app),
		newEpicCmd(app),
		newSubtaskCmd(app),
		newHistoryCmd(app),
		newScheduleCmd(app),
		newSnapshotsCmd(app),
	)

	return root
}

func (a *App) format() string {
	if a.output != OutputAuto && a.output != "" {
		return a.output
	}
	if a.IsInteractive != nil && a.IsInteractive() {
		return OutputTable
	}
	return OutputYAML
}
