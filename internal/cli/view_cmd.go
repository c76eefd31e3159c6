package cli

import (
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show viewed records, least recently viewed first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			viewed := app.Manager.History()
			switch {
			case app.format() == OutputYAML:
				return writeYAML(cmd, newTaskViews(viewed))
			case len(viewed) == 0:
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
			default:
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(viewed))
			}
			return nil
		},
	}
}

func newScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"prioritized"},
		Short:   "Show tasks and subtasks ordered by start time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ordered := app.Manager.PrioritizedTasks()
			switch {
			case app.format() == OutputYAML:
				return writeYAML(cmd, newTaskViews(ordered))
			case len(ordered) == 0:
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing scheduled.")
			default:
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(ordered))
			}
			return nil
		},
	}
}
