package cli

import (
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/spf13/cobra"
)

func subtaskOps(app *App) entityOps {
	m := app.Manager
	return entityOps{
		noun:      "subtask",
		plural:    "subtasks",
		list:      m.ListSubtasks,
		get:       m.GetSubtask,
		update:    m.UpdateSubtask,
		setStatus: m.UpdateSubtaskStatus,
		remove:    m.DeleteSubtask,
		removeAll: m.DeleteAllSubtasks,
	}
}

func newSubtaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtasks of epics",
	}

	o := subtaskOps(app)
	cmd.AddCommand(
		newSubtaskAddCmd(app),
		newListCmd(app, o),
		newShowCmd(app, o),
		newSubtaskUpdateCmd(app, o),
		newStatusCmd(app, o),
		newRemoveCmd(app, o),
		newClearCmd(app, o),
	)

	return cmd
}

func newSubtaskAddCmd(app *App) *cobra.Command {
	var title, description string
	var id, epicID int
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a subtask under an epic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := domain.NewSubtask(title, description, epicID)
			s.ID = id
			if err := window.apply(cmd.Flags(), s); err != nil {
				return err
			}
			newID, err := app.Manager.CreateSubtask(s, epicID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created subtask %d in epic %d\n", newID, epicID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Subtask title")
	cmd.Flags().StringVar(&description, "description", "", "Subtask description")
	cmd.Flags().IntVar(&epicID, "epic", 0, "Owning epic id")
	cmd.Flags().IntVar(&id, "id", 0, "Explicit id (default: next free id)")
	window.register(cmd.Flags(), false)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("epic")

	return cmd
}

func newSubtaskUpdateCmd(app *App, o entityOps) *cobra.Command {
	var fields recordFields
	var window windowFlags
	var epicID int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a subtask, optionally moving it to another epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := fields.load(cmd.Flags(), o, args[0])
			if err != nil {
				return err
			}
			if err := window.apply(cmd.Flags(), s); err != nil {
				return err
			}
			if cmd.Flags().Changed("epic") {
				s.EpicID = epicID
			}
			if err := o.update(s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated subtask %d\n", s.ID)
			return nil
		},
	}

	fields.register(cmd.Flags(), true)
	window.register(cmd.Flags(), true)
	cmd.Flags().IntVar(&epicID, "epic", 0, "Move to this epic")
	return cmd
}
