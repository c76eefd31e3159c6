package cli

import (
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/spf13/cobra"
)

func epicOps(app *App) entityOps {
	m := app.Manager
	return entityOps{
		noun:      "epic",
		plural:    "epics",
		list:      m.ListEpics,
		get:       m.GetEpic,
		update:    m.UpdateEpic,
		remove:    m.DeleteEpic,
		removeAll: m.DeleteAllEpics,
		children:  m.ListEpicSubtasks,
	}
}

func newEpicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epic",
		Short: "Manage epics (status and time are derived from subtasks)",
	}

	o := epicOps(app)
	cmd.AddCommand(
		newEpicAddCmd(app),
		newListCmd(app, o),
		newShowCmd(app, o),
		newEpicUpdateCmd(app, o),
		newEpicSubtasksCmd(app),
		newRemoveCmd(app, o),
		newClearCmd(app, o),
	)

	return cmd
}

func newEpicAddCmd(app *App) *cobra.Command {
	var title, description string
	var id int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an epic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := domain.NewEpic(title, description)
			e.ID = id
			newID, err := app.Manager.CreateEpic(e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created epic %d\n", newID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Epic title")
	cmd.Flags().StringVar(&description, "description", "", "Epic description")
	cmd.Flags().IntVar(&id, "id", 0, "Explicit id (default: next free id)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newEpicUpdateCmd(app *App, o entityOps) *cobra.Command {
	var fields recordFields

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an epic's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := fields.load(cmd.Flags(), o, args[0])
			if err != nil {
				return err
			}
			if err := o.update(e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated epic %d\n", e.ID)
			return nil
		},
	}

	fields.register(cmd.Flags(), false)
	return cmd
}

func newEpicSubtasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "subtasks <id>",
		Short: "List the subtasks of an epic in attach order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			subtasks, err := app.Manager.ListEpicSubtasks(id)
			if err != nil {
				return err
			}
			return app.printList(cmd, subtasks, "No subtasks found.")
		},
	}
}
