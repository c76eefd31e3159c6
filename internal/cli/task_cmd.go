package cli

import (
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func taskOps(app *App) entityOps {
	m := app.Manager
	return entityOps{
		noun:      "task",
		plural:    "tasks",
		list:      m.ListTasks,
		get:       m.GetTask,
		update:    m.UpdateTask,
		setStatus: m.UpdateTaskStatus,
		remove:    m.DeleteTask,
		removeAll: m.DeleteAllTasks,
	}
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage standalone tasks",
	}

	o := taskOps(app)
	cmd.AddCommand(
		newTaskAddCmd(app),
		newListCmd(app, o),
		newShowCmd(app, o),
		newTaskUpdateCmd(app, o),
		newStatusCmd(app, o),
		newRemoveCmd(app, o),
		newClearCmd(app, o),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description string
	var id int
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.NewTask(title, description)
			t.ID = id
			if err := window.apply(cmd.Flags(), t); err != nil {
				return err
			}
			newID, err := app.Manager.CreateTask(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d\n", newID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().IntVar(&id, "id", 0, "Explicit id (default: next free id)")
	window.register(cmd.Flags(), false)
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskUpdateCmd(app *App, o entityOps) *cobra.Command {
	var fields recordFields
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := fields.load(cmd.Flags(), o, args[0])
			if err != nil {
				return err
			}
			if err := window.apply(cmd.Flags(), t); err != nil {
				return err
			}
			if err := o.update(t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d\n", t.ID)
			return nil
		},
	}

	fields.register(cmd.Flags(), true)
	window.register(cmd.Flags(), true)
	return cmd
}

// recordFields are the --title/--description/--status edit flags.
type recordFields struct {
	title       string
	description string
	status      string
}

func (f *recordFields) register(fs *pflag.FlagSet, withStatus bool) {
	fs.StringVar(&f.title, "title", "", "New title")
	fs.StringVar(&f.description, "description", "", "New description")
	if withStatus {
		fs.StringVar(&f.status, "status", "", "New status (NEW, IN_PROGRESS, DONE)")
	}
}

// load fetches the record named by arg and applies the changed flags to it.
func (f *recordFields) load(fs *pflag.FlagSet, o entityOps, arg string) (*domain.Task, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	t, err := o.lookup(id)
	if err != nil {
		return nil, err
	}
	if fs.Changed("title") {
		t.Title = f.title
	}
	if fs.Changed("description") {
		t.Description = f.description
	}
	if fs.Changed("status") {
		status, err := parseStatus(f.status)
		if err != nil {
			return nil, err
		}
		t.Status = status
	}
	return t, nil
}
