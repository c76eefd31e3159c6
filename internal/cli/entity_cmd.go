package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/spf13/cobra"
)

// entityOps binds the shared list/show/update/status/rm/clear commands to
// one record kind.
type entityOps struct {
	noun   string
	plural string

	list      func() []*domain.Task
	get       func(id int) (*domain.Task, error)
	update    func(t *domain.Task) error
	setStatus func(id int, status domain.Status) error // nil for epics
	remove    func(id int) error
	removeAll func() error

	// children lists an epic's subtasks for show; nil for other kinds.
	children func(id int) ([]*domain.Task, error)
}

// lookup finds a record without going through get, so editing does not
// count as viewing.
func (o entityOps) lookup(id int) (*domain.Task, error) {
	for _, t := range o.list() {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s %d: %w", o.noun, id, domain.ErrNotFound)
}

func newListCmd(app *App, o entityOps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + o.plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printList(cmd, o.list(), "No "+o.plural+" found.")
		},
	}
}

func newShowCmd(app *App, o entityOps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a " + o.noun + " and record the view in history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := o.get(id)
			if err != nil {
				return err
			}
			var subtasks []*domain.Task
			if o.children != nil {
				if subtasks, err = o.children(id); err != nil {
					return err
				}
			}
			return app.printTask(cmd, t, subtasks)
		},
	}
}

func newStatusCmd(app *App, o entityOps) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <NEW|IN_PROGRESS|DONE>",
		Short: "Set the status of a " + o.noun,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			if err := o.setStatus(id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s %d to %s\n", o.noun, id, status)
			return nil
		},
	}
}

func newRemoveCmd(app *App, o entityOps) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a " + o.noun,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := o.lookup(id); err != nil {
				return err
			}
			if err := o.remove(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", o.noun, id)
			return nil
		},
	}
}

func newClearCmd(app *App, o entityOps) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all " + o.plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all " + o.plural + " without --yes")
			}
			n := len(o.list())
			if err := o.removeAll(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s\n", n, o.plural)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deleting everything")
	return cmd
}
