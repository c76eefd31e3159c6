package cli

import (
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/cli/formatter"
	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const yamlTimeLayout = "2006-01-02T15:04:05"

// taskView is the YAML shape of a record.
type taskView struct {
	ID              int    `yaml:"id"`
	Type            string `yaml:"type"`
	Title           string `yaml:"title"`
	Description     string `yaml:"description,omitempty"`
	Status          string `yaml:"status"`
	EpicID          int    `yaml:"epic_id,omitempty"`
	SubtaskIDs      []int  `yaml:"subtask_ids,omitempty"`
	Start           string `yaml:"start,omitempty"`
	DurationMinutes *int   `yaml:"duration_minutes,omitempty"`
	End             string `yaml:"end,omitempty"`
}

func newTaskView(t *domain.Task) taskView {
	v := taskView{
		ID:          t.ID,
		Type:        string(t.Kind),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		EpicID:      t.EpicID,
		SubtaskIDs:  t.SubtaskIDs,
	}
	if t.StartTime != nil {
		v.Start = t.StartTime.Format(yamlTimeLayout)
	}
	if t.Duration != nil {
		minutes := int(t.Duration.Minutes())
		v.DurationMinutes = &minutes
	}
	if end := t.EndTime(); end != nil {
		v.End = end.Format(yamlTimeLayout)
	}
	return v
}

func newTaskViews(tasks []*domain.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t))
	}
	return views
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func (a *App) printList(cmd *cobra.Command, tasks []*domain.Task, empty string) error {
	if a.format() == OutputYAML {
		return writeYAML(cmd, newTaskViews(tasks))
	}
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
	return nil
}

func (a *App) printTask(cmd *cobra.Command, t *domain.Task, subtasks []*domain.Task) error {
	if a.format() == OutputYAML {
		return writeYAML(cmd, newTaskView(t))
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTask(t, subtasks))
	return nil
}
