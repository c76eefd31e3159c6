package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

var listHeaders = []string{"ID", "TYPE", "TITLE", "STATUS", "EPIC", "START", "DURATION", "END"}

// FormatTaskList renders tasks, epics or subtasks as a table.
func FormatTaskList(tasks []*domain.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow(t))
	}
	return RenderTable(listHeaders, rows)
}

func taskRow(t *domain.Task) []string {
	epic := Dim("--")
	if t.IsSubtask() {
		epic = "#" + strconv.Itoa(t.EpicID)
	}
	return []string{
		strconv.Itoa(t.ID),
		KindBadge(t.Kind),
		t.Title,
		StatusPill(t.Status),
		epic,
		FormatTime(t.StartTime),
		FormatDuration(t.Duration),
		FormatTime(t.EndTime()),
	}
}

// FormatTask renders one record in a box. For an epic, subtasks are drawn
// as a tree under the details.
func FormatTask(t *domain.Task, subtasks []*domain.Task) string {
	var b strings.Builder
	b.WriteString(Bold(t.Title) + "  " + StatusPill(t.Status) + "\n")
	if t.Description != "" {
		b.WriteString(StyleFg.Render(t.Description) + "\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %d\n", Dim("ID      "), t.ID)
	if t.IsSubtask() {
		fmt.Fprintf(&b, "  %s  #%d\n", Dim("EPIC    "), t.EpicID)
	}
	fmt.Fprintf(&b, "  %s  %s\n", Dim("START   "), FormatTime(t.StartTime))
	fmt.Fprintf(&b, "  %s  %s\n", Dim("DURATION"), FormatDuration(t.Duration))
	fmt.Fprintf(&b, "  %s  %s\n", Dim("END     "), FormatTime(t.EndTime()))

	if t.IsEpic() {
		b.WriteString("\n" + Header("Subtasks") + "\n")
		if len(subtasks) == 0 {
			b.WriteString(Dim("No subtasks.") + "\n")
		} else {
			b.WriteString(RenderTree(subtaskTree(subtasks)))
		}
	}
	return RenderBox(string(t.Kind), strings.TrimRight(b.String(), "\n"))
}

func subtaskTree(subtasks []*domain.Task) []TreeItem {
	items := make([]TreeItem, 0, len(subtasks))
	for i, s := range subtasks {
		detail := ""
		if s.StartTime != nil {
			detail = FormatTime(s.StartTime) + " " + FormatDuration(s.Duration)
		}
		items = append(items, TreeItem{
			ID:     s.ID,
			Title:  s.Title,
			Level:  1,
			IsLast: i == len(subtasks)-1,
			Status: s.Status,
			Detail: detail,
		})
	}
	return items
}

// FormatSchedule renders the prioritized view numbered by position.
func FormatSchedule(tasks []*domain.Task) string {
	headers := []string{"#", "ID", "TITLE", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			strconv.Itoa(t.ID),
			t.Title,
			StatusPill(t.Status),
			FormatTime(t.StartTime),
			FormatTime(t.EndTime()),
		})
	}
	return RenderTable(headers, rows)
}

// FormatHistory renders recently viewed records, oldest first.
func FormatHistory(tasks []*domain.Task) string {
	headers := []string{"ID", "TYPE", "TITLE", "STATUS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{strconv.Itoa(t.ID), KindBadge(t.Kind), t.Title, StatusPill(t.Status)})
	}
	return RenderTable(headers, rows)
}
