package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is a single line in a tree display.
type TreeItem struct {
	ID     int // 0 hides the id prefix
	Title  string
	Level  int
	IsLast bool
	Status domain.Status
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Done items get a green ✔ prefix, in-progress items an amber ▶, and detail
// badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		contents[i] = treePrefix(item) + treeTitle(item)
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := widest - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func treePrefix(item TreeItem) string {
	if item.Level == 0 {
		return ""
	}
	prefix := strings.Repeat(treePipe, item.Level-1)
	if item.IsLast {
		return prefix + treeCorner
	}
	return prefix + treeBranch
}

func treeTitle(item TreeItem) string {
	title := item.Title
	if item.ID > 0 {
		title = StyleDim.Render(fmt.Sprintf("#%d ", item.ID)) + title
	}
	switch item.Status {
	case domain.StatusDone:
		return StyleGreen.Render("✔ ") + Dim(title)
	case domain.StatusInProgress:
		return StyleYellowBold.Render("▶ ") + StyleYellowBold.Render(title)
	default:
		return title
	}
}
