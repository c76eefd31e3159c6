package formatter

import (
	"strconv"

	"github.com/alexanderramin/tasktracker/internal/repository"
)

// FormatSnapshots renders saved revisions, newest first.
func FormatSnapshots(snaps []*repository.Snapshot) string {
	headers := []string{"REV", "ID", "SAVED", "RECORDS"}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		saved := s.CreatedAt.Local()
		rows = append(rows, []string{
			strconv.Itoa(s.Revision),
			Dim(s.ID),
			FormatTime(&saved),
			strconv.Itoa(s.RecordCount),
		})
	}
	return RenderTable(headers, rows)
}
