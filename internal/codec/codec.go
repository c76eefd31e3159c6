// Package codec converts tasks to and from comma-separated records, one
// record per task.
package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

const (
	// Header names the record fields in order.
	Header = "id,type,title,status,description,epicId,startTime,durationMinutes,endTime"
	// LegacyHeader is the layout written before time windows were stored.
	LegacyHeader = "id,type,title,status,description,epicId"
)

// Field positions within a record.
const (
	fieldID = iota
	fieldKind
	fieldTitle
	fieldStatus
	fieldDescription
	fieldEpicID
	fieldStart
	fieldDuration
	fieldEnd
	fieldCount
)

// minFields is the shortest record accepted; later fields default to empty.
const minFields = fieldDescription + 1

const timeLayout = "2006-01-02T15:04:05.999999999"

// parseLayouts are tried in order. Seconds may be omitted, and a fraction
// after the seconds is accepted by the first layout.
var parseLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}

// DecodeError reports a record that could not be turned into a task.
type DecodeError struct {
	Line   int
	Record string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decoding line %d %q: %v", e.Line, e.Record, e.Err)
	}
	return fmt.Sprintf("decoding record %q: %v", e.Record, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Marshal returns the record fields for t.
func Marshal(t *domain.Task) []string {
	rec := make([]string, fieldCount)
	rec[fieldID] = strconv.Itoa(t.ID)
	rec[fieldKind] = string(t.Kind)
	rec[fieldTitle] = t.Title
	rec[fieldStatus] = string(t.Status)
	rec[fieldDescription] = t.Description
	if t.Kind == domain.KindSubtask {
		rec[fieldEpicID] = strconv.Itoa(t.EpicID)
	}
	rec[fieldStart] = formatTime(t.StartTime)
	if t.Duration != nil {
		rec[fieldDuration] = strconv.FormatInt(int64(*t.Duration/time.Minute), 10)
	}
	rec[fieldEnd] = formatTime(t.EndTime())
	return rec
}

// Unmarshal builds a task from record fields. Nothing is returned unless
// the whole record is valid.
func Unmarshal(rec []string) (*domain.Task, error) {
	if len(rec) < minFields {
		return nil, fmt.Errorf("want at least %d fields, got %d", minFields, len(rec))
	}
	field := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}

	id, err := strconv.Atoi(strings.TrimSpace(rec[fieldID]))
	if err != nil || id < 0 {
		return nil, fmt.Errorf("invalid id %q", rec[fieldID])
	}
	kind, err := domain.ParseKind(strings.TrimSpace(rec[fieldKind]))
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(strings.TrimSpace(rec[fieldStatus]))
	if err != nil {
		return nil, err
	}

	var t *domain.Task
	switch kind {
	case domain.KindTask:
		t = domain.NewTask(rec[fieldTitle], rec[fieldDescription])
	case domain.KindEpic:
		t = domain.NewEpic(rec[fieldTitle], rec[fieldDescription])
	case domain.KindSubtask:
		raw := strings.TrimSpace(field(fieldEpicID))
		epicID, err := strconv.Atoi(raw)
		if err != nil || epicID <= 0 {
			return nil, fmt.Errorf("subtask needs an epic id, got %q", raw)
		}
		t = domain.NewSubtask(rec[fieldTitle], rec[fieldDescription], epicID)
	}
	t.ID = id
	t.Status = status

	// Unreadable time text is treated as absent rather than as an error.
	t.StartTime = parseTime(field(fieldStart))
	if d, ok := parseMinutes(field(fieldDuration)); ok {
		t.Duration = &d
	}
	if kind == domain.KindEpic {
		t.EpicEnd = parseTime(field(fieldEnd))
	}
	return t, nil
}

// IsHeader reports whether rec is a header row in any known layout.
func IsHeader(rec []string) bool {
	return len(rec) >= 2 && strings.TrimSpace(rec[fieldID]) == "id" && strings.TrimSpace(rec[fieldKind]) == "type"
}

// formatTime writes local wall-clock time, the zone parseTime reads back.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(time.Local).Format(timeLayout)
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

func parseMinutes(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	m, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(m) * time.Minute, true
}
