package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/spf13/pflag"
)

var startLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseStart reads a local wall-clock time.
func parseStart(s string) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q (want YYYY-MM-DDTHH:MM)", s)
}

// parseStatus accepts the persisted tokens case-insensitively, with "-" for "_".
func parseStatus(s string) (domain.Status, error) {
	return domain.ParseStatus(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
}

// windowFlags are the --start/--duration/--unschedule flags shared by
// task and subtask commands.
type windowFlags struct {
	start      string
	duration   time.Duration
	unschedule bool
}

func (w *windowFlags) register(fs *pflag.FlagSet, withUnschedule bool) {
	fs.StringVar(&w.start, "start", "", "Start time (YYYY-MM-DDTHH:MM, local)")
	fs.DurationVar(&w.duration, "duration", 0, "Duration (e.g. 45m, 1h30m)")
	if withUnschedule {
		fs.BoolVar(&w.unschedule, "unschedule", false, "Clear the start time and duration")
	}
}

// apply sets the window on t from whichever flags were given. A lone
// --duration keeps the existing start.
func (w *windowFlags) apply(fs *pflag.FlagSet, t *domain.Task) error {
	startSet := fs.Changed("start")
	durSet := fs.Changed("duration")

	if w.unschedule {
		if startSet || durSet {
			return errors.New("--unschedule cannot be combined with --start or --duration")
		}
		t.StartTime, t.Duration = nil, nil
		return nil
	}
	if !startSet && !durSet {
		return nil
	}
	if w.duration < 0 {
		return fmt.Errorf("invalid duration %s: must not be negative", w.duration)
	}

	var start time.Time
	switch {
	case startSet:
		parsed, err := parseStart(w.start)
		if err != nil {
			return err
		}
		start = parsed
	case t.StartTime != nil:
		start = *t.StartTime
	default:
		return errors.New("--duration needs --start on an unscheduled task")
	}

	d := w.duration
	if !durSet {
		if t.Duration == nil {
			return errors.New("--start needs --duration on an unscheduled task")
		}
		d = *t.Duration
	}
	t.SetWindow(start, d)
	return nil
}
