package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/alexanderramin/tasktracker/internal/persistence"
	"github.com/alexanderramin/tasktracker/internal/testutil"
	"github.com/alexanderramin/tasktracker/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// testApp wires an App over a store that saves to an in-memory blob.
func testApp(t *testing.T) (*App, *persistence.MemoryBlob) {
	t.Helper()
	blob := persistence.NewMemoryBlob(nil)
	mgr := persistence.NewFileBacked(tracker.NewStore(), blob)
	return &App{Manager: mgr, LogLevel: new(slog.LevelVar)}, blob
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

func decodeViews(t *testing.T, out string) []taskView {
	t.Helper()
	var views []taskView
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	return views
}

func decodeView(t *testing.T, out string) taskView {
	t.Helper()
	var v taskView
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	return v
}

func TestTaskAdd_ListsAsYAMLWhenNotInteractive(t *testing.T) {
	app, blob := testApp(t)

	out := mustExec(t, app, "task", "add", "--title", "Plan sprint", "--description", "Q3",
		"--start", "2025-06-15T09:00", "--duration", "90m")
	assert.Equal(t, "Created task 1\n", out)
	assert.Equal(t, 1, blob.Writes())

	views := decodeViews(t, mustExec(t, app, "task", "list"))
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, "TASK", views[0].Type)
	assert.Equal(t, "NEW", views[0].Status)
	assert.Equal(t, "2025-06-15T09:00:00", views[0].Start)
	assert.Equal(t, "2025-06-15T10:30:00", views[0].End)
	require.NotNil(t, views[0].DurationMinutes)
	assert.Equal(t, 90, *views[0].DurationMinutes)
}

func TestTaskList_TableOutput(t *testing.T) {
	app, _ := testApp(t)

	out := mustExec(t, app, "task", "list", "-o", "table")
	assert.Contains(t, out, "No tasks found.")

	mustExec(t, app, "task", "add", "--title", "Write report")
	out = mustExec(t, app, "task", "list", "--output", "table")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "New")
}

func TestAutoOutput_FollowsTerminal(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }

	out := mustExec(t, app, "task", "list")
	assert.Contains(t, out, "No tasks found.")
}

func TestRoot_RejectsUnknownOutput(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "task", "list", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRoot_VerboseLowersLogLevel(t *testing.T) {
	app, _ := testApp(t)

	mustExec(t, app, "--verbose", "task", "list")
	assert.Equal(t, slog.LevelDebug, app.LogLevel.Level())
}

func TestTaskAdd_OverlapIsRejected(t *testing.T) {
	app, blob := testApp(t)
	mustExec(t, app, "task", "add", "--title", "A", "--start", "2025-06-15T09:00", "--duration", "1h")

	_, err := executeCmd(t, app, "task", "add", "--title", "B", "--start", "2025-06-15 09:30", "--duration", "1h")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOverlap)
	assert.Equal(t, 1, blob.Writes())

	// Touching windows are fine.
	mustExec(t, app, "task", "add", "--title", "C", "--start", "2025-06-15T10:00", "--duration", "1h")
}

func TestTaskAdd_WindowFlagsNeedEachOther(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "task", "add", "--title", "A", "--start", "2025-06-15T09:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start needs --duration")

	_, err = executeCmd(t, app, "task", "add", "--title", "A", "--duration", "1h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--duration needs --start")

	_, err = executeCmd(t, app, "task", "add", "--title", "A", "--start", "tomorrow", "--duration", "1h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start time")
}

func TestTaskAdd_ExplicitIDInUse(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "epic", "add", "--title", "E", "--id", "7")

	_, err := executeCmd(t, app, "task", "add", "--title", "T", "--id", "7")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIDInUse)

	out := mustExec(t, app, "task", "add", "--title", "T")
	assert.Equal(t, "Created task 8\n", out)
}

func TestTaskUpdate_EditsAndUnschedules(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "task", "add", "--title", "A", "--start", "2025-06-15T09:00", "--duration", "30m")

	mustExec(t, app, "task", "update", "1", "--title", "A2", "--status", "in-progress", "--duration", "45m")
	views := decodeViews(t, mustExec(t, app, "task", "list"))
	require.Len(t, views, 1)
	assert.Equal(t, "A2", views[0].Title)
	assert.Equal(t, "IN_PROGRESS", views[0].Status)
	assert.Equal(t, "2025-06-15T09:45:00", views[0].End)

	mustExec(t, app, "task", "update", "1", "--unschedule")
	assert.Empty(t, decodeViews(t, mustExec(t, app, "schedule")))
	assert.Empty(t, decodeViews(t, mustExec(t, app, "history")), "editing is not viewing")
}

func TestTaskStatus(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "task", "add", "--title", "A")

	out := mustExec(t, app, "task", "status", "1", "done")
	assert.Equal(t, "Set task 1 to DONE\n", out)

	_, err := executeCmd(t, app, "task", "status", "1", "paused")
	require.Error(t, err)

	_, err = executeCmd(t, app, "task", "status", "99", "DONE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEpic_AggregatesSubtasks(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "epic", "add", "--title", "Release")
	mustExec(t, app, "subtask", "add", "--epic", "1", "--title", "Build",
		"--start", "2025-06-15T09:00", "--duration", "1h")
	out := mustExec(t, app, "subtask", "add", "--epic", "1", "--title", "Deploy",
		"--start", "2025-06-15T13:00", "--duration", "30m")
	assert.Equal(t, "Created subtask 3 in epic 1\n", out)

	epic := decodeView(t, mustExec(t, app, "epic", "show", "1"))
	assert.Equal(t, "EPIC", epic.Type)
	assert.Equal(t, []int{2, 3}, epic.SubtaskIDs)
	assert.Equal(t, "NEW", epic.Status)
	assert.Equal(t, "2025-06-15T09:00:00", epic.Start)
	assert.Equal(t, "2025-06-15T13:30:00", epic.End)
	require.NotNil(t, epic.DurationMinutes)
	assert.Equal(t, 90, *epic.DurationMinutes)

	mustExec(t, app, "subtask", "status", "2", "DONE")
	epic = decodeView(t, mustExec(t, app, "epic", "show", "1"))
	assert.Equal(t, "IN_PROGRESS", epic.Status)

	mustExec(t, app, "subtask", "status", "3", "DONE")
	epic = decodeView(t, mustExec(t, app, "epic", "show", "1"))
	assert.Equal(t, "DONE", epic.Status)
}

func TestEpicShow_TableDrawsSubtasks(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "epic", "add", "--title", "Release", "--description", "v2")
	mustExec(t, app, "subtask", "add", "--epic", "1", "--title", "Build")

	out := mustExec(t, app, "epic", "show", "1", "-o", "table")
	assert.Contains(t, out, "Release")
	assert.Contains(t, out, "SUBTASKS")
	assert.Contains(t, out, "Build")
}

func TestEpicSubtasks_UnknownEpic(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "epic", "subtasks", "4")
	assert.ErrorIs(t, err, domain.ErrEpicNotFound)
}

func TestSubtaskAdd_UnknownEpic(t *testing.T) {
	app, blob := testApp(t)

	_, err := executeCmd(t, app, "subtask", "add", "--epic", "3", "--title", "orphan")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEpicNotFound)
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, blob.Writes())
}

func TestSubtaskUpdate_MovesBetweenEpics(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "epic", "add", "--title", "Old")
	mustExec(t, app, "epic", "add", "--title", "New")
	mustExec(t, app, "subtask", "add", "--epic", "1", "--title", "S")

	mustExec(t, app, "subtask", "update", "3", "--epic", "2")

	assert.Empty(t, decodeViews(t, mustExec(t, app, "epic", "subtasks", "1")))
	moved := decodeViews(t, mustExec(t, app, "epic", "subtasks", "2"))
	require.Len(t, moved, 1)
	assert.Equal(t, 3, moved[0].ID)
	assert.Equal(t, 2, moved[0].EpicID)
}

func TestShow_RecordsHistory(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "task", "add", "--title", "A")
	mustExec(t, app, "epic", "add", "--title", "E")

	mustExec(t, app, "task", "show", "1")
	mustExec(t, app, "epic", "show", "2")
	mustExec(t, app, "task", "show", "1")

	views := decodeViews(t, mustExec(t, app, "history"))
	require.Len(t, views, 2)
	assert.Equal(t, 2, views[0].ID)
	assert.Equal(t, 1, views[1].ID)

	out := mustExec(t, app, "history", "-o", "table")
	assert.Contains(t, out, "Epic")

	mustExec(t, app, "task", "rm", "1")
	views = decodeViews(t, mustExec(t, app, "history"))
	require.Len(t, views, 1)
	assert.Equal(t, 2, views[0].ID)
}

func TestSchedule_OrdersByStart(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "epic", "add", "--title", "E")
	mustExec(t, app, "task", "add", "--title", "Late", "--start", "2025-06-15T15:00", "--duration", "1h")
	mustExec(t, app, "subtask", "add", "--epic", "1", "--title", "Early",
		"--start", "2025-06-15T08:00", "--duration", "1h")
	mustExec(t, app, "task", "add", "--title", "Loose")

	views := decodeViews(t, mustExec(t, app, "prioritized"))
	require.Len(t, views, 2)
	assert.Equal(t, "Early", views[0].Title)
	assert.Equal(t, "Late", views[1].Title)

	out := mustExec(t, app, "schedule", "-o", "table")
	assert.Contains(t, out, "Early")
}

func TestRemove_UnknownID(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "subtask", "rm", "5")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = executeCmd(t, app, "task", "rm", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}

func TestTaskAdd_NegativeIDRejectedWithoutWriting(t *testing.T) {
	app, blob := testApp(t)

	_, err := executeCmd(t, app, "task", "add", "--title", "A", "--id=-3")
	require.ErrorIs(t, err, domain.ErrInvalidID)
	assert.Zero(t, blob.Writes())
	assert.Empty(t, decodeViews(t, mustExec(t, app, "task", "list")))
}

func TestEpicRemove_CascadesToSubtasks(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "epic", "add", "--title", "E")
	mustExec(t, app, "subtask", "add", "--epic", "1", "--title", "S")

	assert.Equal(t, "Deleted epic 1\n", mustExec(t, app, "epic", "delete", "1"))
	assert.Empty(t, decodeViews(t, mustExec(t, app, "subtask", "list")))
}

func TestClear_NeedsConfirmation(t *testing.T) {
	app, blob := testApp(t)
	mustExec(t, app, "task", "add", "--title", "A")
	mustExec(t, app, "task", "add", "--title", "B")

	_, err := executeCmd(t, app, "task", "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Len(t, decodeViews(t, mustExec(t, app, "task", "list")), 2)

	out := mustExec(t, app, "task", "clear", "--yes")
	assert.Equal(t, "Deleted 2 tasks\n", out)
	assert.Empty(t, decodeViews(t, mustExec(t, app, "task", "list")))
	assert.Equal(t, 3, blob.Writes())
}

func TestSubtaskClear_ResetsEpics(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "epic", "add", "--title", "E")
	mustExec(t, app, "subtask", "add", "--epic", "1", "--title", "S",
		"--start", "2025-06-15T09:00", "--duration", "1h")
	mustExec(t, app, "subtask", "status", "2", "DONE")

	mustExec(t, app, "subtask", "clear", "-y")

	epic := decodeView(t, mustExec(t, app, "epic", "show", "1"))
	assert.Equal(t, "NEW", epic.Status)
	assert.Empty(t, epic.SubtaskIDs)
	assert.Empty(t, epic.Start)
}

func TestSnapshots_ListsSQLiteRevisions(t *testing.T) {
	blob := persistence.NewSQLiteBlob(testutil.NewTestUoW(testutil.NewTestDB(t)), "test.db", 0)
	app := &App{Manager: persistence.NewFileBacked(tracker.NewStore(), blob), Revisions: blob}

	mustExec(t, app, "task", "add", "--title", "A")
	mustExec(t, app, "task", "add", "--title", "B")

	var views []snapshotView
	require.NoError(t, yaml.Unmarshal([]byte(mustExec(t, app, "snapshots")), &views))
	require.Len(t, views, 2)
	assert.Equal(t, 2, views[0].Revision)
	assert.Equal(t, 2, views[0].Records)
	assert.Equal(t, 1, views[1].Records)
	assert.NotEmpty(t, views[0].ID)

	out := mustExec(t, app, "snapshots", "-o", "table")
	assert.Contains(t, out, "REV")
	assert.Contains(t, out, views[0].ID)
}

func TestSnapshots_NeedsRevisionStorage(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "snapshots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
