package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tasktracker/internal/codec"
	"github.com/alexanderramin/tasktracker/internal/domain"
	"github.com/alexanderramin/tasktracker/internal/testutil"
	"github.com/alexanderramin/tasktracker/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *tracker.Store {
	t.Helper()
	s := tracker.NewStore()
	_, err := s.CreateTask(testutil.NewTask("Buy milk, eggs", testutil.WithWindow(testutil.At(0, 0), time.Hour)))
	require.NoError(t, err)
	epicID, err := s.CreateEpic(testutil.NewEpic(`Move "house"`))
	require.NoError(t, err)
	_, err = s.CreateSubtask(testutil.NewSubtask("pack", 0, testutil.WithStatus(domain.StatusDone),
		testutil.WithWindow(testutil.At(2, 0), 90*time.Minute)), epicID)
	require.NoError(t, err)
	_, err = s.CreateSubtask(testutil.NewSubtask("unpack", 0), epicID)
	require.NoError(t, err)
	return s
}

func TestSave_WritesHeaderThenTasksEpicsSubtasks(t *testing.T) {
	blob := NewMemoryBlob(nil)

	require.NoError(t, Save(context.Background(), seedStore(t), blob))

	data, err := blob.Read(context.Background())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, codec.Header, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,TASK,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,EPIC,"))
	assert.True(t, strings.HasPrefix(lines[3], "3,SUBTASK,"))
	assert.True(t, strings.HasPrefix(lines[4], "4,SUBTASK,"))
}

func TestLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	orig := seedStore(t)
	blob := NewMemoryBlob(nil)
	require.NoError(t, Save(ctx, orig, blob))

	loaded, err := Load(ctx, blob)
	require.NoError(t, err)

	assert.Equal(t, orig.ListTasks(), loaded.ListTasks())
	assert.Equal(t, orig.ListEpics(), loaded.ListEpics())
	assert.Equal(t, orig.ListSubtasks(), loaded.ListSubtasks())
	assert.Equal(t, testutil.IDs(orig.PrioritizedTasks()), testutil.IDs(loaded.PrioritizedTasks()))
	assert.Equal(t, 5, loaded.NextID())
}

func TestLoad_ResumesAfterLargestID(t *testing.T) {
	doc := codec.Header + "\n" +
		"3,TASK,a,NEW,d,,,,\n" +
		"10,SUBTASK,s,NEW,d,7,,,\n" +
		"7,EPIC,e,NEW,d,,,0,\n"

	store, err := Load(context.Background(), NewMemoryBlob([]byte(doc)))
	require.NoError(t, err)

	id, err := store.CreateTask(testutil.NewTask("next"))
	require.NoError(t, err)
	assert.Equal(t, 11, id)

	subs, err := store.ListEpicSubtasks(7)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, testutil.IDs(subs))
}

func TestLoad_EmptyBlobIsEmptyStore(t *testing.T) {
	store, err := Load(context.Background(), NewMemoryBlob(nil))
	require.NoError(t, err)
	assert.Empty(t, store.ListTasks())
	assert.Equal(t, 1, store.NextID())
}

func TestLoad_MissingFileIsEmptyStore(t *testing.T) {
	blob := NewFileBlob(filepath.Join(t.TempDir(), "absent", "tasks.csv"))

	store, err := Load(context.Background(), blob)
	require.NoError(t, err)
	assert.Empty(t, store.ListEpics())
}

func TestLoad_CorruptRecordFailsWholeLoad(t *testing.T) {
	doc := codec.Header + "\n1,TASK,a,NEW,d,,,,\n2,TASK,b,SOMEDAY,d,,,,\n"

	store, err := Load(context.Background(), NewMemoryBlob([]byte(doc)))
	require.Error(t, err)
	assert.Nil(t, store)

	var de *codec.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 3, de.Line)
	assert.False(t, IsPersistence(err))
}

func TestLoad_SkipsRejectedRecords(t *testing.T) {
	doc := codec.Header + "\n" +
		"1,TASK,a,NEW,d,,2025-06-15T09:00:00,60,\n" +
		"2,TASK,clash,NEW,d,,2025-06-15T09:30:00,60,\n" +
		"3,SUBTASK,orphan,NEW,d,9,,,\n"

	store, err := Load(context.Background(), NewMemoryBlob([]byte(doc)))
	require.NoError(t, err)

	assert.Equal(t, []int{1}, testutil.IDs(store.ListTasks()))
	assert.Empty(t, store.ListSubtasks())
	assert.Equal(t, 4, store.NextID())
}

type failingBlob struct{ err error }

func (b failingBlob) Read(context.Context) ([]byte, error)  { return nil, b.err }
func (b failingBlob) Write(context.Context, []byte) error    { return b.err }
func (b failingBlob) String() string                         { return "broken" }

func TestLoadAndSave_StorageFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")

	_, err := Load(ctx, failingBlob{boom})
	require.ErrorIs(t, err, boom)
	assert.True(t, IsPersistence(err))

	err = Save(ctx, tracker.NewStore(), failingBlob{boom})
	require.ErrorIs(t, err, boom)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "save", pe.Op)
	assert.Equal(t, "broken", pe.Target)
}

func TestFileBlob_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tasks.csv")
	blob := NewFileBlob(path)

	require.NoError(t, Save(ctx, seedStore(t), blob))
	assert.FileExists(t, path)

	loaded, err := Load(ctx, blob)
	require.NoError(t, err)
	assert.Len(t, loaded.ListSubtasks(), 2)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileBlob_UnreadablePath(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(context.Background(), NewFileBlob(dir))
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
}

func TestLoad_KeepsTasksScheduledInOtherZones(t *testing.T) {
	ctx := context.Background()
	_, offset := testutil.Base.Zone()
	away := time.FixedZone("away", offset+3*60*60)

	orig := tracker.NewStore()
	_, err := orig.CreateTask(testutil.NewTask("remote",
		testutil.WithWindow(time.Date(2025, 6, 15, 14, 0, 0, 0, away), time.Hour)))
	require.NoError(t, err)
	_, err = orig.CreateTask(testutil.NewTask("local",
		testutil.WithWindow(time.Date(2025, 6, 15, 14, 0, 0, 0, time.Local), time.Hour)))
	require.NoError(t, err)
	_, err = orig.CreateTask(testutil.NewTask("utc",
		testutil.WithWindow(time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC), time.Hour)))
	require.NoError(t, err)

	blob := NewMemoryBlob(nil)
	require.NoError(t, Save(ctx, orig, blob))
	loaded, err := Load(ctx, blob)
	require.NoError(t, err)

	want := orig.ListTasks()
	got := loaded.ListTasks()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].StartTime.Equal(*got[i].StartTime), "task %d", want[i].ID)
	}
	assert.Equal(t, testutil.IDs(orig.PrioritizedTasks()), testutil.IDs(loaded.PrioritizedTasks()))
}

func TestSave_RejectedRecordsNeverReachTheDocument(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlob(nil)
	f := NewFileBacked(tracker.NewStore(), blob)

	id, err := f.CreateTask(testutil.NewTask("a"))
	require.NoError(t, err)
	_, err = f.CreateTask(testutil.NewTask("b", testutil.WithStatus("BOGUS")))
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	err = f.UpdateTask(testutil.NewTask("a", testutil.WithID(id), testutil.WithStatus("done")))
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = f.CreateTask(testutil.NewTask("c", testutil.WithID(-3)))
	require.ErrorIs(t, err, domain.ErrInvalidID)

	require.NoError(t, f.Save(ctx))
	loaded, err := Load(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []int{id}, testutil.IDs(loaded.ListTasks()))
	assert.Equal(t, domain.StatusNew, loaded.ListTasks()[0].Status)
}
