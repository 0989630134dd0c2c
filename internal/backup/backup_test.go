package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/storage"
)

const testKey = "routineData_v1"

const sampleBlob = `{"anchors":["Run","",""],"explore":"","journal":"","mood":3,"done":false,"checkIn":false,"completed":[false,false,false],"history":[{"date":"2024-03-01","anchors":["Run"],"explore":"","completed":[true],"journal":"ok","mood":4}],"dateInput":"2024-03-01","lastSaved":"2024-03-01T12:00:00.000Z"}`

func setup(t *testing.T) (*Manager, *storage.MemoryStore, *clockwork.FakeClock) {
	t.Helper()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(testKey, []byte(sampleBlob)))
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local))
	mgr := NewManager(store, testKey, filepath.Join(t.TempDir(), constants.BackupDirName), clock)
	return mgr, store, clock
}

func TestCreateBackup(t *testing.T) {
	mgr, _, _ := setup(t)

	path, err := mgr.CreateBackup()
	require.NoError(t, err)
	assert.Equal(t, "tinywins-20240301-1200.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, sampleBlob, string(data))
}

func TestCreateBackupEmptyStore(t *testing.T) {
	store := storage.NewMemoryStore()
	mgr := NewManager(store, testKey, t.TempDir(), clockwork.NewFakeClock())

	_, err := mgr.CreateBackup()
	assert.ErrorIs(t, err, ErrNothingToBackup)
}

func TestCreateBackupSameMinute(t *testing.T) {
	mgr, _, clock := setup(t)

	first, err := mgr.CreateBackup()
	require.NoError(t, err)
	clock.Advance(5 * time.Second)
	second, err := mgr.CreateBackup()
	require.NoError(t, err)
	third, err := mgr.CreateBackup()
	require.NoError(t, err)

	assert.Equal(t, "tinywins-20240301-1200.json", filepath.Base(first))
	assert.Equal(t, "tinywins-20240301-120005.json", filepath.Base(second))
	assert.Equal(t, "tinywins-20240301-120005-1.json", filepath.Base(third))

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 3)
}

func TestListBackupsNewestFirst(t *testing.T) {
	mgr, _, clock := setup(t)

	for i := 0; i < 3; i++ {
		_, err := mgr.CreateBackup()
		require.NoError(t, err)
		clock.Advance(time.Hour)
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.True(t, backups[0].Timestamp.After(backups[1].Timestamp))
	assert.True(t, backups[1].Timestamp.After(backups[2].Timestamp))
	assert.Positive(t, backups[0].Size)
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	mgr, _, _ := setup(t)
	require.NoError(t, os.MkdirAll(mgr.GetBackupDir(), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(mgr.GetBackupDir(), "tinywins-garbage.json"), []byte("{}"), 0o600))

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestListBackupsMissingDir(t *testing.T) {
	mgr := NewManager(storage.NewMemoryStore(), testKey, filepath.Join(t.TempDir(), "missing"), nil)
	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestRotateBackups(t *testing.T) {
	mgr, _, clock := setup(t)

	for i := 0; i < constants.MaxBackups+3; i++ {
		_, err := mgr.CreateBackup()
		require.NoError(t, err)
		clock.Advance(24 * time.Hour)
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, constants.MaxBackups)

	oldest := backups[len(backups)-1].Timestamp
	assert.Equal(t, time.Date(2024, 3, 4, 12, 0, 0, 0, time.Local), oldest)
}

func TestRestoreBackup(t *testing.T) {
	mgr, store, clock := setup(t)

	path, err := mgr.CreateBackup()
	require.NoError(t, err)

	require.NoError(t, store.Set(testKey, []byte(`{"anchors":["Changed"],"history":[]}`)))
	clock.Advance(time.Minute)

	safety, err := mgr.RestoreBackup(path)
	require.NoError(t, err)
	assert.NotEmpty(t, safety)

	got, err := store.Get(testKey)
	require.NoError(t, err)
	assert.JSONEq(t, sampleBlob, string(got))

	saved, err := os.ReadFile(safety)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "Changed")
}

func TestRestoreBackupIntoEmptyStore(t *testing.T) {
	mgr, _, _ := setup(t)
	path, err := mgr.CreateBackup()
	require.NoError(t, err)

	empty := storage.NewMemoryStore()
	other := NewManager(empty, testKey, t.TempDir(), clockwork.NewFakeClock())
	safety, err := other.RestoreBackup(path)
	require.NoError(t, err)
	assert.Empty(t, safety)

	got, err := empty.Get(testKey)
	require.NoError(t, err)
	assert.JSONEq(t, sampleBlob, string(got))
}

func TestRestoreBackupRejectsInvalid(t *testing.T) {
	mgr, store, _ := setup(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"malformed", "{not json"},
		{"array", "[1,2,3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := mgr.RestoreBackup(path)
			assert.Error(t, err)

			got, err := store.Get(testKey)
			require.NoError(t, err)
			assert.JSONEq(t, sampleBlob, string(got))
		})
	}
}

func TestRestoreBackupMissingFile(t *testing.T) {
	mgr, _, _ := setup(t)
	_, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
