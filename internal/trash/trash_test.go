package trash

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrashMovesFile(t *testing.T) {
	src := t.TempDir()
	trashDir := filepath.Join(t.TempDir(), ".Trash")
	tr := &DirTrasher{Dir: trashDir}

	file := filepath.Join(src, "cache.db")
	require.NoError(t, os.WriteFile(file, []byte("stale"), 0o644))

	require.NoError(t, tr.Trash(file))

	assert.NoFileExists(t, file)
	moved, err := os.ReadFile(filepath.Join(trashDir, "cache.db"))
	require.NoError(t, err)
	assert.Equal(t, "stale", string(moved))
}

func TestTrashMovesDirectoryTree(t *testing.T) {
	src := t.TempDir()
	tr := &DirTrasher{Dir: filepath.Join(t.TempDir(), ".Trash")}

	dir := filepath.Join(src, "com.example.app")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "blob"), []byte("x"), 0o644))

	require.NoError(t, tr.Trash(dir))

	assert.NoDirExists(t, dir)
	assert.FileExists(t, filepath.Join(tr.Dir, "com.example.app", "nested", "blob"))
}

func TestTrashCollisionGetsTimestampSuffix(t *testing.T) {
	src := t.TempDir()
	stamp := time.Date(2026, 8, 30, 14, 5, 9, 250*int(time.Millisecond), time.UTC)
	tr := &DirTrasher{
		Dir: filepath.Join(t.TempDir(), ".Trash"),
		now: func() time.Time { return stamp },
	}

	first := filepath.Join(src, "cache.db")
	require.NoError(t, os.WriteFile(first, []byte("one"), 0o644))
	require.NoError(t, tr.Trash(first))

	second := filepath.Join(src, "cache.db")
	require.NoError(t, os.WriteFile(second, []byte("two"), 0o644))
	require.NoError(t, tr.Trash(second))

	one, err := os.ReadFile(filepath.Join(tr.Dir, "cache.db"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(one))

	two, err := os.ReadFile(filepath.Join(tr.Dir, "cache.db 14.05.09.250"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(two))
}

func TestTrashMissingSourceFails(t *testing.T) {
	tr := &DirTrasher{Dir: filepath.Join(t.TempDir(), ".Trash")}
	err := tr.Trash(filepath.Join(t.TempDir(), "never-existed"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "move to trash")
}

func TestNopTrasherRecordsWithoutMoving(t *testing.T) {
	src := t.TempDir()
	file := filepath.Join(src, "cache.db")
	require.NoError(t, os.WriteFile(file, []byte("stale"), 0o644))

	var tr NopTrasher
	require.NoError(t, tr.Trash(file))
	require.NoError(t, tr.Trash(filepath.Join(src, "missing")))

	assert.FileExists(t, file)
	assert.Equal(t, []string{file, filepath.Join(src, "missing")}, tr.Paths)
}

func TestNewUserTrasherTargetsHomeTrash(t *testing.T) {
	tr := NewUserTrasher("/Users/casey")
	assert.Equal(t, filepath.Join("/Users/casey", ".Trash"), tr.Dir)
}
