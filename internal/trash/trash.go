// Package trash is the only sanctioned deletion primitive: items are
// moved into the user's trash directory, never permanently erased, so
// every cleanup stays recoverable from the Finder.
package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Trasher moves a path into a recoverable trash location.
type Trasher interface {
	Trash(path string) error
}

// DirTrasher moves items into a fixed trash directory via rename. The
// zero value is unusable; build one with NewUserTrasher or point Dir at
// a test directory.
type DirTrasher struct {
	Dir string

	// now is swappable for deterministic collision suffixes in tests.
	now func() time.Time
}

// NewUserTrasher returns a trasher targeting home/.Trash.
func NewUserTrasher(home string) *DirTrasher {
	return &DirTrasher{Dir: filepath.Join(home, ".Trash")}
}

// Trash moves path into the trash directory. Name collisions get a
// timestamp suffix, Finder-style, so repeated cleanups of the same item
// never clobber an earlier trashed copy. Rename does not cross volume
// boundaries; items on other volumes surface the underlying error
// instead of being copied and destroyed.
func (t *DirTrasher) Trash(path string) error {
	if err := os.MkdirAll(t.Dir, 0o700); err != nil {
		return fmt.Errorf("prepare trash directory: %w", err)
	}

	dest := filepath.Join(t.Dir, filepath.Base(path))
	if _, err := os.Lstat(dest); err == nil {
		stamp := t.clock()().Format("15.04.05.000")
		dest = filepath.Join(t.Dir, fmt.Sprintf("%s %s", filepath.Base(path), stamp))
	}

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to trash: %w", err)
	}
	log.Debug().Str("from", path).Str("to", dest).Msg("moved to trash")
	return nil
}

// NopTrasher records what would move to the trash without touching the
// filesystem. Used for dry runs.
type NopTrasher struct {
	Paths []string
}

func (n *NopTrasher) Trash(path string) error {
	n.Paths = append(n.Paths, path)
	return nil
}

func (t *DirTrasher) clock() func() time.Time {
	if t.now != nil {
		return t.now
	}
	return time.Now
}
