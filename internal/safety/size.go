package safety

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StatError reports a failed stat of a single file during size
// computation.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string { return fmt.Sprintf("stat %s: %v", e.Path, e.Err) }
func (e *StatError) Unwrap() error { return e.Err }

// EnumerationError reports a failed directory listing during size
// computation. Distinct from StatError so callers can tell an unreadable
// directory from a vanished file.
type EnumerationError struct {
	Path string
	Err  error
}

func (e *EnumerationError) Error() string { return fmt.Sprintf("enumerate %s: %v", e.Path, e.Err) }
func (e *EnumerationError) Unwrap() error { return e.Err }

// PathSize returns the size of a file or the recursive size of a
// directory.
func PathSize(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, &StatError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return info.Size(), nil
	}
	return DirectorySize(path)
}

// DirectorySize sums the sizes of all regular files under root. Symlinks
// are counted by their own lstat size and never followed, so a link into
// a large tree outside the directory cannot inflate the total or loop
// the walk.
func DirectorySize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &EnumerationError{Path: path, Err: err}
		}
		if d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return &StatError{Path: path, Err: infoErr}
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
