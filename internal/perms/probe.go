// Package perms determines folder readability by actually attempting
// access. Mode bits are useless here: consent-gated locations report
// permissive modes right up until the OS denies the read (or throws a
// one-time consent dialog at the user).
package perms

import (
	"errors"
	"io/fs"
	"os"
)

// Status is the probe state of a catalog folder.
type Status int

const (
	// StatusUnchecked is the baseline before any probe has run. Consent-
	// triggering folders stay here after the startup pass.
	StatusUnchecked Status = iota
	StatusNotExists
	StatusChecking
	StatusDenied
	StatusAccessible
)

func (s Status) String() string {
	switch s {
	case StatusUnchecked:
		return "unchecked"
	case StatusNotExists:
		return "not found"
	case StatusChecking:
		return "checking"
	case StatusDenied:
		return "denied"
	case StatusAccessible:
		return "accessible"
	}
	return "unknown"
}

// Folder is one entry of the permission catalog.
type Folder struct {
	Path                    string
	DisplayName             string
	RequiresElevatedAccess  bool
	CanTriggerConsentDialog bool
	Status                  Status
}

// AccessProber decides readability of a single path. The filesystem
// implementation performs a real read attempt; tests substitute fakes.
type AccessProber interface {
	Probe(path string) Status
}

// FSProber probes by listing directories and reading files.
type FSProber struct{}

// Probe stats the path, then attempts a directory listing or whole-file
// read. Only the outcome of the actual access decides the status.
func (FSProber) Probe(path string) Status {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StatusNotExists
		}
		return StatusDenied
	}
	if info.IsDir() {
		if _, err := os.ReadDir(path); err != nil {
			return StatusDenied
		}
		return StatusAccessible
	}
	if _, err := os.ReadFile(path); err != nil {
		return StatusDenied
	}
	return StatusAccessible
}
