// Package whitelist manages user-protected paths that scanners must
// never offer for cleanup, on top of the built-in safety policy.
package whitelist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Whitelist is a set of protected path patterns. Patterns use doublestar
// syntax ("~/Library/Caches/com.myapp.**"); plain paths protect their
// whole subtree.
type Whitelist struct {
	Patterns []string `yaml:"patterns"`

	home string
}

// DefaultPath returns the whitelist file location under the user config
// directory.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "mmc", "whitelist.yaml")
}

// Load reads a whitelist file. A missing file yields an empty whitelist.
func Load(path, home string) (*Whitelist, error) {
	wl := &Whitelist{home: home}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return wl, nil
		}
		return nil, fmt.Errorf("read whitelist: %w", err)
	}
	if err := yaml.Unmarshal(data, wl); err != nil {
		return nil, fmt.Errorf("parse whitelist: %w", err)
	}
	return wl, nil
}

// Save writes the whitelist back to path, creating parent directories.
func (w *Whitelist) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode whitelist: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write whitelist: %w", err)
	}
	return nil
}

// Add appends a pattern if not already present.
func (w *Whitelist) Add(pattern string) {
	for _, p := range w.Patterns {
		if p == pattern {
			return
		}
	}
	w.Patterns = append(w.Patterns, pattern)
}

// IsWhitelisted reports whether path matches any protected pattern,
// either directly or as a descendant of a plain-path pattern.
func (w *Whitelist) IsWhitelisted(path string) bool {
	if w == nil {
		return false
	}
	path = filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range w.Patterns {
		pattern = w.expand(pattern)
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		// A literal pattern also protects everything below it.
		if !strings.ContainsAny(pattern, "*?[{") && strings.HasPrefix(path, pattern+"/") {
			return true
		}
	}
	return false
}

func (w *Whitelist) expand(pattern string) string {
	if w.home != "" {
		if pattern == "~" {
			pattern = w.home
		} else if strings.HasPrefix(pattern, "~/") {
			pattern = filepath.Join(w.home, pattern[2:])
		}
	}
	return filepath.ToSlash(filepath.Clean(pattern))
}
