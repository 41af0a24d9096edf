// Package clean turns the cleanup catalog into concrete cleanable items
// and executes validated deletion batches.
package clean

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"
)

// ExpandPattern expands one catalog pattern into the absolute paths that
// currently exist. A leading "~" resolves against home. A pattern
// without a wildcard returns itself iff it exists.
//
// A wildcard expands exactly one directory level: the children of the
// fixed prefix directory are matched against the wildcard segment and
// returned verbatim. Fixed segments after the wildcard segment are
// ignored, so "~/Library/*/Caches" under-matches; keep wildcards in the
// final segment. Unreadable prefix directories yield an empty result
// silently; callers probe and report permissions separately.
func ExpandPattern(home, pattern string) []string {
	if pattern == "~" {
		pattern = home
	} else if strings.HasPrefix(pattern, "~/") {
		pattern = filepath.Join(home, pattern[2:])
	}

	if !strings.Contains(pattern, "*") {
		if _, err := os.Lstat(pattern); err != nil {
			return nil
		}
		return []string{pattern}
	}

	prefix, segment := splitAtWildcard(pattern)
	entries, err := os.ReadDir(prefix)
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if wildcard.Match(segment, entry.Name()) {
			paths = append(paths, filepath.Join(prefix, entry.Name()))
		}
	}
	return paths
}

// splitAtWildcard cuts a pattern into the fixed directory prefix before
// the wildcard-bearing segment and that segment itself.
func splitAtWildcard(pattern string) (prefix, segment string) {
	segments := strings.Split(filepath.ToSlash(pattern), "/")
	for i, seg := range segments {
		if strings.Contains(seg, "*") {
			return string(filepath.Separator) + filepath.Join(segments[:i]...), seg
		}
	}
	return filepath.Dir(pattern), filepath.Base(pattern)
}
