package safety

import (
	"path/filepath"
	"strings"
)

// Policy carries the protected-path set and the deletion allow-list used
// by Validate. It is a plain value with no hidden state: tests build one
// rooted at a temp directory, production code uses NewPolicy(home).
type Policy struct {
	// Home is the user's home directory; "~" in validated paths expands
	// against it.
	Home string

	// Protected are absolute paths that may never be deleted, matched
	// exactly after normalization.
	Protected []string

	// Allowed are the safe-zone roots. A path is deletable only as a
	// strict descendant of one of these, or when it equals an entry whose
	// own name marks it as a leaf cache directory.
	Allowed []string
}

// protectedHomeSubdirs are the user-data folders inside the home directory
// that are never deletable, whatever the allow-list says.
var protectedHomeSubdirs = []string{
	"Desktop",
	"Documents",
	"Downloads",
	"Movies",
	"Music",
	"Pictures",
	"Public",
}

// NewPolicy builds the default deny-by-default policy rooted at home.
// The allow-list is a curated, finite set of safe zones; everything else
// is rejected rather than enumerating dangerous paths.
func NewPolicy(home string) Policy {
	home = filepath.Clean(home)
	lib := filepath.Join(home, "Library")

	protected := []string{
		"/",
		"/System",
		"/Library",
		"/Users",
		"/Applications",
		"/bin",
		"/sbin",
		"/usr",
		"/etc",
		"/var",
		"/tmp",
		"/private",
		"/private/etc",
		"/private/var",
		"/private/tmp",
		home,
	}
	for _, sub := range protectedHomeSubdirs {
		protected = append(protected, filepath.Join(home, sub))
	}

	allowed := []string{
		// User-space library locations.
		filepath.Join(lib, "Caches"),
		filepath.Join(lib, "Logs"),
		filepath.Join(lib, "Application Support"),
		filepath.Join(lib, "Containers"),
		filepath.Join(lib, "Saved Application State"),
		filepath.Join(lib, "Cookies"),
		filepath.Join(lib, "WebKit"),
		filepath.Join(lib, "Preferences"),
		filepath.Join(home, ".Trash"),

		// Developer-tool caches.
		filepath.Join(lib, "Developer", "Xcode", "DerivedData"),
		filepath.Join(lib, "Developer", "Xcode", "iOS DeviceSupport"),
		filepath.Join(lib, "Developer", "CoreSimulator", "Caches"),

		// Package-manager caches.
		filepath.Join(home, ".cache"),
		filepath.Join(home, ".npm"),
		filepath.Join(home, ".gradle", "caches"),
		filepath.Join(home, ".cargo", "registry", "cache"),
		filepath.Join(home, "go", "pkg", "mod", "cache"),
		"/opt/homebrew/var/cache",

		// Root-owned system caches, logs, and launch items.
		"/Library/Caches",
		"/Library/Logs",
		"/Library/LaunchAgents",
		"/Library/LaunchDaemons",
		"/private/var/log",
	}

	return Policy{Home: home, Protected: protected, Allowed: allowed}
}

// ExpandHome resolves a leading "~" against the policy's home directory.
func (p Policy) ExpandHome(path string) string {
	if path == "~" {
		return p.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.Home, path[2:])
	}
	return path
}

// isCleanableLeaf reports whether a directory name itself identifies a
// leaf cache location, which makes the allow-list entry deletable as a
// whole (e.g. DerivedData) rather than only its children.
func isCleanableLeaf(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "cache") ||
		lower == "deriveddata" ||
		lower == ".trash" ||
		lower == "trash"
}

// isCacheOrTrashSubtree reports whether any segment of path names a cache
// or trash directory. Used to exempt symlink targets that legitimately
// live inside a cache tree.
func isCacheOrTrashSubtree(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if isCleanableLeaf(seg) {
			return true
		}
	}
	return false
}
