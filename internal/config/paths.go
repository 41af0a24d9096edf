// Package config holds the static catalogs the engine runs from: the
// cleanup path patterns, the permission catalog, and the orphan search
// roots. Loaded once; never mutated.
package config

import (
	"path/filepath"

	"github.com/Prot10/MyMacCleaner-sub003/internal/orphan"
	"github.com/Prot10/MyMacCleaner-sub003/internal/perms"
)

// CleanupPath describes one category of cleanable locations. Pattern may
// contain a leading "~" and at most one "*" wildcard; expansion is
// single-level (see clean.ExpandPattern).
type CleanupPath struct {
	Pattern      string
	Category     string
	Description  string
	RequiresRoot bool
	SafeToClean  bool
}

// CleanupPaths returns the full cleanup catalog.
func CleanupPaths() []CleanupPath {
	return []CleanupPath{
		// ── User caches ─────────────────────────────────────────
		{
			Pattern:     "~/Library/Caches/*",
			Category:    "user",
			Description: "Per-application user caches",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/Logs/*",
			Category:    "user",
			Description: "Application log files",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/Saved Application State/*",
			Category:    "user",
			Description: "Window restoration state",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/WebKit/*",
			Category:    "user",
			Description: "WebKit local storage and caches",
			SafeToClean: true,
		},

		// ── Browser caches ──────────────────────────────────────
		{
			Pattern:     "~/Library/Caches/com.apple.Safari",
			Category:    "browser",
			Description: "Safari cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/Caches/Google/Chrome",
			Category:    "browser",
			Description: "Google Chrome cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/Caches/Firefox/Profiles/*",
			Category:    "browser",
			Description: "Firefox profile caches",
			SafeToClean: true,
		},

		// ── Developer caches ────────────────────────────────────
		{
			Pattern:     "~/Library/Developer/Xcode/DerivedData",
			Category:    "dev",
			Description: "Xcode build products and indexes",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/Developer/Xcode/iOS DeviceSupport/*",
			Category:    "dev",
			Description: "Old iOS device symbol caches",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/Caches/org.swift.swiftpm",
			Category:    "dev",
			Description: "Swift package manager cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/Library/Caches/Homebrew",
			Category:    "dev",
			Description: "Homebrew download cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/.npm/_cacache",
			Category:    "dev",
			Description: "npm package cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/.cache/pip",
			Category:    "dev",
			Description: "Python pip cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/.gradle/caches",
			Category:    "dev",
			Description: "Gradle build cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/.cargo/registry/cache",
			Category:    "dev",
			Description: "Rust cargo registry cache",
			SafeToClean: true,
		},
		{
			Pattern:     "~/go/pkg/mod/cache/download",
			Category:    "dev",
			Description: "Go module download cache",
			SafeToClean: true,
		},

		// ── System caches (root-owned) ──────────────────────────
		{
			Pattern:      "/Library/Caches/*",
			Category:     "system",
			Description:  "System-wide application caches",
			RequiresRoot: true,
			SafeToClean:  true,
		},
		{
			Pattern:      "/Library/Logs/*",
			Category:     "system",
			Description:  "System-wide log files",
			RequiresRoot: true,
			SafeToClean:  true,
		},
		{
			Pattern:      "/private/var/log/*",
			Category:     "system",
			Description:  "Unix system logs",
			RequiresRoot: true,
			SafeToClean:  false,
		},

		// ── Trash ───────────────────────────────────────────────
		{
			Pattern:     "~/.Trash/*",
			Category:    "trash",
			Description: "Items already in the trash",
			SafeToClean: true,
		},
	}
}

// PathsByCategory filters the catalog by category name.
func PathsByCategory(category string) []CleanupPath {
	var result []CleanupPath
	for _, p := range CleanupPaths() {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// AccessFolders returns the permission catalog probed by the perms
// monitor. Folders marked CanTriggerConsentDialog are skipped during the
// startup pass so the engine never provokes a TCC prompt the user did
// not ask for.
func AccessFolders(home string) []perms.Folder {
	return []perms.Folder{
		{
			Path:        filepath.Join(home, "Library", "Caches"),
			DisplayName: "User Caches",
		},
		{
			Path:        filepath.Join(home, "Library", "Logs"),
			DisplayName: "User Logs",
		},
		{
			Path:        filepath.Join(home, "Library", "Application Support"),
			DisplayName: "Application Support",
		},
		{
			Path:                    filepath.Join(home, "Desktop"),
			DisplayName:             "Desktop",
			CanTriggerConsentDialog: true,
		},
		{
			Path:                    filepath.Join(home, "Documents"),
			DisplayName:             "Documents",
			CanTriggerConsentDialog: true,
		},
		{
			Path:                    filepath.Join(home, "Downloads"),
			DisplayName:             "Downloads",
			CanTriggerConsentDialog: true,
		},
		{
			Path:                   "/Library/Caches",
			DisplayName:            "System Caches",
			RequiresElevatedAccess: true,
		},
		{
			Path:                   "/Library/Logs",
			DisplayName:            "System Logs",
			RequiresElevatedAccess: true,
		},
		{
			Path:                   "/private/var/log",
			DisplayName:            "Unix Logs",
			RequiresElevatedAccess: true,
		},
	}
}

// OrphanSearchRoots returns the ordered (root, category) pairs the
// orphan detector sweeps, spanning user-space and system-space library
// locations. DiagnosticReports nests inside the Logs root on purpose:
// sweeps enumerate a single level, so the Logs sweep sees the
// DiagnosticReports directory itself (never its contents) and the inner
// root classifies the crash reports under their own category.
func OrphanSearchRoots(home string) []orphan.SearchRoot {
	lib := filepath.Join(home, "Library")
	return []orphan.SearchRoot{
		{Path: filepath.Join(lib, "Caches"), Category: orphan.CategoryCache},
		{Path: filepath.Join(lib, "Preferences"), Category: orphan.CategoryPreferences},
		{Path: filepath.Join(lib, "Application Support"), Category: orphan.CategoryApplicationSupport},
		{Path: filepath.Join(lib, "Containers"), Category: orphan.CategoryContainer},
		{Path: filepath.Join(lib, "Logs"), Category: orphan.CategoryLogs},
		{Path: filepath.Join(lib, "LaunchAgents"), Category: orphan.CategoryLaunchItem},
		{Path: filepath.Join(lib, "Cookies"), Category: orphan.CategoryCookies},
		{Path: filepath.Join(lib, "Saved Application State"), Category: orphan.CategorySavedState},
		{Path: filepath.Join(lib, "WebKit"), Category: orphan.CategoryWebKit},
		{Path: filepath.Join(lib, "Logs", "DiagnosticReports"), Category: orphan.CategoryCrashReports},
		{Path: "/Library/Caches", Category: orphan.CategoryCache},
		{Path: "/Library/Preferences", Category: orphan.CategoryPreferences},
		{Path: "/Library/LaunchAgents", Category: orphan.CategoryLaunchItem},
		{Path: "/Library/LaunchDaemons", Category: orphan.CategoryLaunchItem},
		{Path: "/Library/Logs", Category: orphan.CategoryLogs},
	}
}
