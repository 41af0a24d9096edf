// Package apps enumerates installed applications and previously-known
// package identifiers. It is the engine's read-only view of what owns
// which filesystem residue.
package apps

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"howett.net/plist"

	"github.com/Prot10/MyMacCleaner-sub003/internal/safety"
)

// App is one installed application.
type App struct {
	ID       string
	Name     string
	BundleID string
	Path     string
	Version  string
	Size     int64
}

// bundleInfo is the subset of Info.plist the registry cares about.
type bundleInfo struct {
	BundleID    string `plist:"CFBundleIdentifier"`
	Name        string `plist:"CFBundleName"`
	DisplayName string `plist:"CFBundleDisplayName"`
	Version     string `plist:"CFBundleShortVersionString"`
}

// DefaultAppDirs returns the standard application directories.
func DefaultAppDirs(home string) []string {
	return []string{
		"/Applications",
		filepath.Join(home, "Applications"),
	}
}

// InstalledApps scans the given directories for .app bundles and reads
// their Info.plist metadata. Unreadable or malformed bundles are skipped
// rather than failing the whole enumeration. Results are sorted by size
// descending, largest first.
func InstalledApps(dirs ...string) []App {
	seen := make(map[string]bool)
	var found []App

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// ~/Applications commonly does not exist; skip silently.
			continue
		}
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), ".app") {
				continue
			}
			bundlePath := filepath.Join(dir, entry.Name())
			app, ok := readBundle(bundlePath)
			if !ok {
				continue
			}
			key := strings.ToLower(app.BundleID)
			if key == "" {
				key = strings.ToLower(app.Path)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, app)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Size > found[j].Size })
	return found
}

// readBundle reads one .app bundle's metadata.
func readBundle(bundlePath string) (App, bool) {
	data, err := os.ReadFile(filepath.Join(bundlePath, "Contents", "Info.plist"))
	if err != nil {
		log.Debug().Str("bundle", bundlePath).Err(err).Msg("no readable Info.plist")
		return App{}, false
	}

	var info bundleInfo
	if _, err := plist.Unmarshal(data, &info); err != nil {
		log.Debug().Str("bundle", bundlePath).Err(err).Msg("malformed Info.plist")
		return App{}, false
	}

	name := info.DisplayName
	if name == "" {
		name = info.Name
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(bundlePath), ".app")
	}

	size, err := safety.DirectorySize(bundlePath)
	if err != nil {
		size = 0
	}

	return App{
		ID:       uuid.NewString(),
		Name:     name,
		BundleID: info.BundleID,
		Path:     bundlePath,
		Version:  info.Version,
		Size:     size,
	}, true
}

// BundleIDs extracts the non-empty bundle identifiers of apps.
func BundleIDs(installed []App) []string {
	var ids []string
	for _, app := range installed {
		if app.BundleID != "" {
			ids = append(ids, app.BundleID)
		}
	}
	return ids
}

// Names extracts the display names of apps.
func Names(installed []App) []string {
	names := make([]string, 0, len(installed))
	for _, app := range installed {
		names = append(names, app.Name)
	}
	return names
}
