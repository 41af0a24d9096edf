// Package orphan classifies filesystem residue left behind by removed
// applications. Detection is evidence-based: an item is reported only
// when some signal ties it to an application that is no longer
// installed; absence of any owning-application signal is not treated as
// evidence of orphan status.
package orphan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Prot10/MyMacCleaner-sub003/internal/safety"
)

// Category tags where a leftover was found.
type Category string

const (
	CategoryCache              Category = "cache"
	CategoryPreferences        Category = "preferences"
	CategoryApplicationSupport Category = "applicationSupport"
	CategoryContainer          Category = "container"
	CategoryLogs               Category = "logs"
	CategoryLaunchItem         Category = "launchItem"
	CategoryCookies            Category = "cookies"
	CategorySavedState         Category = "savedState"
	CategoryWebKit             Category = "webkit"
	CategoryCrashReports       Category = "crashReports"
	CategoryOther              Category = "other"
)

// Confidence is the detector's certainty that residue belongs to an
// uninstalled application. Totally ordered: Low < Medium < High.
type Confidence int

const (
	Low Confidence = iota + 1
	Medium
	High
)

func (c Confidence) String() string {
	switch c {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return "unknown"
}

// Leftover is one confidence-scored residue classification. Immutable;
// a rescan replaces the whole snapshot.
type Leftover struct {
	Path       string
	Name       string
	Size       int64
	ModTime    time.Time
	Category   Category
	Confidence Confidence

	// BundleID is the identifier-like token derived from the item name,
	// when it has reverse-DNS shape.
	BundleID string
}

// SearchRoot pairs a directory with the leftover category its children
// belong to.
type SearchRoot struct {
	Path     string
	Category Category
}

// Registry is the detector's authoritative input: what is installed now
// and what has ever been known to be installed. All keys lowercase.
type Registry struct {
	installedIDs   map[string]struct{}
	installedNames []string
	knownIDs       map[string]struct{}
}

// NewRegistry builds a registry from installed bundle identifiers,
// installed display names, and previously-known identifiers (package
// receipts survive uninstallation, which is exactly what makes them
// useful here).
func NewRegistry(installedIDs, installedNames, knownIDs []string) Registry {
	r := Registry{
		installedIDs: make(map[string]struct{}, len(installedIDs)),
		knownIDs:     make(map[string]struct{}, len(knownIDs)),
	}
	for _, id := range installedIDs {
		r.installedIDs[strings.ToLower(id)] = struct{}{}
	}
	for _, name := range installedNames {
		if name != "" {
			r.installedNames = append(r.installedNames, strings.ToLower(name))
		}
	}
	for _, id := range knownIDs {
		r.knownIDs[strings.ToLower(id)] = struct{}{}
	}
	return r
}

// Detect sweeps each search root and returns one complete snapshot of
// classified leftovers. Roots are disjoint and read-only, so they scan
// concurrently; cancellation is honored between roots, and a cancelled
// sweep returns no partial snapshot.
func Detect(ctx context.Context, roots []SearchRoot, reg Registry) ([]Leftover, error) {
	perRoot := make([][]Leftover, len(roots))
	var g errgroup.Group
	g.SetLimit(4)

	var mu sync.Mutex
	for i, root := range roots {
		i, root := i, root
		if err := ctx.Err(); err != nil {
			// Drain launched sweeps so none write perRoot after return.
			_ = g.Wait()
			return nil, err
		}
		g.Go(func() error {
			found := sweepRoot(root, reg)
			mu.Lock()
			perRoot[i] = found
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []Leftover
	for _, found := range perRoot {
		all = append(all, found...)
	}
	return all, nil
}

// sweepRoot enumerates the immediate children of one search root and
// classifies each candidate.
func sweepRoot(root SearchRoot, reg Registry) []Leftover {
	entries, err := os.ReadDir(root.Path)
	if err != nil {
		// Missing or unreadable roots are normal (system-space locations
		// without full disk access); the permission surface reports them.
		log.Debug().Str("root", root.Path).Err(err).Msg("skipping search root")
		return nil
	}

	var found []Leftover
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		confidence, bundleID, reported := classify(name, reg)
		if !reported {
			continue
		}

		path := filepath.Join(root.Path, name)
		info, statErr := entry.Info()
		if statErr != nil {
			continue
		}
		size := info.Size()
		if entry.IsDir() {
			if dirSize, sizeErr := safety.DirectorySize(path); sizeErr == nil {
				size = dirSize
			}
		}

		found = append(found, Leftover{
			Path:       path,
			Name:       name,
			Size:       size,
			ModTime:    info.ModTime(),
			Category:   root.Category,
			Confidence: confidence,
			BundleID:   bundleID,
		})
	}
	return found
}

// classify derives an identifier-like token from an item name and maps
// it to a confidence. Rule order decides the confidence; nothing else
// does.
func classify(name string, reg Registry) (Confidence, string, bool) {
	token := tokenFromName(name)

	// Owned by a live app: exact identifier match.
	if _, ok := reg.installedIDs[token]; ok {
		return High, token, false
	}
	// Still live: the name matches an installed app's display name.
	if matchesInstalledName(name, reg.installedNames) {
		return 0, "", false
	}

	// A receipt for exactly this identifier with no matching installed
	// app is the strongest orphan signal available.
	if _, ok := reg.knownIDs[token]; ok {
		return High, token, true
	}

	// Same developer as something we have seen installed.
	if dev := developerSegment(token); dev != "" {
		for id := range reg.knownIDs {
			if developerSegment(id) == dev {
				return Medium, token, true
			}
		}
		for id := range reg.installedIDs {
			if developerSegment(id) == dev {
				return Medium, token, true
			}
		}
	}

	// Weakest signal: the vendor word shows up in some known identifier
	// or installed name.
	if vendor := vendorWord(token); vendor != "" {
		for id := range reg.knownIDs {
			if strings.Contains(id, vendor) {
				return Low, token, true
			}
		}
		for _, n := range reg.installedNames {
			if strings.Contains(n, vendor) {
				return Low, token, true
			}
		}
	}

	return 0, "", false
}

// residueSuffixes are file extensions commonly appended to bundle
// identifiers in library locations.
var residueSuffixes = []string{
	".plist",
	".savedstate",
	".binarycookies",
	".lockfile",
	".log",
	".ips",
	".diag",
}

// tokenFromName lowercases a child name and strips known residue
// extensions, yielding the identifier-like token used for matching.
func tokenFromName(name string) string {
	token := strings.ToLower(name)
	for _, suffix := range residueSuffixes {
		token = strings.TrimSuffix(token, suffix)
	}
	return token
}

// matchesInstalledName reports whether a file name and an installed
// display name contain each other, case-insensitively. Names shorter
// than three runes are ignored to avoid matching everything.
func matchesInstalledName(name string, installedNames []string) bool {
	lower := strings.ToLower(name)
	for _, appName := range installedNames {
		if len(appName) < 3 {
			continue
		}
		if strings.Contains(lower, appName) || strings.Contains(appName, lower) {
			return true
		}
	}
	return false
}

// developerSegment returns the leading reverse-DNS developer prefix
// ("com.adobe" from "com.adobe.photoshop"), or "" when the token does
// not look like a bundle identifier.
func developerSegment(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[0] + "." + parts[1]
}

// vendorWord returns the vendor label of a reverse-DNS token ("adobe"
// from "com.adobe.photoshop").
func vendorWord(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) < 3 || len(parts[1]) < 3 {
		return ""
	}
	return parts[1]
}
