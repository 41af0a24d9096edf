package apps

import (
	"os"
	"strings"
)

// DefaultReceiptDirs returns the package receipt locations. Receipts
// outlive the applications they installed, which makes them the best
// available record of what used to be on the machine.
func DefaultReceiptDirs() []string {
	return []string{
		"/var/db/receipts",
		"/private/var/db/receipts",
	}
}

// KnownIdentifiers reads package identifiers from receipt directories.
// Receipt files are named "<identifier>.bom" / "<identifier>.plist";
// the identifier is the file name minus the extension.
func KnownIdentifiers(dirs ...string) []string {
	seen := make(map[string]bool)
	var ids []string

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Receipt dirs need elevated access on hardened systems.
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			id := strings.TrimSuffix(strings.TrimSuffix(name, ".bom"), ".plist")
			if id == name || id == "" {
				continue
			}
			lower := strings.ToLower(id)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			ids = append(ids, id)
		}
	}

	return ids
}
