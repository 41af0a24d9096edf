package orphan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRegistry simulates one installed app plus receipts for it and for
// an app that has since been removed.
func testRegistry() Registry {
	return NewRegistry(
		[]string{"com.pixelmator.pro"},
		[]string{"Pixelmator Pro"},
		[]string{"com.pixelmator.pro", "com.sketchvault.studio"},
	)
}

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func TestDetectClassifiesLeftovers(t *testing.T) {
	cacheRoot := t.TempDir()
	prefsRoot := t.TempDir()

	mkdirAll(t, filepath.Join(cacheRoot, "com.pixelmator.pro"))
	mkdirAll(t, filepath.Join(cacheRoot, "Pixelmator Pro"))
	mkdirAll(t, filepath.Join(cacheRoot, "com.sketchvault.studio"))
	mkdirAll(t, filepath.Join(cacheRoot, "com.sketchvault.helper"))
	mkdirAll(t, filepath.Join(cacheRoot, "io.sketchvault.sync"))
	mkdirAll(t, filepath.Join(cacheRoot, "randomstuff"))
	mkdirAll(t, filepath.Join(cacheRoot, ".hidden"))
	require.NoError(t, os.WriteFile(
		filepath.Join(prefsRoot, "com.sketchvault.studio.plist"), []byte("<plist/>"), 0o644))

	roots := []SearchRoot{
		{Path: cacheRoot, Category: CategoryCache},
		{Path: prefsRoot, Category: CategoryPreferences},
	}

	leftovers, err := Detect(context.Background(), roots, testRegistry())
	require.NoError(t, err)

	byName := make(map[string]Leftover, len(leftovers))
	for _, l := range leftovers {
		byName[l.Name] = l
	}

	t.Run("installed app residue is suppressed", func(t *testing.T) {
		assert.NotContains(t, byName, "com.pixelmator.pro")
		assert.NotContains(t, byName, "Pixelmator Pro")
	})

	t.Run("receipt without installed app is high confidence", func(t *testing.T) {
		l, ok := byName["com.sketchvault.studio"]
		require.True(t, ok)
		assert.Equal(t, High, l.Confidence)
		assert.Equal(t, "com.sketchvault.studio", l.BundleID)
		assert.Equal(t, CategoryCache, l.Category)
	})

	t.Run("same developer prefix is medium confidence", func(t *testing.T) {
		l, ok := byName["com.sketchvault.helper"]
		require.True(t, ok)
		assert.Equal(t, Medium, l.Confidence)
	})

	t.Run("vendor word overlap is low confidence", func(t *testing.T) {
		l, ok := byName["io.sketchvault.sync"]
		require.True(t, ok)
		assert.Equal(t, Low, l.Confidence)
	})

	t.Run("unattributable residue is not reported", func(t *testing.T) {
		assert.NotContains(t, byName, "randomstuff")
	})

	t.Run("dotfiles are skipped", func(t *testing.T) {
		assert.NotContains(t, byName, ".hidden")
	})

	t.Run("residue suffix is stripped before matching", func(t *testing.T) {
		l, ok := byName["com.sketchvault.studio.plist"]
		require.True(t, ok)
		assert.Equal(t, High, l.Confidence)
		assert.Equal(t, "com.sketchvault.studio", l.BundleID)
		assert.Equal(t, CategoryPreferences, l.Category)
		assert.EqualValues(t, len("<plist/>"), l.Size)
	})
}

func TestDetectNeverReportsInstalled(t *testing.T) {
	root := t.TempDir()
	reg := testRegistry()
	mkdirAll(t, filepath.Join(root, "com.pixelmator.pro"))
	mkdirAll(t, filepath.Join(root, "com.sketchvault.studio"))

	leftovers, err := Detect(context.Background(),
		[]SearchRoot{{Path: root, Category: CategoryCache}}, reg)
	require.NoError(t, err)

	for _, l := range leftovers {
		_, installed := reg.installedIDs[l.BundleID]
		assert.False(t, installed, "installed app %q must never be reported", l.BundleID)
	}
	require.Len(t, leftovers, 1)
}

func TestDetectMissingRootIsSkipped(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "com.sketchvault.studio"))

	roots := []SearchRoot{
		{Path: filepath.Join(root, "does-not-exist"), Category: CategoryLogs},
		{Path: root, Category: CategoryCache},
	}

	leftovers, err := Detect(context.Background(), roots, testRegistry())
	require.NoError(t, err)
	require.Len(t, leftovers, 1)
	assert.Equal(t, CategoryCache, leftovers[0].Category)
}

func TestDetectNestedRootsReportEachItemOnce(t *testing.T) {
	logs := t.TempDir()
	reports := filepath.Join(logs, "DiagnosticReports")
	mkdirAll(t, reports)
	require.NoError(t, os.WriteFile(
		filepath.Join(logs, "com.sketchvault.studio.log"), []byte("log"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(reports, "com.sketchvault.studio.ips"), []byte("crash"), 0o644))

	// Sweeps are single-level, so a root nested inside another root owns
	// its contents exclusively.
	roots := []SearchRoot{
		{Path: logs, Category: CategoryLogs},
		{Path: reports, Category: CategoryCrashReports},
	}

	leftovers, err := Detect(context.Background(), roots, testRegistry())
	require.NoError(t, err)
	require.Len(t, leftovers, 2)

	byPath := make(map[string]Category, len(leftovers))
	for _, l := range leftovers {
		byPath[l.Path] = l.Category
	}
	assert.Equal(t, CategoryLogs, byPath[filepath.Join(logs, "com.sketchvault.studio.log")])
	assert.Equal(t, CategoryCrashReports, byPath[filepath.Join(reports, "com.sketchvault.studio.ips")])
	assert.NotContains(t, byPath, reports)
}

func TestDetectCancelledReturnsNoSnapshot(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "com.sketchvault.studio"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	leftovers, err := Detect(ctx, []SearchRoot{{Path: root, Category: CategoryCache}}, testRegistry())
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, leftovers)
}

func TestConfidenceOrdering(t *testing.T) {
	assert.Less(t, Low, Medium)
	assert.Less(t, Medium, High)

	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "medium", Medium.String())
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "unknown", Confidence(0).String())
}

func TestTokenFromName(t *testing.T) {
	cases := map[string]string{
		"Com.Adobe.Photoshop":              "com.adobe.photoshop",
		"com.adobe.photoshop.plist":        "com.adobe.photoshop",
		"com.adobe.photoshop.savedState":   "com.adobe.photoshop",
		"com.example.app.binarycookies":    "com.example.app",
		"some-cache-folder":                "some-cache-folder",
		"com.example.app.2024-01-02.diag":  "com.example.app.2024-01-02",
		"com.example.app.lockfile":         "com.example.app",
	}
	for name, want := range cases {
		assert.Equal(t, want, tokenFromName(name), "input %q", name)
	}
}

func TestDeveloperSegmentAndVendorWord(t *testing.T) {
	assert.Equal(t, "com.adobe", developerSegment("com.adobe.photoshop"))
	assert.Equal(t, "", developerSegment("photoshop"))
	assert.Equal(t, "", developerSegment("com.adobe"))

	assert.Equal(t, "adobe", vendorWord("com.adobe.photoshop"))
	assert.Equal(t, "", vendorWord("a.io.thing"))
	assert.Equal(t, "", vendorWord("plainname"))
}
