package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPolicy returns a policy rooted at a temp home with the standard
// library layout created.
func testPolicy(t *testing.T) Policy {
	t.Helper()
	home := t.TempDir()
	for _, dir := range []string{
		"Library/Caches",
		"Library/Logs",
		"Library/Preferences",
		"Documents",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(home, dir), 0o755))
	}
	return NewPolicy(home)
}

func TestValidateInvalidInput(t *testing.T) {
	p := testPolicy(t)

	assert.Equal(t, InvalidPath, Validate(p, "").Verdict)
	assert.Equal(t, InvalidPath, Validate(p, "   ").Verdict)
	assert.Equal(t, InvalidPath, Validate(p, "relative/path").Verdict)
}

func TestValidateProtectedPaths(t *testing.T) {
	p := testPolicy(t)

	for _, path := range []string{"/", "/System", "/Library", "/Users", "/Applications", "/usr", "/etc"} {
		t.Run(path, func(t *testing.T) {
			res := Validate(p, path)
			assert.Equal(t, ProtectedPath, res.Verdict)
		})
	}

	t.Run("trailing_separator", func(t *testing.T) {
		assert.Equal(t, ProtectedPath, Validate(p, "/System/").Verdict)
		assert.Equal(t, ProtectedPath, Validate(p, "/System//").Verdict)
	})

	t.Run("home_itself", func(t *testing.T) {
		assert.Equal(t, ProtectedPath, Validate(p, p.Home).Verdict)
		assert.Equal(t, ProtectedPath, Validate(p, "~").Verdict)
	})

	t.Run("home_subdirectories", func(t *testing.T) {
		for _, sub := range []string{"Desktop", "Documents", "Downloads", "Movies", "Music", "Pictures", "Public"} {
			assert.Equal(t, ProtectedPath, Validate(p, "~/"+sub).Verdict, sub)
		}
	})
}

func TestValidatePathTraversal(t *testing.T) {
	p := testPolicy(t)

	// Traversal must be caught in the original string, even when the
	// normalized form would land under an allowed base.
	res := Validate(p, "~/Library/Caches/../Caches/app")
	assert.Equal(t, PathTraversal, res.Verdict)

	res = Validate(p, "~/Library/Caches/../../etc/passwd")
	assert.Equal(t, PathTraversal, res.Verdict)
}

func TestValidateOutsideAllowedPaths(t *testing.T) {
	p := testPolicy(t)

	assert.Equal(t, OutsideAllowedPaths, Validate(p, "/opt/somewhere/else").Verdict)
	// Preferences is an allow-list root but not itself a cache leaf, so
	// the root cannot be deleted wholesale.
	assert.Equal(t, OutsideAllowedPaths, Validate(p, "~/Library/Preferences").Verdict)
}

func TestValidateAllowedLeafEquality(t *testing.T) {
	p := testPolicy(t)

	// Caches identifies itself as a cache directory by name, so the
	// allow-list entry itself is deletable.
	assert.Equal(t, Safe, Validate(p, "~/Library/Caches").Verdict)
}

func TestValidateExistence(t *testing.T) {
	p := testPolicy(t)

	assert.Equal(t, DoesNotExist, Validate(p, "~/Library/Caches/NotThere").Verdict)

	appDir := filepath.Join(p.Home, "Library", "Caches", "com.example.app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	assert.Equal(t, Safe, Validate(p, appDir).Verdict)
}

func TestValidateSymlinks(t *testing.T) {
	p := testPolicy(t)
	caches := filepath.Join(p.Home, "Library", "Caches")

	t.Run("symlink_to_protected", func(t *testing.T) {
		link := filepath.Join(caches, "docs-link")
		require.NoError(t, os.Symlink(filepath.Join(p.Home, "Documents"), link))
		res := Validate(p, link)
		assert.Equal(t, SymlinkToProtected, res.Verdict)
	})

	t.Run("symlink_into_cache_subtree", func(t *testing.T) {
		target := filepath.Join(caches, "real")
		require.NoError(t, os.MkdirAll(target, 0o755))
		link := filepath.Join(caches, "cache-link")
		require.NoError(t, os.Symlink(target, link))
		assert.Equal(t, Safe, Validate(p, link).Verdict)
	})

	t.Run("broken_symlink", func(t *testing.T) {
		link := filepath.Join(caches, "dangling")
		require.NoError(t, os.Symlink(filepath.Join(caches, "gone"), link))
		assert.Equal(t, Safe, Validate(p, link).Verdict)
	})
}

func TestValidateIdempotent(t *testing.T) {
	p := testPolicy(t)
	appDir := filepath.Join(p.Home, "Library", "Caches", "com.example.app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))

	paths := []string{appDir, "/System", "", "~/Library/Caches/../x", "/opt/nowhere"}
	for _, path := range paths {
		first := Validate(p, path)
		second := Validate(p, path)
		assert.Equal(t, first, second, path)
	}
}

func TestValidateAllKeepsOrder(t *testing.T) {
	p := testPolicy(t)
	appDir := filepath.Join(p.Home, "Library", "Caches", "AppX")
	require.NoError(t, os.MkdirAll(appDir, 0o755))

	paths := []string{appDir, "/System", "~/Library/Caches/../../etc/passwd"}
	results := ValidateAll(p, paths)
	require.Len(t, results, 3)
	assert.Equal(t, Safe, results[0].Verdict)
	assert.Equal(t, ProtectedPath, results[1].Verdict)
	assert.Equal(t, PathTraversal, results[2].Verdict)
}

func TestFilterSafePaths(t *testing.T) {
	p := testPolicy(t)
	for _, name := range []string{"AppX", "AppY"} {
		require.NoError(t, os.MkdirAll(filepath.Join(p.Home, "Library", "Caches", name), 0o755))
	}

	input := []string{
		"~/Library/Caches/AppX",
		"/System",
		"~/Library/Caches/../../etc/passwd",
		"~/Library/Caches/AppY",
	}
	filtered := FilterSafePaths(p, input)
	assert.Equal(t, []string{"~/Library/Caches/AppX", "~/Library/Caches/AppY"}, filtered)

	// The filter is exactly the per-element validation.
	var expected []string
	for _, path := range input {
		if Validate(p, path).Safe() {
			expected = append(expected, path)
		}
	}
	assert.Equal(t, expected, filtered)
}
