package whitelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyWhitelist(t *testing.T) {
	wl, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/Users/casey")
	require.NoError(t, err)
	assert.Empty(t, wl.Patterns)
	assert.False(t, wl.IsWhitelisted("/Users/casey/Library/Caches/anything"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitelist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patterns: {not a list"), 0o644))

	_, err := Load(path, "/Users/casey")
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse whitelist")
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "mmc", "whitelist.yaml")

	wl := &Whitelist{home: "/Users/casey"}
	wl.Add("~/Library/Caches/com.keepme.app")
	wl.Add("/opt/homebrew/var/cache/special")
	wl.Add("~/Library/Caches/com.keepme.app") // duplicate, ignored
	require.NoError(t, wl.Save(path))

	loaded, err := Load(path, "/Users/casey")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"~/Library/Caches/com.keepme.app",
		"/opt/homebrew/var/cache/special",
	}, loaded.Patterns)
}

func TestIsWhitelisted(t *testing.T) {
	wl := &Whitelist{
		Patterns: []string{
			"~/Library/Caches/com.keepme.app",
			"~/Library/Logs/special-*.log",
			"/private/var/log/**",
		},
		home: "/Users/casey",
	}

	t.Run("literal pattern matches itself", func(t *testing.T) {
		assert.True(t, wl.IsWhitelisted("/Users/casey/Library/Caches/com.keepme.app"))
	})

	t.Run("literal pattern protects its subtree", func(t *testing.T) {
		assert.True(t, wl.IsWhitelisted("/Users/casey/Library/Caches/com.keepme.app/Data/blob"))
	})

	t.Run("glob pattern matches siblings", func(t *testing.T) {
		assert.True(t, wl.IsWhitelisted("/Users/casey/Library/Logs/special-2026.log"))
		assert.False(t, wl.IsWhitelisted("/Users/casey/Library/Logs/other.log"))
	})

	t.Run("doublestar pattern matches any depth", func(t *testing.T) {
		assert.True(t, wl.IsWhitelisted("/private/var/log/asl/2026.08.30.asl"))
	})

	t.Run("unrelated path is not whitelisted", func(t *testing.T) {
		assert.False(t, wl.IsWhitelisted("/Users/casey/Library/Caches/com.other.app"))
	})

	t.Run("nil whitelist matches nothing", func(t *testing.T) {
		var nilWL *Whitelist
		assert.False(t, nilWL.IsWhitelisted("/Users/casey/Library/Caches/com.keepme.app"))
	})
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/Users/casey", ".config", "mmc", "whitelist.yaml"),
		DefaultPath("/Users/casey"))
}
