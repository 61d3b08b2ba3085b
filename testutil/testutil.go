// Package testutil holds shared helpers for watchlist tests.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ChdirTemp creates a temporary directory, changes into it for the duration
// of the test, and returns its path. Config discovery and default log/store
// paths resolve against the working directory, so tests that touch them
// should run inside one of these.
func ChdirTemp(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	oldWd, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")
	require.NoError(t, os.Chdir(tmpDir), "failed to enter temp directory")

	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})

	// Resolve symlinks (macOS tempdirs live under /var -> /private/var) so
	// path comparisons against os.Getwd() hold.
	resolved, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)
	return resolved
}

// WriteFile writes content to a path under dir, creating parents as needed.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// RandomString generates a random string of the specified length
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}
