// Package testutil provides shared testing utilities and fixtures for use
// across the image-provider-kit test suite.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteModuleTree materializes a module tree under a fresh temp directory
// and returns its root. Keys are slash-separated relative paths; a trailing
// slash creates an empty directory instead of a file.
func WriteModuleTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()

	for rel, content := range files {
		target := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(target, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
		require.NoError(t, os.WriteFile(target, []byte(content), 0o644))
	}

	return root
}

// WriteOptionsFile writes a YAML module options file into a temp directory
// and returns its path.
func WriteOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
