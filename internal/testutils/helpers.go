// Package testutils holds fixtures shared by package and command tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SampleSVG is a small icon with an XML declaration, fixed dimensions, and
// two paths, one of which already has a fill.
const SampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">
  <path d="M0 0h24v24H0z"/>
  <path fill="red" d="M12 2L2 22h20z"/>
</svg>`

// CreateSVGDir creates a temporary directory holding names, each with
// SampleSVG as content, and returns its path.
func CreateSVGDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		WriteFile(t, filepath.Join(dir, name), SampleSVG)
	}
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// MemFs returns an in-memory filesystem with SampleSVG written as each of
// names under dir.
func MemFs(t *testing.T, dir string, names ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, name := range names {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte(SampleSVG), 0o644))
	}
	return fs
}

// ListDir returns the names in dir, sorted.
func ListDir(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	infos, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}
