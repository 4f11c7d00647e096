package normalize

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestNewName(t *testing.T) {
	assert.Equal(t, "Monday.wav", NewName("01-Monday.wav"))
	assert.Equal(t, "Tuesday.wav", NewName("Tuesday.wav"))
	assert.Equal(t, "New", NewName("01-New-Year.wav"))
	assert.Equal(t, ".wav", NewName("07-.wav"))
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "days", "01-Monday.wav"), "mon")
	touch(t, filepath.Join(root, "days", "Tuesday.wav"), "tue")
	touch(t, filepath.Join(root, "days", "03-notes.txt"), "")
	touch(t, filepath.Join(root, "months", "02-February.wav"), "feb")
	touch(t, filepath.Join(root, "04-top-level.wav"), "")

	renames, err := Run(root, Options{})
	require.NoError(t, err)
	assert.Len(t, renames, 2)

	assert.Equal(t, []string{"03-notes.txt", "Monday.wav", "Tuesday.wav"}, listDir(t, filepath.Join(root, "days")))
	assert.Equal(t, []string{"February.wav"}, listDir(t, filepath.Join(root, "months")))
	// files directly under root are not touched
	assert.FileExists(t, filepath.Join(root, "04-top-level.wav"))

	data, err := os.ReadFile(filepath.Join(root, "days", "Monday.wav"))
	require.NoError(t, err)
	assert.Equal(t, "mon", string(data))
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "hours", "05-five.wav"), "")

	renames, err := Run(root, Options{DryRun: true})
	require.NoError(t, err)
	require.Len(t, renames, 1)
	assert.Equal(t, "five.wav", renames[0].To)
	assert.Equal(t, []string{"05-five.wav"}, listDir(t, filepath.Join(root, "hours")))
}

func TestRunCollisionOverwrites(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "minutes", "five.wav"), "old")
	touch(t, filepath.Join(root, "minutes", "05-five.wav"), "new")

	renames, err := Run(root, Options{})
	require.NoError(t, err)
	require.Len(t, renames, 1)
	assert.True(t, renames[0].Collision)

	assert.Equal(t, []string{"five.wav"}, listDir(t, filepath.Join(root, "minutes")))
	data, err := os.ReadFile(filepath.Join(root, "minutes", "five.wav"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestRunMissingRoot(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "missing"), Options{})
	assert.Error(t, err)
}

func TestRunFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	touch(t, filepath.Join(elsewhere, "days", "01-Monday.wav"), "mon")
	touch(t, filepath.Join(elsewhere, "02-February.wav"), "feb")
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "days"), filepath.Join(root, "days")))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "months"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "02-February.wav"), filepath.Join(root, "months", "02-February.wav")))

	renames, err := Run(root, Options{})
	require.NoError(t, err)
	assert.Len(t, renames, 2)
	assert.Equal(t, []string{"Monday.wav"}, listDir(t, filepath.Join(elsewhere, "days")))
	assert.Equal(t, []string{"February.wav"}, listDir(t, filepath.Join(root, "months")))
}
