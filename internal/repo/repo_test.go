package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "catalog.db", DBFileName(""))
	assert.Equal(t, "catalog-staging.db", DBFileName("staging"))
	assert.Equal(t, "custom.db", DBFileName("custom.db"))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	path, err := Init(false, "", false, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir, DBFile), path)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, Dir, ".gitignore"))

	_, err = Init(false, "", false, dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = Init(true, "", false, dir)
	assert.NoError(t, err)
}

func TestInit_Local(t *testing.T) {
	dir := t.TempDir()

	_, err := Init(false, "scratch", true, dir)
	require.NoError(t, err)

	ignored, err := IsIgnored("scratch", filepath.Join(dir, Dir))
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = IsIgnored("", filepath.Join(dir, Dir))
	require.NoError(t, err)
	assert.False(t, ignored)

	// Idempotent: a second ignore adds nothing.
	gi := filepath.Join(dir, Dir, ".gitignore")
	before, err := os.ReadFile(gi)
	require.NoError(t, err)
	require.NoError(t, IgnoreDB("scratch", filepath.Join(dir, Dir)))
	after, err := os.ReadFile(gi)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(false, "", false, dir)
	require.NoError(t, err)

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	got, err := Discover("")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, Dir, DBFile))
	require.NoError(t, err)
	gotReal, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotReal)

	_, err = Discover("missing")
	assert.ErrorIs(t, err, ErrNotInitialised)
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	want, err := Init(false, "staging", false, dir)
	require.NoError(t, err)

	got, err := Locate("staging", dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Locate("", dir)
	assert.ErrorIs(t, err, ErrNotInitialised)
	_, err = Locate("staging", t.TempDir())
	assert.ErrorIs(t, err, ErrNotInitialised)
}
