package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("init")
	env.contains(out, "Initialised catalog in .catalogd/catalog.db")

	assert.FileExists(t, filepath.Join(env.dir, ".catalogd", "catalog.db"))
	assert.FileExists(t, filepath.Join(env.dir, ".catalogd", ".gitignore"))
	// init does not write config; that belongs to "catalogd config".
	assert.NoFileExists(t, filepath.Join(env.dir, ".catalogd", "config.yaml"))
}

func TestInit_AlreadyInitialised(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("init")
	assert.Error(t, err)
	env.contains(out, "already exists")
}

func TestInit_Force(t *testing.T) {
	env := seeded(t)

	env.run("init", "--force")

	res := runJSON[struct {
		TotalCount int `json:"total_count"`
	}](env, "search")
	assert.Zero(t, res.TotalCount, "reinitialised catalog should be empty")
}

func TestInit_DirAndLocalIncompatible(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("init", "--dir", t.TempDir(), "--local")
	assert.Error(t, err)
	env.contains(out, "cannot use --local with --dir")
}

func TestInit_Dir(t *testing.T) {
	env := newBareEnv(t)
	target := t.TempDir()

	env.run("init", "--dir", target)

	assert.FileExists(t, filepath.Join(target, ".catalogd", "catalog.db"))
	assert.NoFileExists(t, filepath.Join(env.dir, ".catalogd", "catalog.db"))

	// Commands reach the catalog through --dir without discovery.
	env.run("add", "Desk Lamp", "-p", "30", "--dir", target, "-a", "tester")
	out := env.run("show", "1", "--dir", target)
	env.contains(out, "Desk Lamp")
}

func TestInit_DB(t *testing.T) {
	t.Run("creates named database", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("init", "--db", "staging")
		env.contains(out, "catalog-staging.db")
		assert.FileExists(t, filepath.Join(env.dir, ".catalogd", "catalog-staging.db"))
	})

	t.Run("CATALOGD_DB env var", func(t *testing.T) {
		env := newBareEnv(t)

		c := execIn(env, "init")
		c.Env = env.environ("CATALOGD_DB=env-test")
		out, err := c.CombinedOutput()
		require.NoError(t, err, "init with CATALOGD_DB failed: %s", out)

		assert.FileExists(t, filepath.Join(env.dir, ".catalogd", "catalog-env-test.db"))
	})

	t.Run("flag overrides env var", func(t *testing.T) {
		env := newBareEnv(t)

		c := execIn(env, "init", "--db", "flag-value")
		c.Env = env.environ("CATALOGD_DB=env-value")
		out, err := c.CombinedOutput()
		require.NoError(t, err, "init failed: %s", out)

		assert.FileExists(t, filepath.Join(env.dir, ".catalogd", "catalog-flag-value.db"))
		assert.NoFileExists(t, filepath.Join(env.dir, ".catalogd", "catalog-env-value.db"))
	})

	t.Run("commands use correct database", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("init", "--db", "other")

		env.run("add", "Default Product", "-p", "1", "-a", "tester")
		env.run("add", "Other Product", "-p", "1", "--db", "other", "-a", "tester")

		out := env.run("search")
		env.contains(out, "Default Product")
		env.notContains(out, "Other Product")

		out = env.run("search", "--db", "other")
		env.contains(out, "Other Product")
		env.notContains(out, "Default Product")
	})

	t.Run("local flag adds to gitignore", func(t *testing.T) {
		env := newBareEnv(t)

		env.run("init", "--db", "scratch", "--local")

		gitignore, err := os.ReadFile(filepath.Join(env.dir, ".catalogd", ".gitignore"))
		require.NoError(t, err)
		assert.Contains(t, string(gitignore), "catalog-scratch.db")
	})
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("search", "laptop")
	assert.Error(t, err)
	env.contains(out, "catalogd init")
}
