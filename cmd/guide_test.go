package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("guide")
		env.contains(out, "catalogd Guide")
		env.contains(out, "Quick Start")
		env.contains(out, "Commands")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newBareEnv(t)

		out, err := env.runErr("guide", "nonexistent")
		assert.Error(t, err)
		env.contains(out, "Available:")
		env.contains(out, "search")
	})
}

func TestGuide_Topics(t *testing.T) {
	tests := []struct {
		topic   string
		contain string
	}{
		{"search", "similarity"},
		{"config", "search.similarity_threshold"},
		{"import", "catalogd import"},
		{"http", "/products/low_stock"},
		{"serve", "catalog_search"},
	}

	env := newBareEnv(t)
	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			out := env.run("guide", tc.topic)
			env.contains(out, tc.contain)
		})
	}
}

func TestLLM(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("llm")
	env.contains(out, "catalogd for LLMs")
}

// The guide's command table should stay in step with the commands that
// actually exist.
func TestGuide_ListsEveryCommand(t *testing.T) {
	env := newBareEnv(t)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(mustGetwd()), "guide", "guide.md"))
	require.NoError(t, err)
	guide := string(data)

	help := env.run("--help")
	for _, name := range []string{"init", "add", "show", "update", "rm", "search", "find", "low-stock", "import", "export", "seed", "stats", "reindex", "config", "serve", "http", "version"} {
		assert.Contains(t, help, name)
		assert.True(t, strings.Contains(guide, "\n    "+name+" "), "guide.md does not list %s", name)
	}
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("version")
	assert.NotEmpty(t, strings.TrimSpace(out))
}
