package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	def, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, def, "catalogd Guide")

	s, err := Get("search")
	require.NoError(t, err)
	assert.Contains(t, s, "similarity")

	_, err = Get("nonexistent")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.NotContains(t, names, "guide")
	for _, want := range []string{"search", "config", "http", "serve", "llm"} {
		assert.Contains(t, names, want)
	}
}
