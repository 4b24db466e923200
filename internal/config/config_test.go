package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, []string{"name", "description"}, c.SearchFields())
	assert.Equal(t, 10.0, c.NameWeight())
	assert.Equal(t, 4.0, c.DescriptionWeight())
	assert.True(t, c.PrefixSearch())
	assert.True(t, c.SimilaritySearch())
	assert.Equal(t, 0.3, c.SimilarityThreshold())
	assert.Equal(t, 20, c.DefaultLimit())
	assert.Equal(t, 10, c.QuickLimit())
	assert.Equal(t, 10, c.LowStockThreshold())
	assert.Equal(t, "127.0.0.1:8080", c.HTTPAddr())
}

func TestAll_CoversValidKeys(t *testing.T) {
	var c Config
	all := c.All()
	assert.Len(t, all, len(ValidKeys()))
	for _, k := range ValidKeys() {
		_, ok := all[k]
		assert.True(t, ok, k)
	}
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"author.name", "Ada", "Ada"},
		{"search.fields", "description, name", "description,name"},
		{"search.weights.name", "2.5", "2.5"},
		{"search.prefix", "FALSE", "false"},
		{"search.similarity", "false", "false"},
		{"search.similarity_threshold", "0.45", "0.45"},
		{"search.default_limit", "50", "50"},
		{"search.quick_limit", "5", "5"},
		{"stock.low_threshold", "0", "0"},
		{"http.addr", ":9090", ":9090"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var c Config
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, c.IsSet(tt.key))
		})
	}
}

func TestSet_EmptyFields(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("search.fields", ""))
	assert.Empty(t, c.SearchFields())
	assert.True(t, c.IsSet("search.fields"))
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct{ key, value string }{
		{"search.fields", "name,price"},
		{"search.weights.description", "0"},
		{"search.prefix", "yes"},
		{"search.similarity_threshold", "1.5"},
		{"search.similarity_threshold", "0"},
		{"search.default_limit", "0"},
		{"search.quick_limit", "1001"},
		{"stock.low_threshold", "-1"},
	}
	for _, tt := range tests {
		var c Config
		assert.ErrorIs(t, c.Set(tt.key, tt.value), ErrInvalidValue, tt.key+"="+tt.value)
	}

	var c Config
	assert.ErrorIs(t, c.Set("no.such.key", "x"), ErrUnknownKey)
	_, err := c.Get("no.such.key")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := &Config{path: path}
	require.NoError(t, c.Set("search.default_limit", "25"))
	require.NoError(t, c.Set("search.similarity", "false"))
	require.NoError(t, c.Save())

	loaded, err := loadPath(path, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, 25, loaded.DefaultLimit())
	assert.False(t, loaded.SimilaritySearch())
	assert.True(t, loaded.PrefixSearch())
	assert.Equal(t, ScopeLocal, loaded.Scope())
}

func TestLoad_RoundTripEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := &Config{path: path}
	require.NoError(t, c.Set("search.fields", ""))
	require.NoError(t, c.Save())

	loaded, err := loadPath(path, ScopeLocal)
	require.NoError(t, err)
	assert.True(t, loaded.IsSet("search.fields"))
	assert.Empty(t, loaded.SearchFields())

	require.NoError(t, loaded.Set("search.fields", "description"))
	require.NoError(t, loaded.Save())
	loaded, err = loadPath(path, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, []string{"description"}, loaded.SearchFields())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := loadPath(filepath.Join(t.TempDir(), "absent.yaml"), ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, 20, c.DefaultLimit())
}

func TestLoad_RejectsOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  default_limit: 5000\n"), 0644))

	_, err := loadPath(path, ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [unclosed\n"), 0644))

	_, err := loadPath(path, ScopeLocal)
	assert.ErrorContains(t, err, "malformed config file")
}
