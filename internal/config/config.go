// Package config provides reading and writing of catalogd configuration.
// Supports both global (~/.catalogd/config.yaml) and local (.catalogd/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Dir is the name of the catalogd directory, both in the home directory
// and in a project.
const Dir = ".catalogd"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.catalogd/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is catalog-specific config in .catalogd/config.yaml
	ScopeLocal
)

// Author represents the attribution recorded in audit log entries.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Weights holds full-text relevance weights per field.
type Weights struct {
	Name        *float64 `yaml:"name,omitempty"`
	Description *float64 `yaml:"description,omitempty"`
}

// Search holds text-matching and pagination settings.
type Search struct {
	Fields              *[]string `yaml:"fields,omitempty"`
	Weights             Weights   `yaml:"weights,omitempty"`
	Prefix              *bool     `yaml:"prefix,omitempty"`
	Similarity          *bool     `yaml:"similarity,omitempty"`
	SimilarityThreshold *float64  `yaml:"similarity_threshold,omitempty"`
	DefaultLimit        *int      `yaml:"default_limit,omitempty"`
	QuickLimit          *int      `yaml:"quick_limit,omitempty"`
}

// Stock holds inventory reporting settings.
type Stock struct {
	LowThreshold *int `yaml:"low_threshold,omitempty"`
}

// HTTP holds API server settings.
type HTTP struct {
	Addr string `yaml:"addr,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultNameWeight          = 10.0
	DefaultDescriptionWeight   = 4.0
	DefaultSimilarityThreshold = 0.3
	DefaultLimit               = 20
	DefaultQuickLimit          = 10
	DefaultLowStockThreshold   = 10
	DefaultHTTPAddr            = "127.0.0.1:8080"
)

// DefaultFields are searched when search.fields is not set.
var DefaultFields = []string{"name", "description"}

// knownFields are the columns search.fields may name.
var knownFields = []string{"name", "description"}

// Validation bounds for configuration values.
const (
	MinLimit  = 1
	MaxLimit  = 1000
	MaxWeight = 1000.0
)

// Config contains configuration for catalogd.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Search Search `yaml:"search,omitempty"`
	Stock  Stock  `yaml:"stock,omitempty"`
	HTTP   HTTP   `yaml:"http,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	for _, f := range c.SearchFields() {
		if !slices.Contains(knownFields, f) {
			return fmt.Errorf("%w: search.fields: unknown field %q (allowed: name, description)",
				ErrInvalidValue, f)
		}
	}
	for key, w := range map[string]*float64{
		"search.weights.name":        c.Search.Weights.Name,
		"search.weights.description": c.Search.Weights.Description,
	} {
		if w != nil && (*w <= 0 || *w > MaxWeight) {
			return fmt.Errorf("%w: %s must be greater than 0 and at most %g, got %g",
				ErrInvalidValue, key, MaxWeight, *w)
		}
	}
	if t := c.Search.SimilarityThreshold; t != nil && (*t <= 0 || *t > 1) {
		return fmt.Errorf("%w: search.similarity_threshold must be in (0, 1], got %g",
			ErrInvalidValue, *t)
	}
	for key, v := range map[string]*int{
		"search.default_limit": c.Search.DefaultLimit,
		"search.quick_limit":   c.Search.QuickLimit,
	} {
		if v != nil && (*v < MinLimit || *v > MaxLimit) {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidValue, key, MinLimit, MaxLimit, *v)
		}
	}
	if v := c.Stock.LowThreshold; v != nil && *v < 0 {
		return fmt.Errorf("%w: stock.low_threshold must not be negative, got %d", ErrInvalidValue, *v)
	}
	return nil
}

// SearchFields returns the ordered searchable fields (defaults to name,description).
func (c *Config) SearchFields() []string {
	if c.Search.Fields == nil {
		return slices.Clone(DefaultFields)
	}
	return slices.Clone(*c.Search.Fields)
}

// NameWeight returns the full-text weight of the name field (defaults to 10).
func (c *Config) NameWeight() float64 {
	if c.Search.Weights.Name == nil {
		return DefaultNameWeight
	}
	return *c.Search.Weights.Name
}

// DescriptionWeight returns the full-text weight of the description field (defaults to 4).
func (c *Config) DescriptionWeight() float64 {
	if c.Search.Weights.Description == nil {
		return DefaultDescriptionWeight
	}
	return *c.Search.Weights.Description
}

// PrefixSearch returns whether the prefix full-text stage runs (defaults to true).
func (c *Config) PrefixSearch() bool {
	return c.Search.Prefix == nil || *c.Search.Prefix
}

// SimilaritySearch returns whether the trigram stage runs (defaults to true).
func (c *Config) SimilaritySearch() bool {
	return c.Search.Similarity == nil || *c.Search.Similarity
}

// SimilarityThreshold returns the minimum trigram similarity (defaults to 0.3).
func (c *Config) SimilarityThreshold() float64 {
	if c.Search.SimilarityThreshold == nil {
		return DefaultSimilarityThreshold
	}
	return *c.Search.SimilarityThreshold
}

// DefaultLimit returns the page size when a search gives none (defaults to 20).
func (c *Config) DefaultLimit() int {
	if c.Search.DefaultLimit == nil {
		return DefaultLimit
	}
	return *c.Search.DefaultLimit
}

// QuickLimit returns the result cap of a quick search (defaults to 10).
func (c *Config) QuickLimit() int {
	if c.Search.QuickLimit == nil {
		return DefaultQuickLimit
	}
	return *c.Search.QuickLimit
}

// LowStockThreshold returns the default low-stock cut-off (defaults to 10).
func (c *Config) LowStockThreshold() int {
	if c.Stock.LowThreshold == nil {
		return DefaultLowStockThreshold
	}
	return *c.Stock.LowThreshold
}

// HTTPAddr returns the API listen address (defaults to 127.0.0.1:8080).
func (c *Config) HTTPAddr() string {
	if c.HTTP.Addr == "" {
		return DefaultHTTPAddr
	}
	return c.HTTP.Addr
}

// LocalPath returns the path to the local (catalog) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.catalogd/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	return loadPath(pathForScope(scope), scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
