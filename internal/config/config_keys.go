// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go focuses on YAML structure and loading, while this
// file serves the CLI and MCP, where config is addressed by string keys
// (e.g., "search.default_limit").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". Defaults apply only
// when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"search.fields",
		"search.weights.name", "search.weights.description",
		"search.prefix", "search.similarity", "search.similarity_threshold",
		"search.default_limit", "search.quick_limit",
		"stock.low_threshold",
		"http.addr",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	if !IsValidKey(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.All()[key], nil
}

// Set sets the value of a configuration key. The value is validated before
// the config is changed.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "search.fields":
		var fields []string
		for _, f := range strings.Split(value, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		for _, f := range fields {
			if !slices.Contains(knownFields, f) {
				return fmt.Errorf("%w: search.fields: unknown field %q (allowed: name, description)", ErrInvalidValue, f)
			}
		}
		if fields == nil {
			fields = []string{}
		}
		c.Search.Fields = &fields
	case "search.weights.name", "search.weights.description":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil || w <= 0 || w > MaxWeight {
			return fmt.Errorf("%w: %s must be a number greater than 0 and at most %g", ErrInvalidValue, key, MaxWeight)
		}
		if key == "search.weights.name" {
			c.Search.Weights.Name = &w
		} else {
			c.Search.Weights.Description = &w
		}
	case "search.prefix", "search.similarity":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		b := v == "true"
		if key == "search.prefix" {
			c.Search.Prefix = &b
		} else {
			c.Search.Similarity = &b
		}
	case "search.similarity_threshold":
		t, err := strconv.ParseFloat(value, 64)
		if err != nil || t <= 0 || t > 1 {
			return fmt.Errorf("%w: search.similarity_threshold must be a number in (0, 1]", ErrInvalidValue)
		}
		c.Search.SimilarityThreshold = &t
	case "search.default_limit", "search.quick_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinLimit || n > MaxLimit {
			return fmt.Errorf("%w: %s must be an integer between %d and %d", ErrInvalidValue, key, MinLimit, MaxLimit)
		}
		if key == "search.default_limit" {
			c.Search.DefaultLimit = &n
		} else {
			c.Search.QuickLimit = &n
		}
	case "stock.low_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: stock.low_threshold must be a non-negative integer", ErrInvalidValue)
		}
		c.Stock.LowThreshold = &n
	case "http.addr":
		c.HTTP.Addr = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map, defaults included.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":                 c.Author.Name,
		"author.email":                c.Author.Email,
		"search.fields":               strings.Join(c.SearchFields(), ","),
		"search.weights.name":         formatFloat(c.NameWeight()),
		"search.weights.description":  formatFloat(c.DescriptionWeight()),
		"search.prefix":               strconv.FormatBool(c.PrefixSearch()),
		"search.similarity":           strconv.FormatBool(c.SimilaritySearch()),
		"search.similarity_threshold": formatFloat(c.SimilarityThreshold()),
		"search.default_limit":        strconv.Itoa(c.DefaultLimit()),
		"search.quick_limit":          strconv.Itoa(c.QuickLimit()),
		"stock.low_threshold":         strconv.Itoa(c.LowStockThreshold()),
		"http.addr":                   c.HTTPAddr(),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "search.fields":
		return c.Search.Fields != nil
	case "search.weights.name":
		return c.Search.Weights.Name != nil
	case "search.weights.description":
		return c.Search.Weights.Description != nil
	case "search.prefix":
		return c.Search.Prefix != nil
	case "search.similarity":
		return c.Search.Similarity != nil
	case "search.similarity_threshold":
		return c.Search.SimilarityThreshold != nil
	case "search.default_limit":
		return c.Search.DefaultLimit != nil
	case "search.quick_limit":
		return c.Search.QuickLimit != nil
	case "stock.low_threshold":
		return c.Stock.LowThreshold != nil
	case "http.addr":
		return c.HTTP.Addr != ""
	default:
		return false
	}
}
