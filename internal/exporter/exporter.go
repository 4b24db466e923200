// Package exporter writes catalog products to a YAML or JSON file.
//
// The output uses the mapping form the importer reads ({"products": [...]}),
// creation times included, so an export can be imported into another
// catalog and keeps its "newest" ordering. Which products are written is
// decided by an ordinary search request: a query, filters and a sort key.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/service"
	"github.com/jpl-au/catalogd/internal/store"
	"gopkg.in/yaml.v3"
)

// ErrUnsupported is returned for destinations that are neither YAML nor JSON.
var ErrUnsupported = errors.New("unsupported file type (want .yaml, .yml or .json)")

// Options configures an export operation.
type Options struct {
	Request search.Request // selects and orders the products; Limit and Offset are ignored
	Force   bool           // Overwrite an existing file
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int    // Number of products written
	Path     string // File that was written
}

// product is the exported form of a product. Prices are fixed to two
// places so the file reads the way the catalog displays them.
type product struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Price       string `json:"price" yaml:"price"`
	Stock       int    `json:"stock" yaml:"stock"`
	CreatedAt   int64  `json:"created_at" yaml:"created_at"`
}

type file struct {
	Products []product `json:"products" yaml:"products"`
}

// Run writes every product matching opts.Request to dst.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	ext := strings.ToLower(filepath.Ext(dst))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return result, fmt.Errorf("%s: %w", dst, ErrUnsupported)
	}

	req := opts.Request
	all, none := math.MaxInt, 0
	req.Limit, req.Offset = &all, &none
	res, err := svc.Search(ctx, req)
	if err != nil {
		return result, err
	}

	f := file{Products: make([]product, 0, len(res.Products))}
	for _, p := range res.Products {
		f.Products = append(f.Products, product{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			Stock:       p.Stock,
			CreatedAt:   p.CreatedAt,
		})
	}

	data, err := encode(f, ext)
	if err != nil {
		return result, err
	}

	dir, name := filepath.Split(dst)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, fmt.Errorf("creating directory: %w", err)
	}

	// Open directory as root for safe file operations
	root, err := os.OpenRoot(dir)
	if err != nil {
		return result, fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if err := writeFileInRoot(root, name, data, opts.Force); err != nil {
		return result, err
	}

	result.Exported = len(f.Products)
	result.Path = dst
	fmt.Fprintf(w, "Exported %d products to %s\n", result.Exported, dst)
	return result, nil
}

func encode(f file, ext string) ([]byte, error) {
	if ext == ".json" {
		data, err := store.MarshalJSON(f)
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return data, nil
}

// writeFileInRoot writes content to a file within an os.Root, safely preventing
// path traversal attacks.
func writeFileInRoot(root *os.Root, name string, content []byte, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	f, err := root.OpenFile(name, flags, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.Write(content)
	return err
}
