// Package importer loads product lists from YAML and JSON files into the
// catalog.
//
// A file holds either a bare list of products or a mapping with a
// "products" key. Directories are scanned recursively for .yaml, .yml and
// .json files. Every product from every file is read and validated before
// anything is written, so a bad record never leaves a half-imported catalog.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/catalogd/internal/service"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/jpl-au/catalogd/internal/validate"
	"gopkg.in/yaml.v3"
)

// ErrUnsupported is returned for files that are neither YAML nor JSON.
var ErrUnsupported = errors.New("unsupported file type (want .yaml, .yml or .json)")

// extensions lists the file types Load understands.
var extensions = []string{".yaml", ".yml", ".json"}

// Options configures an import operation.
type Options struct {
	DryRun bool   // Validate and report without inserting
	Hidden bool   // Include hidden files/directories when scanning
	Author string // Author recorded for the import
}

// Result contains the outcome of an import operation.
type Result struct {
	Files    []string // Files that were read
	Products int      // Products found across all files
	Imported int      // Products inserted (0 on a dry run)
}

// file is the mapping form of a product file.
type file struct {
	Products []store.NewProduct `json:"products" yaml:"products"`
}

// Run imports every product found under src, which may be a file or a
// directory.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result

	files, err := collect(src, opts.Hidden)
	if err != nil {
		return result, err
	}

	var all []store.NewProduct
	for _, f := range files {
		ps, err := Load(f)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, f)
		all = append(all, ps...)
	}
	result.Products = len(all)

	if err := check(all); err != nil {
		return result, err
	}

	if opts.DryRun {
		for _, f := range result.Files {
			fmt.Fprintf(w, "Would import: %s\n", f)
		}
		fmt.Fprintf(w, "%d products valid, nothing written (dry run)\n", result.Products)
		return result, nil
	}
	if len(all) == 0 {
		return result, nil
	}

	n, err := svc.Import(ctx, all, opts.Author)
	result.Imported = n
	if err != nil {
		return result, err
	}
	fmt.Fprintf(w, "Imported %d products from %d file(s)\n", n, len(result.Files))
	return result, nil
}

// check validates every product so a dry run reports the same failures a
// real import would.
func check(ps []store.NewProduct) error {
	for i, np := range ps {
		if _, err := validate.Product(np.Name, np.Price, np.Stock); err != nil {
			return fmt.Errorf("product %d (%q): %w", i+1, np.Name, err)
		}
	}
	return nil
}

// Load reads a single product file, choosing the decoder by extension.
func Load(path string) ([]store.NewProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var ps []store.NewProduct
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		ps, err = decodeYAML(data)
	case ".json":
		ps, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ps, nil
}

func decodeYAML(data []byte) ([]store.NewProduct, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var ps []store.NewProduct
		err := node.Decode(&ps)
		return ps, err
	}
	var f file
	err := node.Decode(&f)
	return f.Products, err
}

func decodeJSON(data []byte) ([]store.NewProduct, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var ps []store.NewProduct
		err := json.Unmarshal(data, &ps)
		return ps, err
	}
	var f file
	err := json.Unmarshal(data, &f)
	return f.Products, err
}

// collect returns src itself when it is a file, or every product file
// beneath it in lexical order when it is a directory.
func collect(src string, hidden bool) ([]string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{src}, nil
	}

	// os.Root keeps the scan inside src even through symlinks.
	root, err := os.OpenRoot(src)
	if err != nil {
		return nil, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	rel, err := scanRoot(root, "", hidden)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", src, err)
	}
	files := make([]string, len(rel))
	for i, r := range rel {
		files[i] = filepath.Join(src, r)
	}
	slices.Sort(files)
	return files, nil
}

// scanRoot recursively finds product files within an os.Root.
// Returns relative paths from the root.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	var files []string

	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		if entry.IsDir() {
			sub, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		} else if slices.Contains(extensions, strings.ToLower(filepath.Ext(name))) {
			files = append(files, rel)
		}
	}

	return files, nil
}
