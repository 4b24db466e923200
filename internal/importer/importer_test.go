package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/catalogd/internal/catalog"
	"github.com/jpl-au/catalogd/internal/importer"
	"github.com/jpl-au/catalogd/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlList = `- name: Gaming Laptop
  description: RGB keyboard
  price: 1299.99
  stock: 5
- name: Desk Chair
  price: "149"
  stock: 0
`

const jsonMapping = `{"products": [
  {"name": "USB Hub", "description": "4 ports", "price": 19.5, "stock": 40}
]}`

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func openCatalog(t *testing.T) *catalog.Service {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	svc, err := catalog.Open(filepath.Join(dir, "catalog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestLoad_YAMLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	write(t, path, yamlList)

	ps, err := importer.Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Gaming Laptop", ps[0].Name)
	assert.Equal(t, "1299.99", ps[0].Price.StringFixed(2))
	assert.Equal(t, 5, ps[0].Stock)
	assert.Equal(t, "149.00", ps[1].Price.StringFixed(2))
}

func TestLoad_YAMLMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yml")
	write(t, path, "products:\n  - name: Webcam\n    price: 79\n    stock: 4\n")

	ps, err := importer.Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Webcam", ps[0].Name)
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	mapping := filepath.Join(dir, "a.json")
	list := filepath.Join(dir, "b.json")
	write(t, mapping, jsonMapping)
	write(t, list, `[{"name": "Monitor Arm", "price": "59.00", "stock": 12}]`)

	ps, err := importer.Load(mapping)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "19.50", ps[0].Price.StringFixed(2))

	ps, err = importer.Load(list)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Monitor Arm", ps[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "products.txt")
	write(t, txt, "nope")
	_, err := importer.Load(txt)
	assert.ErrorIs(t, err, importer.ErrUnsupported)

	bad := filepath.Join(dir, "bad.json")
	write(t, bad, `{"products": [`)
	_, err = importer.Load(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	write(t, empty, "")
	ps, err := importer.Load(empty)
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestRun_Directory(t *testing.T) {
	svc := openCatalog(t)
	src := t.TempDir()
	write(t, filepath.Join(src, "a.yaml"), yamlList)
	write(t, filepath.Join(src, "nested", "b.json"), jsonMapping)
	write(t, filepath.Join(src, ".hidden", "c.json"), jsonMapping)
	write(t, filepath.Join(src, "README.md"), "# not products")

	var out bytes.Buffer
	res, err := importer.Run(context.Background(), &out, svc, src, importer.Options{Author: "tester"})
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)
	assert.Equal(t, 3, res.Products)
	assert.Equal(t, 3, res.Imported)
	assert.Contains(t, out.String(), "Imported 3 products from 2 file(s)")

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.Products)
}

func TestRun_DryRun(t *testing.T) {
	svc := openCatalog(t)
	src := filepath.Join(t.TempDir(), "products.yaml")
	write(t, src, yamlList)

	var out bytes.Buffer
	res, err := importer.Run(context.Background(), &out, svc, src, importer.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Products)
	assert.Zero(t, res.Imported)
	assert.Contains(t, out.String(), "Would import: "+src)

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Products)
}

func TestRun_InvalidProductWritesNothing(t *testing.T) {
	svc := openCatalog(t)
	src := filepath.Join(t.TempDir(), "products.yaml")
	write(t, src, yamlList+"- name: X\n  price: -1\n  stock: 1\n")

	for _, dry := range []bool{true, false} {
		_, err := importer.Run(context.Background(), &bytes.Buffer{}, svc, src, importer.Options{DryRun: dry})
		assert.ErrorIs(t, err, validate.ErrInvalidProduct)
	}

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Products)
}
