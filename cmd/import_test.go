package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImport(t *testing.T) {
	t.Run("yaml file", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("products.yaml", testCatalog)

		out := env.run("import", "products.yaml", "-a", "tester")
		env.contains(out, "Imported 5 products from 1 file(s)")

		p := runJSON[productOut](env, "show", "1")
		assert.Equal(t, "Gaming Laptop", p.Name)
		assert.Equal(t, "1299.99", p.Price)
	})

	t.Run("directory of yaml and json", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("data/desk.yaml", "- name: Desk Chair\n  price: 149\n  stock: 3\n")
		env.write("data/usb/hub.json", `{"products": [{"name": "USB Hub", "price": 19.5, "stock": 40}]}`)
		env.write("data/notes.txt", "not a product file")
		env.write("data/.hidden/secret.yaml", "- name: Hidden Item\n  price: 1\n")

		res := runJSON[struct {
			Files    []string `json:"files"`
			Products int      `json:"products"`
			Imported int      `json:"imported"`
		}](env, "import", "data", "-a", "tester")
		assert.Len(t, res.Files, 2)
		assert.Equal(t, 2, res.Imported)

		out := env.run("search", "-l")
		env.contains(out, "Desk Chair")
		env.contains(out, "USB Hub")
		env.notContains(out, "Hidden Item")
	})

	t.Run("include hidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("data/.hidden/secret.yaml", "- name: Hidden Item\n  price: 1\n")

		env.run("import", "data", "-H", "-a", "tester")
		env.contains(env.run("search", "-l"), "Hidden Item")
	})
}

func TestImport_DryRun(t *testing.T) {
	// A dry run validates without opening the catalog, so it works
	// before init.
	env := newBareEnv(t)
	env.write("products.yaml", testCatalog)

	out := env.run("import", "products.yaml", "--dry-run", "-a", "tester")
	env.contains(out, "Would import:")
	env.contains(out, "5 products valid, nothing written (dry run)")
}

func TestImport_InvalidLeavesCatalogUnchanged(t *testing.T) {
	env := newTestEnv(t)
	env.write("products.yaml", `- name: Good Product
  price: "10"
- name: Bad Product
  price: "-4"
`)

	out, err := env.runErr("import", "products.yaml", "-a", "tester")
	assert.Error(t, err)
	env.contains(out, `product 2 ("Bad Product")`)

	res := runJSON[searchOut](env, "search")
	assert.Zero(t, res.TotalCount)
}

func TestImport_Unparseable(t *testing.T) {
	env := newTestEnv(t)
	env.write("broken.json", `{"products": [`)

	out, err := env.runErr("import", "broken.json", "-a", "tester")
	assert.Error(t, err)
	env.contains(out, "parsing")
}

func TestSeed(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("seed", "-n", "120", "--seed", "7", "-a", "tester")
	env.contains(out, "Created 120 products (120 in catalog)")
	env.contains(out, "Stock distribution:")

	res := runJSON[searchOut](env, "search", "--limit", "5")
	assert.Equal(t, 120, res.TotalCount)
	assert.Len(t, res.Products, 5)

	out, err := env.runErr("seed", "-n", "0", "-a", "tester")
	assert.Error(t, err)
	env.contains(out, "count")
}

func TestExport(t *testing.T) {
	env := seeded(t)

	out := env.run("export", "backup/laptops.yaml", "laptop", "--in-stock")
	env.contains(out, "Exported 1 products to backup/laptops.yaml")

	out, err := env.runErr("export", "backup/laptops.yaml")
	assert.Error(t, err)
	env.contains(out, "file exists")

	env.run("export", "backup/all.json", "--force")

	other := newTestEnv(t)
	other.write("all.json", readFile(t, env, "backup/all.json"))
	other.run("import", "all.json", "-a", "tester")
	res := runJSON[searchOut](other, "search")
	assert.Equal(t, 5, res.TotalCount)
}
