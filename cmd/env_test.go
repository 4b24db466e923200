// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> catalog service -> search engine -> SQLite.
//
// Each test builds on a fresh catalog in a temporary directory, with HOME
// pointed there too so a developer's global config never leaks in. The
// internal packages carry their own unit tests; these tests prove the
// wiring between them.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the catalogd binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "catalogd-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "catalogd"
		if os.PathSeparator == '\\' {
			binaryName = "catalogd.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory holding .catalogd
	home   string // HOME, holding the global config
	binary string
}

// newTestEnv creates a temporary directory with an initialised catalog.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

// newBareEnv creates a temporary directory without a catalog.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// environ isolates the binary from the developer's config and catalog
// selection variables.
func (e *testEnv) environ(extra ...string) []string {
	env := append(os.Environ(), "HOME="+e.home, "CATALOGD_DB=", "CATALOGD_DIR=")
	return append(env, extra...)
}

// execIn prepares catalogd to run in the environment's directory.
func execIn(e *testEnv, args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	return cmd
}

// run executes catalogd with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("catalogd %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes catalogd and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	out, err := execIn(e, args...).CombinedOutput()
	return string(out), err
}

// runStdin executes catalogd with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()

	cmd := execIn(e, args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("catalogd %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runJSON executes catalogd with -o json and decodes stdout into T.
func runJSON[T any](e *testEnv, args ...string) T {
	e.t.Helper()

	out, err := execIn(e, append(args, "-o", "json")...).Output()
	require.NoError(e.t, err, "catalogd %v", args)

	var v T
	require.NoError(e.t, json.Unmarshal(out, &v), string(out))
	return v
}

// write creates a file relative to the test directory.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// readFile returns a file relative to the test directory.
func readFile(t *testing.T, e *testEnv, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	require.NoError(t, err)
	return string(data)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain s.
func (e *testEnv) notContains(output, s string) {
	e.t.Helper()
	assert.NotContains(e.t, output, s)
}

// testCatalog is a small catalog covering every search strategy and sort key.
const testCatalog = `products:
  - name: Gaming Laptop
    description: RGB keyboard and a fast GPU
    price: "1299.99"
    stock: 4
  - name: Office Laptop
    description: Light and quiet
    price: "649.00"
    stock: 0
  - name: Wireless Mouse
    description: Ergonomic, USB receiver
    price: "24.50"
    stock: 40
  - name: Mechanical Keyboard
    description: Brown switches
    price: "89.95"
    stock: 12
  - name: Travel Mug
    description: Keeps coffee hot
    price: "12.50"
    stock: 7
`

// seeded returns an initialised environment holding testCatalog.
func seeded(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.write("products.yaml", testCatalog)
	env.run("import", "products.yaml", "-a", "tester")
	return env
}
