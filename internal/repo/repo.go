// Package repo provides catalog initialisation and discovery.
//
// A catalog lives in a .catalogd directory holding one or more SQLite
// databases. This package handles:
//   - Initialising new catalogs (creating .catalogd/ and the database)
//   - Discovering existing catalogs by walking up the directory tree
//   - Naming additional databases (catalog.db, catalog-staging.db, ...)
//   - Keeping local databases out of git via .catalogd/.gitignore
//
// Discovery mirrors git: starting from the current directory, walk up until
// a .catalogd directory containing the target database is found, or the
// filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/catalogd/internal/store"
)

const (
	// Dir is the directory name for a catalog.
	Dir = ".catalogd"
	// DBFile is the default database filename.
	DBFile = "catalog.db"
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "catalog.db".
// A name like "staging" returns "catalog-staging.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "catalog-" + name + ".db"
}

// ErrNotInitialised is returned when no catalog is found.
var ErrNotInitialised = errors.New("catalogd not initialised (run 'catalogd init')")

// Init creates a catalog database under dir/.catalogd. Config is not
// written; that belongs to "catalogd config".
//
// Parameters:
//   - force: remove and recreate an existing database
//   - db: database name (empty for default "catalog.db")
//   - local: add the database to .gitignore (not committed)
//   - dir: target directory (empty for current directory)
func Init(force bool, db string, local bool, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	catDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(catDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return "", fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(catDir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}

	// Only written on first init so later inits keep local database entries.
	gitignore := filepath.Join(catDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# catalogd - ignore local config and SQLite side files
# Database files (*.db) hold the catalog and may be committed
config.yaml
*.db-wal
*.db-shm
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return "", fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, catDir); err != nil {
			return "", fmt.Errorf("ignore database: %w", err)
		}
	}

	return dbPath, nil
}

// Discover walks up the directory tree looking for a catalog database.
// The db parameter specifies which database to find (empty for default).
// Returns the full path to the database if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Locate returns the path of database db. With dir set, the database must
// be at dir/.catalogd; otherwise it is discovered from the working directory.
func Locate(db, dir string) (string, error) {
	if dir == "" {
		return Discover(db)
	}
	dbPath := filepath.Join(dir, Dir, DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotInitialised
		}
		return "", err
	}
	return dbPath, nil
}

// DiscoverDir finds the .catalogd directory, walking up the tree.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		catDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(catDir); err == nil && info.IsDir() {
			return catDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}
