// maintain.go implements index and WAL maintenance.
//
// Separated because these are operator actions with different usage patterns
// than normal reads and writes: checkpointing on shutdown, and dropping or
// rebuilding the full-text index from the reindex command.
//
// Design: Checkpoint uses TRUNCATE mode, which fully flushes the WAL and
// removes the -wal/-shm files. Clean shutdown is preferred over crash
// recovery speed for a single-binary tool.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL. This removes the -wal and -shm files from the filesystem.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// Reindex creates the full-text table and triggers if they are missing and
// rebuilds the index from the current contents of the products table.
func (s *SQLiteStore) Reindex(ctx context.Context) error {
	if err := execIndexSchema(s.db); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO `+ftsTable+`(`+ftsTable+`) VALUES ('rebuild')`); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	return nil
}

// DropIndex removes the full-text table and the triggers that maintain it.
// Dropping an index that does not exist is not an error.
func (s *SQLiteStore) DropIndex(ctx context.Context) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DROP TRIGGER IF EXISTS products_fts_ai`,
			`DROP TRIGGER IF EXISTS products_fts_ad`,
			`DROP TRIGGER IF EXISTS products_fts_au`,
			`DROP TABLE IF EXISTS ` + ftsTable,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("drop index: %w", err)
			}
		}
		return nil
	})
}
