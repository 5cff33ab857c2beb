// Package store opens the client database and performs catalog reads
// and transactional deletes against the rulesets table.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the rulesets schema version this build was compiled
// against, stored in the database as PRAGMA user_version.
const SchemaVersion = 12

// ipcDirName is the fixed temp-directory location the client uses for
// store-level inter-process signaling. It must exist before the store
// is opened.
const ipcDirName = "tachyon-ipc"

// Store wraps an open client database.
type Store struct {
	db *sql.DB

	// Path is the resolved store file.
	Path string
	// Version is the schema version the store was opened at. It equals
	// SchemaVersion unless the open recovered from a version mismatch.
	Version int
}

// VersionMismatchError reports that the store was last written with a
// schema version other than the one requested.
type VersionMismatchError struct {
	Requested int
	Reported  int
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("store schema version is %d, expected %d",
		e.Reported, e.Requested)
}

// Open opens the store at path against the compiled schema version.
// If the store reports a different version, the open is retried exactly
// once at the reported version. Any other failure, or a failure of the
// retry, is returned as-is.
func Open(path string) (*Store, error) {
	if err := ensureIPCDir(); err != nil {
		return nil, err
	}

	s, err := openAt(path, SchemaVersion)
	if err == nil {
		return s, nil
	}
	var mismatch *VersionMismatchError
	if !errors.As(err, &mismatch) {
		return nil, err
	}
	return openAt(path, mismatch.Reported)
}

// Close releases the store handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureIPCDir creates the inter-process coordination directory if it
// is missing.
func ensureIPCDir() error {
	dir := filepath.Join(os.TempDir(), ipcDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating coordination directory: %w", err)
	}
	return nil
}

// openAt opens the store pinned to a single schema version.
func openAt(path string, version int) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	reported, err := userVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if reported != version {
		db.Close()
		return nil, &VersionMismatchError{Requested: version, Reported: reported}
	}

	if err := checkRulesetsTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, Path: path, Version: version}, nil
}

// userVersion reads the schema-version marker from the store.
func userVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// checkRulesetsTable verifies the single entity table this tool reads.
func checkRulesetsTable(db *sql.DB) error {
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'rulesets'`,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("store has no rulesets table")
	}
	if err != nil {
		return fmt.Errorf("inspecting store: %w", err)
	}
	return nil
}
