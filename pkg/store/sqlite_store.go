package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xlttj/whitelist/pkg/logging"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteStore keeps whitelist entries in a single SQLite table
type SQLiteStore struct {
	db     *sql.DB
	mutex  sync.RWMutex
	dbPath string
	now    func() time.Time
}

// NewSQLiteStore opens (or creates) the database at dbPath and initializes the schema
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Create the file with restrictive permissions before the driver does
	if _, statErr := os.Stat(dbPath); os.IsNotExist(statErr) {
		f, ferr := os.OpenFile(dbPath, os.O_CREATE|os.O_RDONLY, 0600)
		if ferr == nil {
			_ = f.Close()
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps writes serialized and makes :memory: databases usable
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.LogDebug("SQLite whitelist store initialized at: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS whitelist (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hostname TEXT NOT NULL UNIQUE COLLATE NOCASE,
		enabled INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_whitelist_enabled ON whitelist(enabled);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Path returns the database file location
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		logging.LogDebug("Closing whitelist store: %s", s.dbPath)
		return s.db.Close()
	}
	return nil
}

// FetchAll returns every entry ordered by hostname
func (s *SQLiteStore) FetchAll() ([]Entry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rows, err := s.db.Query(`SELECT id, hostname, enabled, created_at FROM whitelist ORDER BY hostname, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query whitelist: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Hostname, &e.Enabled, &created); err != nil {
			return nil, fmt.Errorf("failed to scan whitelist row: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate whitelist rows: %w", err)
	}

	return entries, nil
}

// Insert adds an enabled entry and returns its row id
func (s *SQLiteStore) Insert(hostname string) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result, err := s.db.Exec(`INSERT INTO whitelist (hostname, enabled, created_at) VALUES (?, 1, ?)`, hostname, s.now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrHostnameExists, hostname)
		}
		return 0, fmt.Errorf("failed to insert whitelist entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get whitelist entry id: %w", err)
	}

	logging.LogDebug("Inserted whitelist entry %d: %s", id, hostname)
	return id, nil
}

// Delete removes the entry with the given id; unknown ids are ignored
func (s *SQLiteStore) Delete(id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result, err := s.db.Exec(`DELETE FROM whitelist WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete whitelist entry: %w", err)
	}

	s.logAffected(result, "Deleted whitelist entry %d", id)
	return nil
}

// UpdateStatus sets the enabled flag of an entry
func (s *SQLiteStore) UpdateStatus(id int64, enabled bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result, err := s.db.Exec(`UPDATE whitelist SET enabled = ? WHERE id = ?`, enabled, id)
	if err != nil {
		return fmt.Errorf("failed to update whitelist status: %w", err)
	}

	s.logAffected(result, "Set whitelist entry %d enabled=%t", id, enabled)
	return nil
}

// UpdateHostname changes the hostname of an entry, leaving its status untouched
func (s *SQLiteStore) UpdateHostname(id int64, hostname string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result, err := s.db.Exec(`UPDATE whitelist SET hostname = ? WHERE id = ?`, hostname, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrHostnameExists, hostname)
		}
		return fmt.Errorf("failed to update whitelist hostname: %w", err)
	}

	s.logAffected(result, "Renamed whitelist entry %d to %s", id, hostname)
	return nil
}

// logAffected logs format when the statement touched a row, otherwise notes the stale id.
// Must be called with mutex already held
func (s *SQLiteStore) logAffected(result sql.Result, format string, id int64, args ...interface{}) {
	n, err := result.RowsAffected()
	if err != nil {
		logging.LogError("Failed to get affected rows for entry %d: %v", id, err)
		return
	}
	if n == 0 {
		logging.LogDebug("No whitelist entry with id %d, nothing changed", id)
		return
	}
	logging.LogDebug(format, append([]interface{}{id}, args...)...)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
