package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS history (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	line TEXT NOT NULL
)`

// SQLiteBackend keeps history in a sqlite database.
type SQLiteBackend struct {
	db *sql.DB
}

var _ Backend = (*SQLiteBackend)(nil)

// OpenSQLiteBackend opens or creates the database at path.
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Load implements Backend.Load.
func (s *SQLiteBackend) Load() ([]string, error) {
	rows, err := s.db.Query(`SELECT line FROM history ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		entries = append(entries, line)
	}
	return entries, rows.Err()
}

// Save implements Backend.Save.
func (s *SQLiteBackend) Save(entries []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO history (line) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close implements Backend.Close.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
