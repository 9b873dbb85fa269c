// Package anthro persists and serves the baseline anthropometric dataset:
// one row of named measurements per surveyed subject. The synthesis layer
// treats the table as opaque, read-only reference data loaded once per
// process; a small read-through cache fronts repeated loads by path.
package anthro

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Row maps measurement column names to values for one subject.
type Row map[string]float64

// Table maps subject identifiers to their measurement rows.
type Table map[int]Row

// Source provides the baseline anthropometric table. The sqlite Store is the
// production implementation; tests substitute in-memory fixtures.
type Source interface {
	Load() (Table, error)
}

// Store is a sqlite-backed baseline dataset.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the sqlite database at path and ensures
// the subjects schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS subject_measurements (
			subject_id INTEGER NOT NULL,
			measure TEXT NOT NULL,
			value DOUBLE NOT NULL,
			PRIMARY KEY (subject_id, measure)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create subjects schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the filesystem path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the full dataset into memory. The result is shared, immutable
// reference data; callers must not modify it.
func (s *Store) Load() (Table, error) {
	rows, err := s.db.Query("SELECT subject_id, measure, value FROM subject_measurements ORDER BY subject_id")
	if err != nil {
		return nil, fmt.Errorf("failed to read subject measurements: %w", err)
	}
	defer rows.Close()

	table := make(Table)
	for rows.Next() {
		var subject int
		var measure string
		var value float64
		if err := rows.Scan(&subject, &measure, &value); err != nil {
			return nil, err
		}
		row, ok := table[subject]
		if !ok {
			row = make(Row)
			table[subject] = row
		}
		row[measure] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

// InsertSubject writes one subject's measurements, replacing any existing
// values for the same subject/measure pairs.
func (s *Store) InsertSubject(subject int, row Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for measure, value := range row {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO subject_measurements (subject_id, measure, value) VALUES (?, ?, ?)",
			subject, measure, value,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert measurement %q for subject %d: %w", measure, subject, err)
		}
	}
	return tx.Commit()
}

// SubjectCount returns the number of distinct subjects in the dataset.
func (s *Store) SubjectCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(DISTINCT subject_id) FROM subject_measurements").Scan(&n)
	return n, err
}
