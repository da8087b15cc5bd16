// Package archive stores completed tasks that have been moved out of the
// tasks file in a SQLite database.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/go-ports/todo/internal/models"
)

// DB wraps the archive *sql.DB.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the archive database at path and initialises the
// schema.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("archive.Open: %w", err)
	}
	d := &DB{db: sqldb}
	if err := d.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("archive.Open createSchema: %w", err)
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS archived_tasks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL,
			source      TEXT NOT NULL,
			archived_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS archived_tasks_archived_at ON archived_tasks(archived_at)`,
	}
	for _, s := range stmts {
		if _, err := d.db.Exec(s); err != nil {
			return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, s)
		}
	}
	return nil
}

// Insert records tasks as archived from source in a single transaction and
// returns the number of rows written.
func (d *DB) Insert(tasks []models.Task, source string, at time.Time) (int, error) {
	if len(tasks) == 0 {
		return 0, nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("Insert: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO archived_tasks (description, source, archived_at) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("Insert: prepare: %w", err)
	}
	defer stmt.Close()

	ts := at.UTC().Format(time.RFC3339Nano)
	for _, t := range tasks {
		if _, err := stmt.Exec(t.Description, source, ts); err != nil {
			return 0, fmt.Errorf("Insert: exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Insert: commit: %w", err)
	}
	return len(tasks), nil
}

// ListRecent returns up to limit archived tasks, newest first.
// A limit of zero or less returns every row.
func (d *DB) ListRecent(limit int) ([]models.ArchivedTask, error) {
	q := `SELECT id, description, source, archived_at FROM archived_tasks ORDER BY archived_at DESC, id DESC`
	var params []any
	if limit > 0 {
		q += ` LIMIT ?`
		params = append(params, limit)
	}

	rows, err := d.db.Query(q, params...)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer rows.Close()

	out := make([]models.ArchivedTask, 0)
	for rows.Next() {
		var (
			at models.ArchivedTask
			ts string
		)
		if err := rows.Scan(&at.ID, &at.Description, &at.Source, &ts); err != nil {
			return nil, fmt.Errorf("ListRecent scan: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("ListRecent: parse archived_at %q: %w", ts, err)
		}
		at.ArchivedAt = parsed
		out = append(out, at)
	}
	return out, rows.Err()
}

// Count returns the number of archived tasks.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM archived_tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
