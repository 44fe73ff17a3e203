package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tasktracker/internal/todo"
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS todos (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'normal',
	completed_at TEXT DEFAULT NULL,
	due_date TEXT DEFAULT NULL,
	recurrence TEXT NOT NULL DEFAULT 'never'
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureColumns()
}

// ensureColumns adds columns introduced after the first schema version.
func (s *SQLiteStore) ensureColumns() error {
	required := map[string]string{
		"trashed_at": "ALTER TABLE todos ADD COLUMN trashed_at TEXT DEFAULT NULL;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(todos);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Load() ([]todo.Task, error) {
	rows, err := s.db.Query(`SELECT id, title, note, priority, completed_at, due_date, recurrence, trashed_at FROM todos ORDER BY rowid;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []todo.Task
	for rows.Next() {
		var t todo.Task
		var idStr, priority, recurrence string
		var completedStr, dueStr, trashedStr sql.NullString

		if err := rows.Scan(&idStr, &t.Title, &t.Note, &priority, &completedStr, &dueStr, &recurrence, &trashedStr); err != nil {
			return nil, err
		}
		if t.ID, err = uuid.Parse(idStr); err != nil {
			return nil, err
		}
		if t.Priority, err = todo.ParsePriority(priority); err != nil {
			return nil, err
		}
		if t.Recurrence, err = todo.ParseRecurrence(recurrence); err != nil {
			return nil, err
		}
		if t.CompletedAt, err = parseTime("completed_at", completedStr); err != nil {
			return nil, err
		}
		if t.DueDate, err = parseTime("due_date", dueStr); err != nil {
			return nil, err
		}
		if t.TrashedAt, err = parseTime("trashed_at", trashedStr); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save replaces the stored collection with tasks in one transaction.
func (s *SQLiteStore) Save(tasks []todo.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM todos;`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO todos (id, title, note, priority, completed_at, due_date, recurrence, trashed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, t := range tasks {
		_, err := stmt.Exec(t.ID.String(), t.Title, t.Note, t.Priority.String(),
			formatTime(t.CompletedAt), formatTime(t.DueDate), t.Recurrence.String(), formatTime(t.TrashedAt))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func parseTime(column string, s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", column, err)
	}
	return &parsed, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
