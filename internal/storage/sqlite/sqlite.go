package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"clikit/internal/storage"
)

// Store реализует storage.Store поверх SQLite.
type Store struct {
	db *sql.DB
}

// Open инициализирует соединение и выполняет миграции.
// Каталог файла создается при необходимости.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_journal=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			run_id TEXT NOT NULL,
			operation TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_run ON journal_entries(run_id, id);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_ts ON journal_entries(ts);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Record сохраняет запись журнала.
func (s *Store) Record(ctx context.Context, e storage.JournalEntry) error {
	ts := e.TS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO journal_entries(run_id, operation, status, error, ts) VALUES(?,?,?,?,?)`,
		e.RunID, e.Operation, e.Status, e.Error, ts)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Entries возвращает записи по фильтрам в порядке записи.
func (s *Store) Entries(ctx context.Context, q storage.JournalQuery) ([]storage.JournalEntry, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	from := q.From
	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}
	to := q.To
	if to.IsZero() {
		to = time.Now().UTC()
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, operation, status, COALESCE(error, ''), ts
FROM journal_entries
WHERE ts >= ? AND ts <= ? AND (? = '' OR run_id = ?)
ORDER BY id ASC
LIMIT ?`, from, to, q.RunID, q.RunID, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	entries := make([]storage.JournalEntry, 0, limit)
	for rows.Next() {
		var e storage.JournalEntry
		var ts string
		if err := rows.Scan(&e.RunID, &e.Operation, &e.Status, &e.Error, &ts); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		parsedTS, err := parseSQLiteTS(ts)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp: %w", err)
		}
		e.TS = parsedTS
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// Runs возвращает последние запуски, новые первыми.
func (s *Store) Runs(ctx context.Context, limit int) ([]storage.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, COUNT(*), MAX(status = ?), MIN(ts), MAX(id) AS last_id
FROM journal_entries
GROUP BY run_id
ORDER BY last_id DESC
LIMIT ?`, storage.StatusFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []storage.RunSummary
	for rows.Next() {
		var r storage.RunSummary
		var failed int
		var ts string
		var lastID int64
		if err := rows.Scan(&r.RunID, &r.Entries, &failed, &ts, &lastID); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		parsedTS, err := parseSQLiteTS(ts)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		r.Failed = failed == 1
		r.StartedAt = parsedTS
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func parseSQLiteTS(v string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported sqlite time format: %q", v)
}

// Close закрывает соединение.
func (s *Store) Close() error {
	return s.db.Close()
}
