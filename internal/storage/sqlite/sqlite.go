package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"gocalc/internal/storage"
)

// Store реализует storage.HistoryStore поверх SQLite.
// Соединение открывается на время одного вызова.
type Store struct {
	path string
}

// Open проверяет доступность базы и выполняет миграции.
func Open(ctx context.Context, path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.withDB(ctx, func(db *sql.DB) error { return nil }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	dsn := fmt.Sprintf("file:%s?_journal=WAL&_busy_timeout=5000", s.path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	if err := migrate(ctx, db); err != nil {
		return err
	}
	return fn(db)
}

func migrate(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			operation TEXT NOT NULL,
			operand1 REAL NOT NULL,
			operand2 REAL NOT NULL,
			result REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON history(ts);`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Append сохраняет запись истории.
func (s *Store) Append(ctx context.Context, rec storage.HistoryRecord) error {
	return s.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO history(operation, operand1, operand2, result, ts) VALUES(?,?,?,?,?)`,
			rec.Operation, rec.Operand1, rec.Operand2, rec.Result, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		return nil
	})
}

// Load возвращает историю в порядке добавления.
func (s *Store) Load(ctx context.Context) ([]storage.HistoryRecord, error) {
	recs := make([]storage.HistoryRecord, 0, 16)
	err := s.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT operation, operand1, operand2, result FROM history ORDER BY id ASC`)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var rec storage.HistoryRecord
			if err := rows.Scan(&rec.Operation, &rec.Operand1, &rec.Operand2, &rec.Result); err != nil {
				return fmt.Errorf("scan history: %w", err)
			}
			recs = append(recs, rec)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Clear удаляет все записи истории.
func (s *Store) Clear(ctx context.Context) error {
	return s.withDB(ctx, func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, `DELETE FROM history`); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		return nil
	})
}
