package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gocalc/internal/storage"
)

var errBadHeader = errors.New("unexpected history header")

// Store реализует storage.HistoryStore поверх CSV-файла.
// Файл открывается на время одного вызова и сразу закрывается.
type Store struct {
	path string
}

// New создает хранилище для файла path; сам файл создается при первой записи.
func New(path string) *Store {
	return &Store{path: path}
}

// Append дописывает строку, при необходимости создавая файл с заголовком.
func (s *Store) Append(ctx context.Context, rec storage.HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) // #nosec G304 -- путь задается конфигурацией оператора.
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat history: %w", err)
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(storage.Columns); err != nil {
			return fmt.Errorf("write history header: %w", err)
		}
	}
	if err := w.Write(encodeRecord(rec)); err != nil {
		return fmt.Errorf("write history row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush history: %w", err)
	}
	return f.Close()
}

// Load читает всю историю; отсутствующий файл означает пустую историю.
func (s *Store) Load(ctx context.Context) ([]storage.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path) // #nosec G304 -- путь задается конфигурацией оператора.
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []storage.HistoryRecord{}, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(storage.Columns)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []storage.HistoryRecord{}, nil
		}
		return nil, fmt.Errorf("read history header: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(storage.Columns, ",") {
		return nil, fmt.Errorf("%s: %w: %q", s.path, errBadHeader, header)
	}

	recs := make([]storage.HistoryRecord, 0, 16)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history row: %w", err)
		}
		rec, err := decodeRecord(row)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Clear удаляет файл истории, если он существует.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove history: %w", err)
	}
	return nil
}

func encodeRecord(rec storage.HistoryRecord) []string {
	return []string{
		rec.Operation,
		formatFloat(rec.Operand1),
		formatFloat(rec.Operand2),
		formatFloat(rec.Result),
	}
}

func decodeRecord(row []string) (storage.HistoryRecord, error) {
	vals := make([]float64, 3)
	for i := range vals {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return storage.HistoryRecord{}, fmt.Errorf("parse %s: %w", storage.Columns[i+1], err)
		}
		vals[i] = v
	}
	return storage.HistoryRecord{Operation: row[0], Operand1: vals[0], Operand2: vals[1], Result: vals[2]}, nil
}

// formatFloat пишет кратчайшее представление, которое читается обратно без потерь.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
