package storage

import (
	"context"
	"errors"
)

// ErrUnknownBackend возвращается при выборе неподдерживаемого хранилища.
var ErrUnknownBackend = errors.New("unknown history backend")

// Columns задает порядок колонок таблицы истории.
var Columns = []string{"operation", "operand1", "operand2", "result"}

// HistoryRecord описывает одну выполненную операцию.
type HistoryRecord struct {
	Operation string
	Operand1  float64
	Operand2  float64
	Result    float64
}

// HistoryStore описывает операции журнала истории. Реализации не держат
// открытых дескрипторов между вызовами.
type HistoryStore interface {
	Append(ctx context.Context, rec HistoryRecord) error
	Load(ctx context.Context) ([]HistoryRecord, error)
	Clear(ctx context.Context) error
}

// Tail возвращает последние n записей (все, если n <= 0 или записей меньше).
func Tail(recs []HistoryRecord, n int) []HistoryRecord {
	if n <= 0 || len(recs) <= n {
		return recs
	}
	return recs[len(recs)-n:]
}
