package showhistory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"

	"gocalc/internal/calc"
	"gocalc/internal/core"
	"gocalc/internal/plugin"
	"gocalc/internal/storage"
)

func init() {
	plugin.Register(plugin.Descriptor{
		Name:    "showhistory",
		Summary: "Shows the last calculations",
		New: func(deps plugin.Deps) (core.Command, error) {
			if deps.History == nil || deps.Console == nil {
				return nil, errors.New("history store and console are required")
			}
			return New(deps.History, deps.Console.Out(), deps.Config.History.ShowLimit, deps.Log), nil
		},
	})
}

// Command печатает последние записи истории.
type Command struct {
	history storage.HistoryStore
	out     io.Writer
	limit   int
	log     *slog.Logger
}

// New создает команду; limit <= 0 означает 5 записей.
func New(history storage.HistoryStore, out io.Writer, limit int, lg *slog.Logger) *Command {
	if limit <= 0 {
		limit = 5
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &Command{history: history, out: out, limit: limit, log: lg}
}

func (c *Command) Execute(ctx context.Context) error {
	recs, err := c.history.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(c.out, "No history yet.")
		return nil
	}
	last := storage.Tail(recs, c.limit)
	fmt.Fprintf(c.out, "\nLast %d Calculations:\n", c.limit)
	Render(c.out, last)
	fmt.Fprintln(c.out)
	c.log.Info("history displayed", "rows", len(last))
	return nil
}

// Render печатает записи таблицей.
func Render(w io.Writer, recs []storage.HistoryRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	header := make(table.Row, 0, len(storage.Columns))
	for _, col := range storage.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)
	for _, rec := range recs {
		t.AppendRow(table.Row{
			rec.Operation,
			calc.FormatResult(rec.Operand1),
			calc.FormatResult(rec.Operand2),
			calc.FormatResult(rec.Result),
		})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}
