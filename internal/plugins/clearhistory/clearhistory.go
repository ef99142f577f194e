package clearhistory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gocalc/internal/core"
	"gocalc/internal/plugin"
	"gocalc/internal/storage"
)

func init() {
	plugin.Register(plugin.Descriptor{
		Name:    "clearhistory",
		Summary: "Clears the calculation history",
		New: func(deps plugin.Deps) (core.Command, error) {
			if deps.History == nil || deps.Console == nil {
				return nil, errors.New("history store and console are required")
			}
			return New(deps.History, deps.Console.Out(), deps.Log), nil
		},
	})
}

// Command очищает историю.
type Command struct {
	history storage.HistoryStore
	out     io.Writer
	log     *slog.Logger
}

func New(history storage.HistoryStore, out io.Writer, lg *slog.Logger) *Command {
	if lg == nil {
		lg = slog.Default()
	}
	return &Command{history: history, out: out, log: lg}
}

func (c *Command) Execute(ctx context.Context) error {
	if err := c.history.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Fprintln(c.out, "History cleared.")
	c.log.Info("history cleared")
	return nil
}
