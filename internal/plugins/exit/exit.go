package exit

import (
	"context"
	"log/slog"

	"gocalc/internal/core"
	"gocalc/internal/plugin"
)

func init() {
	plugin.Register(plugin.Descriptor{
		Name:    "exit",
		Summary: "Exits the application",
		New: func(deps plugin.Deps) (core.Command, error) {
			return New(deps.Log), nil
		},
	})
}

// Command завершает процесс через core.ExitError со статусом 0.
type Command struct {
	log *slog.Logger
}

func New(lg *slog.Logger) *Command {
	if lg == nil {
		lg = slog.Default()
	}
	return &Command{log: lg}
}

func (c *Command) Execute(ctx context.Context) error {
	c.log.Info("exiting application")
	return &core.ExitError{Code: 0, Message: "Exiting..."}
}
