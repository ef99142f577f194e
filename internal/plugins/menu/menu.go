package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gocalc/internal/config"
	"gocalc/internal/core"
	"gocalc/internal/plugin"
)

func init() {
	plugin.Register(plugin.Descriptor{
		Name:    "menu",
		Summary: "Displays this menu",
		New: func(deps plugin.Deps) (core.Command, error) {
			if deps.Catalog == nil || deps.Console == nil {
				return nil, errors.New("catalog and console are required")
			}
			return New(deps.Catalog, deps.Config, deps.Console.Out(), deps.Log), nil
		},
	})
}

// Command печатает имена доступных команд каталога плагинов;
// плагины, отключенные конфигурацией, не показываются.
type Command struct {
	catalog *plugin.Catalog
	cfg     config.Config
	out     io.Writer
	log     *slog.Logger
}

func New(catalog *plugin.Catalog, cfg config.Config, out io.Writer, lg *slog.Logger) *Command {
	if lg == nil {
		lg = slog.Default()
	}
	return &Command{catalog: catalog, cfg: cfg, out: out, log: lg}
}

func (c *Command) Execute(ctx context.Context) error {
	c.log.Info("displaying available commands")
	fmt.Fprintln(c.out, "Available commands:")
	for _, d := range c.catalog.Descriptors() {
		if c.cfg.PluginDisabled(d.Name) {
			continue
		}
		fmt.Fprintf(c.out, "  %-15s -> %s\n", d.Name, d.Summary)
	}
	return nil
}
