package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gocalc/internal/config"
	"gocalc/internal/console"
	"gocalc/internal/core"
	"gocalc/internal/plugin"
	"gocalc/internal/repl"
	"gocalc/internal/storage"
	"gocalc/internal/storage/csvstore"
	"gocalc/internal/storage/sqlite"
	"gocalc/pkg/logger"
)

// Streams - пользовательские потоки процесса.
type Streams struct {
	In  io.Reader
	Out io.Writer
	// Log, если задан, заменяет stderr как приемник логов.
	Log io.Writer
}

// App агрегирует зависимости калькулятора.
type App struct {
	Config   config.Config
	Log      *slog.Logger
	Registry *core.Registry
	Loader   *plugin.Loader
	Store    storage.HistoryStore
	Console  *console.Console

	closeLog func() error
}

// NewApp строит приложение: логгер, хранилище истории, консоль и загрузчик
// плагинов из catalog. Плагины регистрируются при запуске REPL.
func NewApp(ctx context.Context, cfg config.Config, catalog *plugin.Catalog, streams Streams) (*App, error) {
	lg, closeLog, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Writer: streams.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	lg = lg.With("environment", cfg.Environment())

	st, err := OpenHistory(ctx, cfg)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	con := console.New(streams.In, streams.Out)
	r := core.NewRegistry(con.Out(), lg)
	loader := &plugin.Loader{
		Catalog: catalog,
		Log:     lg,
		Deps: plugin.Deps{
			Console: con,
			History: st,
			Config:  cfg,
			Log:     lg,
			Catalog: catalog,
		},
	}
	lg.Info("environment variables loaded", "history_file", cfg.History.File, "backend", cfg.History.Backend)

	return &App{
		Config:   cfg,
		Log:      lg,
		Registry: r,
		Loader:   loader,
		Store:    st,
		Console:  con,
		closeLog: closeLog,
	}, nil
}

// OpenHistory выбирает хранилище истории по конфигурации.
func OpenHistory(ctx context.Context, cfg config.Config) (storage.HistoryStore, error) {
	switch cfg.History.Backend {
	case config.BackendCSV, "":
		return csvstore.New(cfg.History.File), nil
	case config.BackendSQLite:
		st, err := sqlite.Open(ctx, cfg.History.File)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("%s: %w", cfg.History.Backend, storage.ErrUnknownBackend)
	}
}

// RunREPL загружает плагины и запускает интерактивный цикл; возвращает код завершения.
func (a *App) RunREPL(ctx context.Context) int {
	return repl.New(a.Registry, a.Loader, a.Console, a.Config.App.Prompt, a.Log).Run(ctx)
}

// Close высвобождает ресурсы приложения.
func (a *App) Close() error {
	if a.closeLog != nil {
		return a.closeLog()
	}
	return nil
}
