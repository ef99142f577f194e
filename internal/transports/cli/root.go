package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gocalc/internal/app"
	"gocalc/internal/config"
	"gocalc/internal/core"
	"gocalc/internal/plugin"
	"gocalc/internal/plugins/showhistory"
	"gocalc/internal/storage"
)

// Options задает окружение корневой команды.
type Options struct {
	Version string
	Catalog *plugin.Catalog
	In      io.Reader
	Out     io.Writer
	// LogOut переопределяет приемник логов (по умолчанию stderr).
	LogOut io.Writer
}

// New создает корневую CLI-команду. Без подкоманды запускается REPL;
// ненулевой код завершения возвращается как *core.ExitError.
func New(opts Options) *cobra.Command {
	if opts.Catalog == nil {
		opts.Catalog = plugin.Default
	}
	var configPath string

	root := &cobra.Command{
		Use:           "gocalc",
		Short:         "Интерактивный калькулятор с плагинами команд",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: withApp(&configPath, opts, func(cmd *cobra.Command, a *app.App) error {
			if status := a.RunREPL(cmd.Context()); status != 0 {
				return &core.ExitError{Code: status}
			}
			return nil
		}),
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "путь к YAML-конфигу")
	if opts.In != nil {
		root.SetIn(opts.In)
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}

	root.AddCommand(newVersionCmd(opts.Version))
	root.AddCommand(newPluginsCmd(&configPath, opts))
	root.AddCommand(newHistoryCmd(&configPath, opts))

	return root
}

func withApp(configPath *string, opts Options, fn func(cmd *cobra.Command, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := app.NewApp(ctx, cfg, opts.Catalog, app.Streams{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Log: opts.LogOut,
		})
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a)
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version)
		},
	}
}

func newPluginsCmd(configPath *string, opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "Показать встроенные плагины",
		Args:  cobra.NoArgs,
		RunE: withApp(configPath, opts, func(cmd *cobra.Command, a *app.App) error {
			for _, d := range opts.Catalog.Descriptors() {
				state := "enabled"
				if a.Config.PluginDisabled(d.Name) {
					state = "disabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-15s %-9s %s\n", d.Name, state, d.Summary)
			}
			return nil
		}),
	}
}

func newHistoryCmd(configPath *string, opts Options) *cobra.Command {
	history := &cobra.Command{
		Use:   "history",
		Short: "Работа с историей вычислений",
	}

	var limit int
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Показать последние вычисления",
		Args:  cobra.NoArgs,
		RunE: withApp(configPath, opts, func(cmd *cobra.Command, a *app.App) error {
			recs, err := a.Store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return nil
			}
			n := limit
			if n == 0 {
				n = a.Config.History.ShowLimit
			}
			showhistory.Render(cmd.OutOrStdout(), storage.Tail(recs, n))
			return nil
		}),
	}
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "число записей (по умолчанию из конфига, -1 - все)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Очистить историю",
		Args:  cobra.NoArgs,
		RunE: withApp(configPath, opts, func(cmd *cobra.Command, a *app.App) error {
			if err := a.Store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		}),
	}

	history.AddCommand(showCmd, clearCmd)
	return history
}
