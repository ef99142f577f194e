package plugin

import (
	"fmt"
	"log/slog"

	"gocalc/internal/core"
)

// Loader переносит плагины каталога в реестр команд.
type Loader struct {
	Catalog *Catalog
	Deps    Deps
	Log     *slog.Logger
}

// Load создает команду каждого плагина и регистрирует ее под именем плагина.
// Ошибка одного плагина логируется и не мешает остальным; наружу ошибки не
// возвращаются. Результат - число зарегистрированных команд.
func (l *Loader) Load(r *core.Registry) int {
	lg := l.Log
	if lg == nil {
		lg = slog.Default()
	}
	if l.Catalog == nil {
		lg.Warn("plugin catalog not found")
		return 0
	}
	descs := l.Catalog.Descriptors()
	if len(descs) == 0 {
		lg.Warn("plugin catalog is empty")
		return 0
	}

	deps := l.Deps
	if deps.Catalog == nil {
		deps.Catalog = l.Catalog
	}
	if deps.Log == nil {
		deps.Log = lg
	}

	loaded := 0
	for _, d := range descs {
		if deps.Config.PluginDisabled(d.Name) {
			lg.Info("plugin disabled", "plugin", d.Name)
			continue
		}
		cmd, err := build(d, deps)
		if err != nil {
			lg.Error("plugin load failed", "plugin", d.Name, "err", err)
			continue
		}
		if err := r.Register(d.Name, cmd); err != nil {
			lg.Error("plugin register failed", "plugin", d.Name, "err", err)
			continue
		}
		loaded++
	}
	return loaded
}

func build(d Descriptor, deps Deps) (cmd core.Command, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in factory: %v", rec)
		}
	}()
	cmd, err = d.New(deps)
	if err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, fmt.Errorf("factory returned nil command")
	}
	return cmd, nil
}
