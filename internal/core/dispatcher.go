package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
)

var (
	// ErrUnknownCommand возвращается Execute, если имя не зарегистрировано.
	ErrUnknownCommand   = errors.New("unknown command")
	errInvalidArguments = errors.New("invalid arguments")
)

// Registry хранит зарегистрированные команды и выполняет их по имени.
type Registry struct {
	commands map[string]Command
	out      io.Writer
	log      *slog.Logger
}

// NewRegistry создает пустой реестр; сообщения пользователю пишутся в out.
func NewRegistry(out io.Writer, lg *slog.Logger) *Registry {
	if out == nil {
		out = io.Discard
	}
	if lg == nil {
		lg = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{commands: make(map[string]Command), out: out, log: lg}
}

// Register сохраняет команду под именем; повторная регистрация заменяет прежнюю.
func (r *Registry) Register(name string, cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command is nil: %w", errInvalidArguments)
	}
	if name == "" {
		return fmt.Errorf("command name is empty: %w", errInvalidArguments)
	}
	if _, exists := r.commands[name]; exists {
		r.log.Debug("command replaced", "command", name)
	}
	r.commands[name] = cmd
	r.log.Info("command registered", "command", name)
	return nil
}

// Lookup возвращает команду по имени.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Execute вызывает команду по имени. Для неизвестного имени печатает
// "No such command" и возвращает ErrUnknownCommand, не паникуя.
func (r *Registry) Execute(ctx context.Context, name string) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		fmt.Fprintf(r.out, "No such command: %s\n", name)
		return fmt.Errorf("%s: %w", name, ErrUnknownCommand)
	}
	return cmd.Execute(ctx)
}

// Names возвращает отсортированный список зарегистрированных команд.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
