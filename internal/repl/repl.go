package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gocalc/internal/console"
	"gocalc/internal/core"
)

// ExitToken завершает REPL до обращения к реестру.
const ExitToken = "exit"

// Коды завершения процесса.
const (
	StatusOK             = 0
	StatusUnknownCommand = 1
	StatusInputFailure   = 1
)

// State - состояние цикла.
type State int

const (
	StateLoading State = iota
	StateReading
	StateDispatching
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReading:
		return "reading"
	case StateDispatching:
		return "dispatching"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Loader наполняет реестр командами перед стартом цикла.
type Loader interface {
	Load(r *core.Registry) int
}

// Engine управляет циклом чтение-выполнение.
type Engine struct {
	registry *core.Registry
	loader   Loader
	con      *console.Console
	prompt   string
	log      *slog.Logger
	state    State
}

// New создает движок. loader может быть nil.
func New(registry *core.Registry, loader Loader, con *console.Console, prompt string, lg *slog.Logger) *Engine {
	if lg == nil {
		lg = slog.Default()
	}
	return &Engine{registry: registry, loader: loader, con: con, prompt: prompt, log: lg}
}

// State возвращает текущее состояние.
func (e *Engine) State() State { return e.state }

// Run загружает плагины и крутит цикл до выхода. Возвращает код завершения.
// Отмена ctx трактуется как прерывание пользователем.
func (e *Engine) Run(ctx context.Context) int {
	defer e.log.Info("Application shutdown.")

	e.setState(StateLoading)
	if e.loader != nil {
		n := e.loader.Load(e.registry)
		e.log.Debug("plugins loaded", "count", n)
	}
	e.log.Info("Application started. Type 'menu' to get commands or 'exit' to exit the program.")

	for {
		e.setState(StateReading)
		line, err := e.con.ReadLine(ctx, e.prompt)
		if err != nil {
			return e.terminate(e.readFailure(err))
		}
		input := strings.TrimSpace(line)
		if strings.EqualFold(input, ExitToken) {
			e.log.Info("Application exit.")
			return e.terminate(StatusOK)
		}

		e.setState(StateDispatching)
		if status, done := e.dispatch(ctx, input); done {
			return e.terminate(status)
		}
	}
}

func (e *Engine) dispatch(ctx context.Context, name string) (int, bool) {
	err := e.registry.Execute(ctx, name)
	if err == nil {
		return 0, false
	}
	var exitErr *core.ExitError
	switch {
	case errors.Is(err, core.ErrUnknownCommand):
		e.log.Error("Unknown command", "command", name)
		return StatusUnknownCommand, true
	case errors.As(err, &exitErr):
		e.log.Info("command requested exit", "command", name, "code", exitErr.Code)
		if exitErr.Message != "" {
			fmt.Fprintln(e.con.Out(), exitErr.Message)
		}
		return exitErr.Code, true
	case errors.Is(err, console.ErrInterrupted), errors.Is(err, io.EOF):
		return e.readFailure(err), true
	default:
		e.log.Error("command failed", "command", name, "err", err)
		fmt.Fprintf(e.con.Out(), "Error: %v\n", err)
		return 0, false
	}
}

// readFailure переводит ошибку чтения в код завершения.
func (e *Engine) readFailure(err error) int {
	switch {
	case errors.Is(err, console.ErrInterrupted):
		e.log.Info("Application interrupted and exiting gracefully.")
	case errors.Is(err, io.EOF):
		e.log.Info("input closed, exiting")
	default:
		e.log.Error("read input failed", "err", err)
		return StatusInputFailure
	}
	return StatusOK
}

func (e *Engine) terminate(status int) int {
	e.setState(StateTerminated)
	return status
}

func (e *Engine) setState(s State) {
	e.state = s
	e.log.Debug("repl state", "state", s.String())
}
