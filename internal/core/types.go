package core

import (
	"context"
	"fmt"
)

// Command описывает единицу работы REPL: выполняется без аргументов.
// Возврат *ExitError означает требование завершить процесс.
type Command interface {
	Execute(ctx context.Context) error
}

// CommandFunc позволяет использовать функцию как Command.
type CommandFunc func(ctx context.Context) error

func (f CommandFunc) Execute(ctx context.Context) error { return f(ctx) }

// ExitError сигнализирует управляемое завершение процесса с кодом Code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}
