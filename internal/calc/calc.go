package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"gocalc/internal/console"
	"gocalc/internal/storage"
)

var (
	// ErrInvalidInput - операнд не является конечным числом.
	ErrInvalidInput = errors.New("invalid numeric input")
	// ErrDivisionByZero - делитель равен нулю.
	ErrDivisionByZero = errors.New("division by zero")
)

// Operation - бинарная арифметическая операция.
type Operation struct {
	Name   string
	Symbol string
	Apply  func(a, b float64) (float64, error)
}

var (
	Add = Operation{Name: "addition", Symbol: "+", Apply: func(a, b float64) (float64, error) { return a + b, nil }}
	Sub = Operation{Name: "subtraction", Symbol: "-", Apply: func(a, b float64) (float64, error) { return a - b, nil }}
	Mul = Operation{Name: "multiplication", Symbol: "*", Apply: func(a, b float64) (float64, error) { return a * b, nil }}
	Div = Operation{Name: "division", Symbol: "/", Apply: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}}
)

// ParseOperand разбирает число из пользовательского ввода.
func ParseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidInput)
	}
	return v, nil
}

// FormatResult печатает число минимум с одним знаком после точки: 7 -> "7.0".
func FormatResult(v float64) string {
	abs := math.Abs(v)
	if v != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Command запрашивает два операнда, выполняет операцию и пишет историю.
type Command struct {
	op      Operation
	con     *console.Console
	history storage.HistoryStore
	log     *slog.Logger
}

// NewCommand создает команду для op. history может быть nil.
func NewCommand(op Operation, con *console.Console, history storage.HistoryStore, lg *slog.Logger) *Command {
	if lg == nil {
		lg = slog.Default()
	}
	return &Command{op: op, con: con, history: history, log: lg.With("operation", op.Name)}
}

// Execute реализует core.Command. Ошибки ввода и деления на ноль сообщаются
// пользователю и не возвращаются; наружу уходят только прерывание ввода и
// сбой записи истории.
func (c *Command) Execute(ctx context.Context) error {
	out := c.con.Out()
	a, err := c.readOperand(ctx, "Enter first number: ")
	if err != nil {
		return c.handleInputErr(err)
	}
	b, err := c.readOperand(ctx, "Enter second number: ")
	if err != nil {
		return c.handleInputErr(err)
	}

	result, err := c.op.Apply(a, b)
	if errors.Is(err, ErrDivisionByZero) {
		c.log.Error("division by zero attempted", "a", a)
		fmt.Fprintln(out, "Error: Division by zero is not allowed.")
		return nil
	}
	if err != nil {
		return err
	}

	c.log.Info("calculated", "a", a, "b", b, "result", result)
	fmt.Fprintf(out, "Result: %s\n", FormatResult(result))

	if c.history == nil {
		return nil
	}
	rec := storage.HistoryRecord{Operation: c.op.Name, Operand1: a, Operand2: b, Result: result}
	if err := c.history.Append(ctx, rec); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (c *Command) readOperand(ctx context.Context, prompt string) (float64, error) {
	line, err := c.con.ReadLine(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return ParseOperand(line)
}

func (c *Command) handleInputErr(err error) error {
	if !errors.Is(err, ErrInvalidInput) {
		return err
	}
	c.log.Error("invalid input", "err", err)
	fmt.Fprintln(c.con.Out(), "Invalid input. Please enter numeric values.")
	return nil
}
