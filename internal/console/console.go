package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInterrupted возвращается ReadLine, если ожидание ввода прервано (Ctrl-C).
var ErrInterrupted = errors.New("input interrupted")

type lineResult struct {
	text string
	err  error
}

// Console - единственный источник строк для REPL и команд.
// Чтение ведет одна горутина, поэтому порядок строк сохраняется
// независимо от того, кто их запрашивает.
type Console struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan lineResult
}

// New создает консоль поверх потоков ввода/вывода.
func New(in io.Reader, out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{in: in, out: out, lines: make(chan lineResult)}
}

// Out возвращает поток пользовательского вывода.
func (c *Console) Out() io.Writer { return c.out }

// ReadLine печатает prompt и блокируется до строки, конца ввода или отмены ctx.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInterrupted, err)
	}
	c.once.Do(c.start)
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	case res, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}

func (c *Console) start() {
	go func() {
		defer close(c.lines)
		if c.in == nil {
			return
		}
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			c.lines <- lineResult{text: strings.TrimRight(sc.Text(), "\r")}
		}
		if err := sc.Err(); err != nil {
			c.lines <- lineResult{err: fmt.Errorf("read input: %w", err)}
		}
	}()
}
