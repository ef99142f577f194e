package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"gocalc/internal/console"
	"gocalc/internal/core"
)

type countingCommand struct{ calls int }

func (c *countingCommand) Execute(ctx context.Context) error {
	c.calls++
	return nil
}

type staticLoader map[string]core.Command

func (l staticLoader) Load(r *core.Registry) int {
	for name, cmd := range l {
		_ = r.Register(name, cmd)
	}
	return len(l)
}

type harness struct {
	out  bytes.Buffer
	logs bytes.Buffer
	con  *console.Console
	eng  *Engine
}

func newHarness(input io.Reader, loader Loader) *harness {
	h := &harness{}
	lg := slog.New(slog.NewTextHandler(&h.logs, nil))
	h.con = console.New(input, &h.out)
	h.eng = New(core.NewRegistry(&h.out, lg), loader, h.con, ">>> ", lg)
	return h
}

func TestExitToken(t *testing.T) {
	for _, token := range []string{"exit", "  EXIT ", "Exit"} {
		h := newHarness(strings.NewReader(token+"\n"), nil)
		if status := h.eng.Run(context.Background()); status != StatusOK {
			t.Fatalf("%q: expected status 0, got %d", token, status)
		}
		if n := strings.Count(h.logs.String(), "Application shutdown."); n != 1 {
			t.Fatalf("%q: expected one shutdown log, got %d", token, n)
		}
		if !strings.Contains(h.logs.String(), "Application exit.") {
			t.Fatalf("%q: exit not logged: %s", token, h.logs.String())
		}
		if h.eng.State() != StateTerminated {
			t.Fatalf("unexpected state: %s", h.eng.State())
		}
	}
}

func TestExitTokenBypassesRegistry(t *testing.T) {
	exitCmd := &countingCommand{}
	h := newHarness(strings.NewReader("exit\n"), staticLoader{"exit": exitCmd})
	if status := h.eng.Run(context.Background()); status != StatusOK {
		t.Fatalf("expected status 0, got %d", status)
	}
	if exitCmd.calls != 0 {
		t.Fatalf("registered exit command must not run for the reserved token")
	}
}

func TestUnknownCommandTerminates(t *testing.T) {
	h := newHarness(strings.NewReader("unknown_cmd\nexit\n"), nil)
	if status := h.eng.Run(context.Background()); status != StatusUnknownCommand {
		t.Fatalf("expected status 1, got %d", status)
	}
	if !strings.Contains(h.out.String(), "No such command: unknown_cmd") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
	if !strings.Contains(h.logs.String(), "Unknown command") {
		t.Fatalf("unknown command not logged: %s", h.logs.String())
	}
	if strings.Contains(h.logs.String(), "Application exit.") {
		t.Fatalf("second input must not be reached")
	}
	if n := strings.Count(h.logs.String(), "Application shutdown."); n != 1 {
		t.Fatalf("expected one shutdown log, got %d", n)
	}
	line, err := h.con.ReadLine(context.Background(), "")
	if err != nil || line != "exit" {
		t.Fatalf("expected unread exit line, got %q, %v", line, err)
	}
}

func TestDispatchLoopsUntilExit(t *testing.T) {
	cmd := &countingCommand{}
	h := newHarness(strings.NewReader("ping\n  ping  \nexit\n"), staticLoader{"ping": cmd})
	if status := h.eng.Run(context.Background()); status != StatusOK {
		t.Fatalf("expected status 0, got %d", status)
	}
	if cmd.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", cmd.calls)
	}
	if strings.Count(h.out.String(), ">>> ") != 3 {
		t.Fatalf("expected 3 prompts, got %q", h.out.String())
	}
}

func TestCommandExitError(t *testing.T) {
	loader := staticLoader{"quit": core.CommandFunc(func(context.Context) error {
		return &core.ExitError{Code: 4, Message: "Exiting..."}
	})}
	h := newHarness(strings.NewReader("quit\nexit\n"), loader)
	if status := h.eng.Run(context.Background()); status != 4 {
		t.Fatalf("expected status 4, got %d", status)
	}
	if !strings.Contains(h.out.String(), "Exiting...") {
		t.Fatalf("exit message not printed: %q", h.out.String())
	}
}

func TestCommandFailureIsIsolated(t *testing.T) {
	ok := &countingCommand{}
	loader := staticLoader{
		"broken": core.CommandFunc(func(context.Context) error { return errors.New("disk full") }),
		"ok":     ok,
	}
	h := newHarness(strings.NewReader("broken\nok\nexit\n"), loader)
	if status := h.eng.Run(context.Background()); status != StatusOK {
		t.Fatalf("expected status 0, got %d", status)
	}
	if ok.calls != 1 {
		t.Fatalf("loop must continue after a failing command")
	}
	if !strings.Contains(h.out.String(), "Error: disk full") {
		t.Fatalf("failure not reported: %q", h.out.String())
	}
}

func TestInterrupt(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := newHarness(pr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() { done <- h.eng.Run(ctx) }()
	cancel()

	if status := <-done; status != StatusOK {
		t.Fatalf("expected status 0, got %d", status)
	}
	logs := h.logs.String()
	if !strings.Contains(logs, "Application interrupted and exiting gracefully.") {
		t.Fatalf("interrupt not logged: %s", logs)
	}
	if n := strings.Count(logs, "Application shutdown."); n != 1 {
		t.Fatalf("expected one shutdown log, got %d", n)
	}
}

func TestInterruptInsideCommand(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loader := staticLoader{"add": core.CommandFunc(func(ctx context.Context) error {
		cancel()
		return console.ErrInterrupted
	})}
	h := newHarness(strings.NewReader("add\n3\n"), loader)
	if status := h.eng.Run(ctx); status != StatusOK {
		t.Fatalf("expected status 0, got %d", status)
	}
}

func TestEndOfInput(t *testing.T) {
	h := newHarness(strings.NewReader(""), nil)
	if status := h.eng.Run(context.Background()); status != StatusOK {
		t.Fatalf("expected status 0, got %d", status)
	}
	if n := strings.Count(h.logs.String(), "Application shutdown."); n != 1 {
		t.Fatalf("expected one shutdown log, got %d", n)
	}
}

func TestLoaderRunsOnce(t *testing.T) {
	loader := &onceLoader{}
	h := newHarness(strings.NewReader("menu\nmenu\nexit\n"), loader)
	if status := h.eng.Run(context.Background()); status != StatusOK {
		t.Fatalf("expected status 0, got %d", status)
	}
	if loader.calls != 1 {
		t.Fatalf("expected a single load, got %d", loader.calls)
	}
}

type onceLoader struct{ calls int }

func (l *onceLoader) Load(r *core.Registry) int {
	l.calls++
	_ = r.Register("menu", core.CommandFunc(func(context.Context) error { return nil }))
	return 1
}
