package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Options controls where and how records are written.
type Options struct {
	Level  string
	Format string
	// File, when set, receives the log instead of Writer.
	File   string
	Writer io.Writer
}

// New returns a logger tagged with a fresh session id, plus a close func for the sink.
// Unknown levels fall back to info; format is "text" (default) or "json".
func New(opts Options) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if opts.Level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(opts.Level)); err == nil {
			level = parsed
		}
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) // #nosec G304 -- путь задается оператором.
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		h = slog.NewJSONHandler(w, hopts)
	default:
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h).With("session", uuid.NewString()), closeFn, nil
}
