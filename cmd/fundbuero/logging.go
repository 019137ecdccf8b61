package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erazemk/fundbuero/internal/config"
)

// splitHandler sends records at slog.LevelError and above to errs and the
// rest to out. Records below min are dropped.
type splitHandler struct {
	min  slog.Leveler
	out  slog.Handler
	errs slog.Handler
}

func (h *splitHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min.Level()
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.errs.Handle(ctx, r)
	}
	return h.out.Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{min: h.min, out: h.out.WithAttrs(attrs), errs: h.errs.WithAttrs(attrs)}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{min: h.min, out: h.out.WithGroup(name), errs: h.errs.WithGroup(name)}
}

// newLogHandler builds the handler for cfg writing to out and errs.
func newLogHandler(cfg *config.Config, out, errs io.Writer) (slog.Handler, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	build := func(w io.Writer) slog.Handler {
		if cfg.LogFormat == config.LogJSON {
			return slog.NewJSONHandler(w, opts)
		}
		return slog.NewTextHandler(w, opts)
	}
	return &splitHandler{min: level, out: build(out), errs: build(errs)}, nil
}

// setupLogger installs the default logger. Errors go to stderr, everything
// else to stdout, and with cfg.LogPath set all records are also appended to
// that file. The returned func closes the file.
func setupLogger(cfg *config.Config) (func(), error) {
	out, errs := io.Writer(os.Stdout), io.Writer(os.Stderr)
	closeFile := func() {}

	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		closeFile = func() { f.Close() }
		out, errs = io.MultiWriter(out, f), io.MultiWriter(errs, f)
	}

	handler, err := newLogHandler(cfg, out, errs)
	if err != nil {
		closeFile()
		return nil, err
	}
	slog.SetDefault(slog.New(handler))
	return closeFile, nil
}
