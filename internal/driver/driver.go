// Package driver runs the parser over a source file and hands the finished
// tree to the caller exactly once.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/primordial/pkg/ast"
	"github.com/leapstack-labs/primordial/pkg/parser"
)

// ErrNoResult is returned by Result when no parsed file is pending.
var ErrNoResult = errors.New("driver: no parse result")

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for driver and parser tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.base = logger.Handler()
		}
	}
}

// Driver parses one file at a time.
type Driver struct {
	base   slog.Handler
	level  slog.LevelVar
	logger *slog.Logger
	result *ast.File
}

// New creates a driver. Tracing is off until EnableDebug is called.
func New(opts ...Option) *Driver {
	d := &Driver{base: slog.DiscardHandler}
	for _, opt := range opts {
		opt(d)
	}
	d.level.Set(slog.LevelInfo)
	d.logger = slog.New(&levelHandler{level: &d.level, next: d.base})
	return d
}

// EnableDebug lowers the driver's log level so parser productions are traced.
func (d *Driver) EnableDebug() {
	d.level.Set(slog.LevelDebug)
}

// Parse reads r to the end and parses it as a file named filename. Any result
// not yet taken is discarded first, so after a failure Result reports
// ErrNoResult.
func (d *Driver) Parse(ctx context.Context, r io.Reader, filename string) error {
	d.result = nil
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.logger.Debug("parsing", "file", filename, "bytes", len(src))
	f, err := parser.ParseFile(string(src), filename, parser.WithLogger(d.logger))
	if err != nil {
		d.logger.Debug("parse failed", "file", filename, "error", err)
		return err
	}
	d.result = f
	return nil
}

// ParseFile opens path and parses its contents.
func (d *Driver) ParseFile(ctx context.Context, path string) error {
	d.result = nil
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = f.Close() }()
	return d.Parse(ctx, f, path)
}

// Result hands over the last parsed file. The driver keeps no reference to
// it, so a second call returns ErrNoResult.
func (d *Driver) Result() (*ast.File, error) {
	if d.result == nil {
		return nil, ErrNoResult
	}
	f := d.result
	d.result = nil
	return f, nil
}

// levelHandler gates an existing handler behind an adjustable level.
type levelHandler struct {
	level slog.Leveler
	next  slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.next.Enabled(ctx, l)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithGroup(name)}
}
