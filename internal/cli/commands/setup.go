package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/cli/config"
	"github.com/leapstack-labs/primordial/internal/cli/output"
	"github.com/leapstack-labs/primordial/internal/driver"
	"github.com/leapstack-labs/primordial/pkg/ast"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the config and logger the
// root command stored in cmd's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	r.SetColor(cfg.Color)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: r,
	}
}

// ParseFile parses path through the driver and takes the result. A path of
// "-" reads standard input.
func (c *CommandContext) ParseFile(ctx context.Context, cmd *cobra.Command, path string) (*ast.File, error) {
	if path == "-" {
		return c.parse(func(d *driver.Driver) error {
			return d.Parse(ctx, cmd.InOrStdin(), "<stdin>")
		})
	}
	return c.parse(func(d *driver.Driver) error {
		return d.ParseFile(ctx, path)
	})
}

// ParseSource parses src, already read from name.
func (c *CommandContext) ParseSource(ctx context.Context, src []byte, name string) (*ast.File, error) {
	return c.parse(func(d *driver.Driver) error {
		return d.Parse(ctx, bytes.NewReader(src), name)
	})
}

func (c *CommandContext) parse(run func(*driver.Driver) error) (*ast.File, error) {
	d := driver.New(driver.WithLogger(c.Logger))
	if c.Cfg.Verbose {
		d.EnableDebug()
	}
	if err := run(d); err != nil {
		return nil, err
	}
	return d.Result()
}

// renderNode renders n at level zero.
func renderNode(n ast.Node) (string, error) {
	s, err := ast.Sprint(n)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return s, nil
}
