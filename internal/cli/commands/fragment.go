package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/cli/output"
	"github.com/leapstack-labs/primordial/pkg/ast"
	"github.com/leapstack-labs/primordial/pkg/parser"
)

// FragmentResult is the JSON form of a rendered type or expression.
type FragmentResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// NewExprCommand creates the expr command.
func NewExprCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expr <source>",
		Short: "Render a single expression with explicit grouping",
		Example: `  primordial expr "1 + 2 * 3"
  primordial expr "u8(m.a[0])"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFragment(cmd, strings.Join(args, " "), func(src string, opts ...parser.Option) (ast.Node, error) {
				return parser.ParseExpr(src, opts...)
			})
		},
	}
}

// NewTypeCommand creates the type command.
func NewTypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "type <source>",
		Short: "Render a single type",
		Example: `  primordial type "Map[string, Node?[]]"
  primordial type "struct { x int }"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFragment(cmd, strings.Join(args, " "), func(src string, opts ...parser.Option) (ast.Node, error) {
				return parser.ParseType(src, opts...)
			})
		},
	}
}

type fragmentParser func(src string, opts ...parser.Option) (ast.Node, error)

func runFragment(cmd *cobra.Command, src string, parse fragmentParser) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	var opts []parser.Option
	if cc.Cfg.Verbose {
		opts = append(opts, parser.WithLogger(cc.Logger))
	}
	n, err := parse(src, opts...)
	if err != nil {
		return err
	}
	out, err := renderNode(n)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(FragmentResult{Input: src, Output: out})
	}
	r.Code("primordial", out)
	return nil
}
