package commands

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/cli/output"
	"github.com/leapstack-labs/primordial/pkg/ast"
)

// OperatorInfo describes one operator for the ops listing.
type OperatorInfo struct {
	Kind       string `json:"kind"`
	Token      string `json:"token"`
	Precedence int    `json:"precedence,omitempty"`
}

// NewOpsCommand creates the ops command.
func NewOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List operators with their tokens and precedence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			ops := operatorInfos()

			switch r.EffectiveMode() {
			case output.ModeJSON:
				return r.JSON(ops)
			case output.ModeMarkdown:
				r.Header(1, "Operators")
				renderOpsTable(r.Writer(), ops, true)
			default:
				renderOpsTable(r.Writer(), ops, false)
			}
			return nil
		},
	}
}

func operatorInfos() []OperatorInfo {
	var ops []OperatorInfo
	for _, op := range ast.BinaryOperators() {
		ops = append(ops, OperatorInfo{Kind: "binary", Token: op.String(), Precedence: op.Precedence()})
	}
	for _, op := range ast.UnaryOperators() {
		ops = append(ops, OperatorInfo{Kind: "unary", Token: op.String()})
	}
	return ops
}

func renderOpsTable(w io.Writer, ops []OperatorInfo, markdown bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Token", "Precedence"})
	for _, op := range ops {
		prec := "-"
		if op.Precedence > 0 {
			prec = strconv.Itoa(op.Precedence)
		}
		t.AppendRow(table.Row{op.Kind, op.Token, prec})
	}
	if markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
