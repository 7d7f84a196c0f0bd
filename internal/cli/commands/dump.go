package commands

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/pkg/ast"
	"github.com/leapstack-labs/primordial/pkg/parser"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "dump <file|source>",
		Short: "Print the syntax tree in Go syntax",
		Long: `Parse the input and print the resulting tree with every node and field.

By default the argument names a file. With --kind type or --kind expr the
argument is the source text of a single type or expression.`,
		Example: `  primordial dump main.pm
  primordial dump --kind expr "m.a[1] + 2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				n   ast.Node
				err error
			)
			cc := NewCommandContext(cmd)
			switch kind {
			case "file":
				n, err = cc.ParseFile(cmd.Context(), cmd, args[0])
			case "type":
				n, err = parser.ParseType(args[0], parser.WithLogger(cc.Logger))
			case "expr":
				n, err = parser.ParseExpr(args[0], parser.WithLogger(cc.Logger))
			default:
				return fmt.Errorf("unknown kind %q (want file, type or expr)", kind)
			}
			if err != nil {
				return err
			}
			_, err = pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", n)
			return err
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "file", "Input kind (file|type|expr)")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"file", "type", "expr"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
