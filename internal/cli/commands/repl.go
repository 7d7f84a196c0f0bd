package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/pkg/parser"
)

const continuationPrompt = "       ...> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively render types and expressions",
		Long: `Start an interactive shell. Each line is parsed as an expression, or as a
type when it is not an expression, and printed back in canonical form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	prompt := cc.Cfg.REPL.Prompt

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cc.Cfg.REPL.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "primordial REPL")
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	// Accumulate lines while braces are open so struct bodies can span lines.
	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		buf.WriteString(line)
		buf.WriteString("\n")
		if openBraces(buf.String()) > 0 {
			rl.SetPrompt(continuationPrompt)
			continue
		}
		rl.SetPrompt(prompt)

		input := buf.String()
		buf.Reset()
		if quit := evalREPLLine(out, cmd.ErrOrStderr(), input); quit {
			break
		}
	}
	return nil
}

// evalREPLLine handles one complete input and reports whether to exit.
func evalREPLLine(out, errOut io.Writer, input string) bool {
	line := strings.TrimSpace(input)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return handleDotCommand(out, errOut, line)
	}

	rendered, err := renderFragment(line)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return false
	}
	_, _ = io.WriteString(out, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		_, _ = fmt.Fprintln(out)
	}
	return false
}

// renderFragment tries an expression first and falls back to a type. The
// expression error is reported when neither parses.
func renderFragment(src string) (string, error) {
	e, err := parser.ParseExpr(src)
	if err == nil {
		return renderNode(e)
	}
	if t, terr := parser.ParseType(src); terr == nil {
		return renderNode(t)
	}
	return "", err
}

func handleDotCommand(out, errOut io.Writer, line string) bool {
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".type":
		t, err := parser.ParseType(rest)
		if err == nil {
			var s string
			if s, err = renderNode(t); err == nil {
				_, _ = io.WriteString(out, strings.TrimSuffix(s, "\n")+"\n")
			}
		}
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}

	case ".ops":
		renderOpsTable(out, operatorInfos(), false)

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .type <source>  Parse the input as a type only
  .ops            List operators
  .quit / .exit   Exit the REPL

Tips:
  - Any other line is parsed as an expression, then as a type
  - Unclosed braces continue the input on the next line
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func openBraces(s string) int {
	return strings.Count(s, "{") - strings.Count(s, "}")
}

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".type"),
		readline.PcItem(".ops"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
		readline.PcItem("struct"),
		readline.PcItem("union"),
		readline.PcItem("interface"),
		readline.PcItem("func"),
	)
}
