package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/cli/output"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool
	Diff  bool
}

// FmtResult is the JSON form of one formatted file.
type FmtResult struct {
	File      string `json:"file"`
	Changed   bool   `json:"changed"`
	Formatted string `json:"formatted,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Rewrite source files in canonical form",
		Long: `Parse each file and print its canonical rendering.

With --write the file is replaced when the rendering differs. With --diff a
unified diff against the original is printed instead. A file named "-" is read
from standard input.`,
		Example: `  primordial fmt main.pm
  primordial fmt --diff lib/*.pm
  primordial fmt -w main.pm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Diff, "diff", "d", false, "Print a unified diff instead of the rendering")
	return cmd
}

func runFmt(cmd *cobra.Command, paths []string, opts *FmtOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	ctx := cmd.Context()

	var (
		errs    []error
		results []FmtResult
	)
	for _, path := range paths {
		res, err := formatOne(cmd, cc, path, opts)
		if err != nil {
			errs = append(errs, err)
			res.Error = err.Error()
			if r.EffectiveMode() != output.ModeJSON {
				_, _ = fmt.Fprintf(r.ErrWriter(), "%v\n", err)
			}
		}
		results = append(results, res)
		if ctx.Err() != nil {
			break
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(results); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

func formatOne(cmd *cobra.Command, cc *CommandContext, path string, opts *FmtOptions) (FmtResult, error) {
	res := FmtResult{File: path}
	r := cc.Renderer

	src, err := readSource(cmd, path)
	if err != nil {
		return res, err
	}
	f, err := cc.ParseSource(cmd.Context(), src, path)
	if err != nil {
		return res, err
	}
	formatted, err := renderNode(f)
	if err != nil {
		return res, err
	}
	res.Changed = formatted != string(src)
	res.Formatted = formatted

	if opts.Diff {
		if res.Changed {
			diff, err := unifiedDiff(path, string(src), formatted)
			if err != nil {
				return res, err
			}
			if r.EffectiveMode() != output.ModeJSON {
				r.Code("diff", diff)
			}
		}
	} else if !opts.Write && r.EffectiveMode() != output.ModeJSON {
		r.Code("primordial", formatted)
	}

	if opts.Write && res.Changed {
		if path == "-" {
			return res, errors.New("cannot write standard input")
		}
		info, err := os.Stat(path)
		if err != nil {
			return res, err
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return res, fmt.Errorf("write %s: %w", path, err)
		}
		cc.Logger.Info("formatted", "file", path)
	}
	return res, nil
}

func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return src, nil
}

func unifiedDiff(path, original, formatted string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}

