package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/cli/output"
)

// errCheckFailed is returned after a FAIL so the process exits non-zero.
var errCheckFailed = errors.New("check failed")

// CheckResult is the JSON form of a check.
type CheckResult struct {
	File   string `json:"file"`
	Passed bool   `json:"passed"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a file, print its rendering and report PASS or FAIL",
		Long: `Parse a file and print the reconstructed source followed by PASS.

When the file does not parse the error is printed followed by FAIL and the
command exits with a non-zero status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, path string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	res := CheckResult{File: path}
	f, err := cc.ParseFile(cmd.Context(), cmd, path)
	if err == nil {
		res.Output, err = renderNode(f)
	}
	if err != nil {
		res.Error = err.Error()
	}
	res.Passed = err == nil
	cc.Logger.Debug("check finished", "file", path, "passed", res.Passed)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if jerr := r.JSON(res); jerr != nil {
			return jerr
		}
	default:
		if res.Passed {
			r.Code("primordial", res.Output)
		} else {
			r.Println(res.Error)
		}
		r.Status(res.Passed)
	}

	if !res.Passed {
		return errCheckFailed
	}
	return nil
}
