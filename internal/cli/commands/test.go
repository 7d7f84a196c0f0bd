package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/cli/output"
	"github.com/leapstack-labs/primordial/internal/conformance"
)

// TestCaseOutput is the JSON form of one conformance case.
type TestCaseOutput struct {
	Suite  string `json:"suite"`
	Case   string `json:"case"`
	Kind   string `json:"kind"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// TestOutput is the JSON form of a conformance run.
type TestOutput struct {
	RunID  string           `json:"run_id"`
	Suites int              `json:"suites"`
	Passed int              `json:"passed"`
	Failed int              `json:"failed"`
	Cases  []TestCaseOutput `json:"cases"`
}

// NewTestCommand creates the test command.
func NewTestCommand() *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "test [dir]",
		Short: "Run YAML conformance suites",
		Long: `Run every .yaml suite in dir (default: the suites_dir setting).

Each case parses its input as a file, type or expression and compares the
rendering with the expected output or the error with the expected message.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			dir := cc.Cfg.SuitesDir
			if len(args) == 1 {
				dir = args[0]
			}
			if !cmd.Flags().Changed("parallel") {
				parallel = cc.Cfg.Parallel
			}
			return runTest(cmd, cc, dir, parallel)
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "Suites evaluated at once (0 = GOMAXPROCS)")
	return cmd
}

func runTest(cmd *cobra.Command, cc *CommandContext, dir string, parallel int) error {
	report, err := conformance.Run(cmd.Context(), dir, conformance.Options{
		Parallel: parallel,
		Logger:   cc.Logger,
	})
	if report == nil {
		return err
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if jerr := r.JSON(testOutput(report)); jerr != nil {
			return jerr
		}
	default:
		markdown := r.EffectiveMode() == output.ModeMarkdown
		r.Header(1, "Conformance")
		renderSuiteTable(r.Writer(), report, markdown)
		if failures := report.Failures(); len(failures) > 0 {
			r.Println("")
			r.Header(2, "Failures")
			for _, f := range failures {
				r.Printf("%s/%s: %v\n", f.Suite, f.Case, f.Err)
			}
		}
		r.Println("")
		r.Println(r.Styles().Muted.Render(fmt.Sprintf("run %s: %d passed, %d failed in %s",
			report.RunID, report.Passed, report.Failed, report.Elapsed.Round(time.Microsecond))))
		r.Status(report.Failed == 0)
	}

	return err
}

func testOutput(report *conformance.Report) TestOutput {
	out := TestOutput{
		RunID:  report.RunID,
		Suites: report.Suites,
		Passed: report.Passed,
		Failed: report.Failed,
		Cases:  make([]TestCaseOutput, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		c := TestCaseOutput{Suite: res.Suite, Case: res.Case, Kind: string(res.Kind), Passed: res.Passed}
		if res.Err != nil {
			c.Error = res.Err.Error()
		}
		out.Cases = append(out.Cases, c)
	}
	return out
}

type suiteSummary struct {
	name           string
	passed, failed int
}

func summarizeSuites(report *conformance.Report) []suiteSummary {
	var out []suiteSummary
	index := make(map[string]int)
	for _, res := range report.Results {
		i, ok := index[res.Suite]
		if !ok {
			i = len(out)
			index[res.Suite] = i
			out = append(out, suiteSummary{name: res.Suite})
		}
		if res.Passed {
			out[i].passed++
		} else {
			out[i].failed++
		}
	}
	return out
}

func renderSuiteTable(w io.Writer, report *conformance.Report, markdown bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Suite", "Cases", "Passed", "Failed"})
	for _, s := range summarizeSuites(report) {
		t.AppendRow(table.Row{s.name, s.passed + s.failed, s.passed, s.failed})
	}
	t.AppendFooter(table.Row{"Total", report.Passed + report.Failed, report.Passed, report.Failed})
	if markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
