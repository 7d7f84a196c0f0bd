package conformance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrSuiteFailed is returned by Run when at least one case fails.
var ErrSuiteFailed = errors.New("conformance: suite failed")

// Options configures Run.
type Options struct {
	// Parallel bounds how many suites are evaluated at once. Zero means
	// GOMAXPROCS.
	Parallel int
	Logger   *slog.Logger
}

// Result is the outcome of one case.
type Result struct {
	Suite    string
	Case     string
	Kind     Kind
	Passed   bool
	Err      error
	Duration time.Duration
}

// Report collects the results of one run in suite file order.
type Report struct {
	RunID   string
	Suites  int
	Results []Result
	Passed  int
	Failed  int
	Elapsed time.Duration
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Run loads every suite in dir and evaluates them concurrently. The report is
// returned even when cases fail; the error then wraps ErrSuiteFailed.
func Run(ctx context.Context, dir string, opts Options) (*Report, error) {
	suites, err := Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load suites: %w", err)
	}
	return RunSuites(ctx, suites, opts)
}

// RunSuites evaluates already loaded suites.
func RunSuites(ctx context.Context, suites []*Suite, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	report := &Report{RunID: uuid.New().String(), Suites: len(suites)}
	logger = logger.With("run_id", report.RunID)
	logger.Info("conformance run started", "suites", len(suites), "parallel", parallel)
	start := time.Now()

	// Each suite writes only its own slot.
	perSuite := make([][]Result, len(suites))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i, s := range suites {
		eg.Go(func() error {
			results, err := runSuite(egctx, s)
			perSuite[i] = results
			if err != nil {
				return err
			}
			logger.Debug("suite finished", "suite", s.Name, "cases", len(results))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, results := range perSuite {
		for _, res := range results {
			if res.Passed {
				report.Passed++
			} else {
				report.Failed++
				logger.Warn("case failed", "suite", res.Suite, "case", res.Case, "error", res.Err)
			}
			report.Results = append(report.Results, res)
		}
	}
	report.Elapsed = time.Since(start)
	logger.Info("conformance run finished", "passed", report.Passed, "failed", report.Failed, "elapsed", report.Elapsed)

	if report.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d cases failed", ErrSuiteFailed, report.Failed, len(report.Results))
	}
	return report, nil
}

func runSuite(ctx context.Context, s *Suite) ([]Result, error) {
	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		start := time.Now()
		err := c.Check()
		results = append(results, Result{
			Suite:    s.Name,
			Case:     c.Name,
			Kind:     c.Kind,
			Passed:   err == nil,
			Err:      err,
			Duration: time.Since(start),
		})
	}
	return results, nil
}
