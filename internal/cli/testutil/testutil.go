// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/cli/config"
	"github.com/leapstack-labs/primordial/internal/testutil"
)

// WriteSource writes body to name inside dir and returns the full path.
func WriteSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// Context returns a command context carrying cfg and a test logger. A nil
// cfg means the defaults with the given output mode.
func Context(t *testing.T, cfg *config.Config) context.Context {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := config.WithConfig(context.Background(), cfg)
	return config.WithLogger(ctx, testutil.NewTestLogger(t))
}

// ConfigWithOutput returns the default config with the output format set.
func ConfigWithOutput(format string) *config.Config {
	cfg := config.Default()
	cfg.OutputFormat = format
	return cfg
}

// Result holds the captured streams of one command run.
type Result struct {
	Out    string
	ErrOut string
	Err    error
}

// Run executes cmd with args against ctx and captures its output. Usage and
// error printing are silenced as on the root command, so a failing command
// leaves only its own output behind.
func Run(ctx context.Context, cmd *cobra.Command, stdin string, args ...string) Result {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return Result{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
