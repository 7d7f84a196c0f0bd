package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "primordial.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.BoolP("verbose", "v", false, "verbose")
	flags.StringP("output", "o", "", "output format")
	flags.String("log-level", "", "log level")
	flags.Bool("no-color", false, "disable color")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	expected := Default()
	assert.Equal(t, expected, cfg)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `output: json
log_level: debug
parallel: 4
watch:
  debounce: 250ms
  extensions: [.pm, .prim]
repl:
  history_file: /tmp/hist
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, []string{".pm", ".prim"}, cfg.Watch.Extensions)
	assert.Equal(t, "/tmp/hist", cfg.REPL.HistoryFile)
	assert.Equal(t, DefaultPrompt, cfg.REPL.Prompt, "unset nested keys keep defaults")
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_FindsFileUpward(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "suites_dir: conformance\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "conformance", cfg.SuitesDir)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "output: markdown\nlog_level: info\n")

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PRIMORDIAL_OUTPUT", "json")
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.OutputFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Setenv("PRIMORDIAL_OUTPUT", "json")
		flags := newFlags()
		require.NoError(t, flags.Set("output", "text"))

		cfg, err := Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.OutputFormat)
	})

	t.Run("unset flag falls back to env", func(t *testing.T) {
		t.Setenv("PRIMORDIAL_OUTPUT", "json")
		cfg, err := Load(path, newFlags())
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.OutputFormat)
	})
}

func TestLoad_EnvNestedAndTyped(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRIMORDIAL_WATCH__DEBOUNCE", "2s")
	t.Setenv("PRIMORDIAL_WATCH__EXTENSIONS", ".pm,.prim")
	t.Setenv("PRIMORDIAL_PARALLEL", "3")
	t.Setenv("PRIMORDIAL_COLOR", "false")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, []string{".pm", ".prim"}, cfg.Watch.Extensions)
	assert.Equal(t, 3, cfg.Parallel)
	assert.False(t, cfg.Color)
}

func TestLoad_Flags(t *testing.T) {
	t.Chdir(t.TempDir())
	flags := newFlags()
	require.NoError(t, flags.Set("config", "ignored.yaml"))
	require.NoError(t, flags.Set("no-color", "true"))
	require.NoError(t, flags.Set("verbose", "true"))
	require.NoError(t, flags.Set("log-level", "error"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		substr string
	}{
		{name: "unknown key", body: "colour: true\n", substr: "colour"},
		{name: "bad output", body: "output: yaml\n", substr: "output must be one of"},
		{name: "bad level", body: "log_level: loud\n", substr: "log_level"},
		{name: "bad format", body: "log_format: xml\n", substr: "log_format must be text or json"},
		{name: "negative parallel", body: "parallel: -1\n", substr: "parallel must not be negative"},
		{name: "bad duration", body: "watch:\n  debounce: soon\n", substr: "debounce"},
		{name: "bad extension", body: "watch:\n  extensions: [pm]\n", substr: "must start with a dot"},
		{name: "malformed yaml", body: "output: [\n", substr: "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Default()
	logger, err := NewLogger(cfg, &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	cfg.LogFormat = "json"
	cfg.Verbose = true
	logger, err = NewLogger(cfg, &buf)
	require.NoError(t, err)
	logger.Debug("traced")
	assert.Contains(t, buf.String(), `"msg":"traced"`)

	cfg.LogFormat = "xml"
	_, err = NewLogger(cfg, &buf)
	assert.Error(t, err)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Default(), FromContext(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := Default()
	cfg.Parallel = 9
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, FromContext(ctx))

	logger, err := NewLogger(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Same(t, logger, GetLogger(WithLogger(ctx, logger)))
}
