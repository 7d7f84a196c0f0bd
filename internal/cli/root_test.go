package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"version", "fmt", "check", "dump", "ops", "expr", "type", "repl", "test", "watch", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, "command %q", name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"config", "verbose", "output", "log-level", "log-format", "no-color"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "flag %q should exist", name)
	}
	assert.Equal(t, "v", root.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Equal(t, "o", root.PersistentFlags().Lookup("output").Shorthand)
}

func TestRootCommand_OutputFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := executeRoot(t, "-o", "json", "expr", "1 + 2")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1 + 2", got["input"])
	assert.Equal(t, "(1) + (2)", strings.TrimSpace(got["output"]))
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "primordial.yaml"), []byte("output: markdown\n"), 0o644))

	out, _, err := executeRoot(t, "type", "int?")
	require.NoError(t, err)
	assert.Equal(t, "```primordial\nint?\n```\n", out)

	out, _, err = executeRoot(t, "--output", "text", "type", "int?")
	require.NoError(t, err)
	assert.Equal(t, "int?\n", out, "flags override the config file")
}

func TestRootCommand_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRIMORDIAL_OUTPUT", "text")

	out, _, err := executeRoot(t, "type", "u8[_]")
	require.NoError(t, err)
	assert.Equal(t, "u8[_]\n", out)
}

func TestRootCommand_BadConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "unknown key", body: "colour: true\n", wantErr: "unable to decode config"},
		{name: "invalid output", body: "output: html\n", wantErr: "invalid configuration"},
		{name: "malformed yaml", body: "output: [\n", wantErr: "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			path := filepath.Join(dir, "custom.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, _, err := executeRoot(t, "--config", path, "ops")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCommand_HelpSkipsConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "primordial.yaml"), []byte("colour: true\n"), 0o644))

	out, _, err := executeRoot(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "canonical form")
}

func TestCompletionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := executeRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "primordial")

	_, _, err = executeRoot(t, "completion", "tcsh")
	require.Error(t, err)
}
