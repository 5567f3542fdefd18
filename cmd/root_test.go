package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treesel/internal/config"
	"github.com/mouse-blink/treesel/internal/controller"
	"github.com/mouse-blink/treesel/internal/domain"
)

// isolateConfig keeps the developer's own config out of the tests.
func isolateConfig(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("TREESEL_CONFIG", "")
}

// resetGlobals clears the wired workflow so setup builds a real one, and
// restores the previous globals afterwards.
func resetGlobals(t *testing.T) {
	t.Helper()

	originalWorkflow, originalUI, originalCfg := workflow, ui, cfg
	originalConfig, originalVerbose := configFlag, verboseFlag

	workflow, ui = nil, nil

	t.Cleanup(func() {
		workflow, ui, cfg = originalWorkflow, originalUI, originalCfg
		configFlag, verboseFlag = originalConfig, originalVerbose
	})
}

func newTestRootCmd(out *bytes.Buffer) *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(newListCmd(), newSelectCmd())
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}

func writeDoc(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: demo\ntags:\n  - red\n  - green\n"), 0o600))

	return path
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "treesel", cmd.Use)
	assert.Equal(t, rootLongDescription, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}

func TestRootCmd_WiresWorkflow(t *testing.T) {
	isolateConfig(t)
	resetGlobals(t)

	var out bytes.Buffer

	cmd := newTestRootCmd(&out)
	cmd.SetArgs([]string{"list", writeDoc(t)})
	require.NoError(t, cmd.Execute())

	require.NotNil(t, workflow)
	assert.IsType(t, &controller.SimpleUI{}, ui)
	assert.Contains(t, out.String(), "name: demo")
	assert.Contains(t, out.String(), "[1]: green")
}

func TestRootCmd_SelectEndToEnd(t *testing.T) {
	isolateConfig(t)
	resetGlobals(t)

	var out bytes.Buffer

	cmd := newTestRootCmd(&out)
	cmd.SetArgs([]string{"select", writeDoc(t), "-r", "1.0:1.1", "--show-items=false"})
	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "1.0")
	assert.Contains(t, output, "1.1")
	assert.Contains(t, output, "TOTAL 2")
	assert.NotContains(t, output, "green")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	isolateConfig(t)
	resetGlobals(t)

	path := filepath.Join(t.TempDir(), "treesel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  mode: tui\nselection:\n  single: true\n"), 0o600))

	cmd := newTestRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "list", writeDoc(t)})
	require.NoError(t, cmd.Execute())

	assert.True(t, cfg.Selection.Single)
	assert.IsType(t, &controller.TUI{}, ui)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	isolateConfig(t)
	resetGlobals(t)
	t.Setenv("TREESEL_UI_MODE", "fancy")

	cmd := newTestRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", writeDoc(t)})

	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Nil(t, workflow)
}

func TestRootCmd_ListErrors(t *testing.T) {
	isolateConfig(t)
	resetGlobals(t)

	cmd := newTestRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"select", writeDoc(t), "-s", "7"})

	err := cmd.Execute()
	require.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, config.Config{Log: config.LogConfig{Level: "warn"}}, false)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()

	logger, err = newLogger(&buf, config.Config{Log: config.LogConfig{Level: "warn"}}, true)
	require.NoError(t, err)

	logger.Debug("verbose")
	assert.True(t, strings.Contains(buf.String(), "verbose"))

	_, err = newLogger(&buf, config.Config{Log: config.LogConfig{Level: "loud"}}, false)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestSourceArg(t *testing.T) {
	assert.Equal(t, ".", sourceArg(nil))
	assert.Equal(t, "doc.yaml", sourceArg([]string{"doc.yaml"}))
}
