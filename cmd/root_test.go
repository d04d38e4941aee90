package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gravity/internal/api"
)

// execute runs the root command with the given arguments and returns its
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeCatalog(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func simpleCatalog(t *testing.T) string {
	return writeCatalog(t, map[string]string{
		"db.yaml":  "name: db\nversion: 1.2.0\ndataRequirements:\n  - storeName: db-main\n    storeKind: postgresql\n",
		"api.yaml": "name: api\nversion: 2.0.0\nrequires:\n  - name: db\n    range: \"^1.0.0\"\n",
	})
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3-test")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gravity version 1.2.3-test")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--catalog", simpleCatalog(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog OK: 2 service(s), 1 dependency edge(s)")
}

func TestValidateCommandDetectsCycle(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"a.yaml": "name: a\nversion: 1.0.0\nrequires:\n  - name: b\n",
		"b.yaml": "name: b\nversion: 1.0.0\nrequires:\n  - name: a\n",
	})

	_, err := execute(t, "validate", "--catalog", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestPlanCommand(t *testing.T) {
	out, err := execute(t, "plan", "--catalog", simpleCatalog(t), "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "service: db")
	assert.Contains(t, out, "version: 1.2.0")
	assert.Contains(t, out, "service: api")
}

func TestPlanCommandUnsatisfiableRange(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"db.yaml":  "name: db\nversion: 0.9.0\n",
		"api.yaml": "name: api\nversion: 2.0.0\nrequires:\n  - name: db\n    range: \"^1.0.0\"\n",
	})

	_, err := execute(t, "plan", "--catalog", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version conflict: db")
}

func TestUpCommandWithSimDriver(t *testing.T) {
	out, err := execute(t, "up",
		"--catalog", simpleCatalog(t),
		"--config", t.TempDir(),
		"--driver", "sim",
		"--debug",
		"-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"AllReady"`)
	assert.Contains(t, out, `"ready"`)
}

func TestUpCommandRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "up", "--catalog", simpleCatalog(t), "--driver", "sim", "-o", "xml")
	require.Error(t, err)
}

func TestStatusCommandWithSimDriver(t *testing.T) {
	// A fresh sim driver tracks no services.
	out, err := execute(t, "status", "--driver", "sim", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "[]")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCodePartialFailure, getExitCode(&outcomeError{outcome: api.OutcomePartialFailure}))
	assert.Equal(t, ExitCodeAborted, getExitCode(&outcomeError{outcome: api.OutcomeAbortedByUser}))
	assert.Equal(t, ExitCodeAborted, getExitCode(api.ErrCancelled))
	assert.Equal(t, ExitCodeError, getExitCode(errors.New("boom")))
}
