package executor

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clikit/internal/core"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
}

func TestRunSubprocessCapturesStdout(t *testing.T) {
	requireShell(t)
	cc, _ := newTestContext()
	out, err := RunSubprocess(context.Background(), cc, SubprocessConfig{
		Command: "sh",
		Args:    []string{"-c", "printf 'output data'"},
	})
	require.NoError(t, err)
	assert.Equal(t, "output data", out)
}

func TestRunSubprocessExitError(t *testing.T) {
	requireShell(t)
	cc, _ := newTestContext()
	_, err := RunSubprocess(context.Background(), cc, SubprocessConfig{
		Command: "sh",
		Args:    []string{"-c", "printf 'error output' >&2; exit 1"},
	})
	require.Error(t, err)
	var ce *core.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, core.CodeSubprocessEx, ce.Code)
	assert.Equal(t, "sh exited with code 1", ce.Message)
	assert.Equal(t, "error output", ce.Details)
}

func TestRunSubprocessSpawnError(t *testing.T) {
	cc, _ := newTestContext()
	_, err := RunSubprocess(context.Background(), cc, SubprocessConfig{Command: "clikit-definitely-missing-binary"})
	require.Error(t, err)
	assert.Equal(t, core.CodeSubprocess, core.CodeOf(err))
	assert.Equal(t, "Failed to spawn clikit-definitely-missing-binary", err.Error())
}

func TestRunSubprocessEnvAndDir(t *testing.T) {
	requireShell(t)
	shell, err := exec.LookPath("sh")
	require.NoError(t, err)
	dir := t.TempDir()
	cc, _ := newTestContext()
	out, err := RunSubprocess(context.Background(), cc, SubprocessConfig{
		Command: shell,
		Args:    []string{"-c", `printf '%s|%s' "$GREETING" "$(pwd)"`},
		Dir:     dir,
		Env:     map[string]string{"GREETING": "hi"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "hi|")
	assert.Contains(t, out, dir)
}

func TestRunSubprocessCanceled(t *testing.T) {
	requireShell(t)
	cc, _ := newTestContext()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := RunSubprocess(ctx, cc, SubprocessConfig{
		Command: "sh",
		Args:    []string{"-c", "exec sleep 5"},
	})
	require.Error(t, err)
	assert.Equal(t, core.CodeCanceled, core.CodeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
