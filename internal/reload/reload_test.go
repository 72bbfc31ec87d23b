package reload

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
	"github.com/aeskafi/HistoryManager/internal/shell"
)

// fakeRunner records invocations and returns canned results.
type fakeRunner struct {
	calls  [][]string
	output []byte
	err    error
	block  bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.output, f.err
}

func profile(t *testing.T, shellPath string) *shell.Profile {
	t.Helper()
	p, err := shell.Resolve(shellPath, t.TempDir())
	require.NoError(t, err)
	return p
}

func TestReload_Commands(t *testing.T) {
	tests := []struct {
		shellPath string
		want      []string
	}{
		{"/bin/bash", []string{"/bin/bash", "-c", "history -c && history -r"}},
		{"/bin/zsh", []string{"/bin/zsh", "-c", "fc -R"}},
		{"/usr/bin/fish", []string{"/usr/bin/fish", "-c", "history --merge"}},
	}

	for _, tt := range tests {
		t.Run(tt.shellPath, func(t *testing.T) {
			runner := &fakeRunner{}
			trig := &Trigger{Runner: runner}

			res := trig.Reload(context.Background(), profile(t, tt.shellPath))

			require.Len(t, runner.calls, 1)
			assert.Equal(t, tt.want, runner.calls[0])
			assert.True(t, res.Success())
			assert.False(t, res.Skipped)
			assert.NoError(t, res.Err)
		})
	}
}

func TestReload_KshSkipped(t *testing.T) {
	runner := &fakeRunner{}
	trig := &Trigger{Runner: runner}

	res := trig.Reload(context.Background(), profile(t, "/bin/ksh"))

	assert.Empty(t, runner.calls, "no subprocess may be spawned for ksh")
	assert.True(t, res.Skipped)
	assert.False(t, res.Success())
	assert.NoError(t, res.Err)
	assert.Contains(t, res.Message, "Ksh cannot reload")
}

func TestReload_Failure(t *testing.T) {
	runner := &fakeRunner{output: []byte("fc: no such builtin\n"), err: errors.New("exit status 127")}
	trig := &Trigger{Runner: runner}

	res := trig.Reload(context.Background(), profile(t, "/bin/zsh"))

	require.Error(t, res.Err)
	assert.True(t, histerrors.IsReloadFailed(res.Err))
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, "fc: no such builtin", res.Output)
	assert.NotEmpty(t, res.Error)
	assert.False(t, res.Success())
	assert.Equal(t, histerrors.ExitOK, histerrors.ExitCode(res.Err), "reload failure never fails the run")
}

func TestReload_Timeout(t *testing.T) {
	runner := &fakeRunner{block: true}
	trig := &Trigger{Runner: runner, Timeout: 20 * time.Millisecond}

	res := trig.Reload(context.Background(), profile(t, "/bin/bash"))

	require.Error(t, res.Err)
	assert.True(t, histerrors.IsReloadFailed(res.Err))
	assert.Contains(t, res.Error, "timed out")
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	trig := NewTrigger(time.Second, nil)

	t.Run("success", func(t *testing.T) {
		res := trig.Reload(context.Background(), &shell.Profile{Kind: shell.Bash, Interpreter: sh, Reload: "echo reloaded"})
		require.NoError(t, res.Err)
		assert.Equal(t, "reloaded", res.Output)
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		res := trig.Reload(context.Background(), &shell.Profile{Kind: shell.Bash, Interpreter: sh, Reload: "echo nope >&2; exit 3"})
		require.Error(t, res.Err)
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "nope", res.Output)
	})
}
