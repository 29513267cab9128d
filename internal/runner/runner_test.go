package runner

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmrf/internal/bar"
	"rmrf/internal/config"
	"rmrf/internal/errors"
	"rmrf/internal/tui"
)

type failingFs struct {
	afero.Fs
	failOn string
}

func (f failingFs) Remove(name string) error {
	if name == f.failOn {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Remove(name)
}

func buildTree(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, dir := range []string{
		"/w/app/node_modules/dep",
		"/w/app/src",
		"/w/.git/node_modules",
		"/w/lib/node_modules",
	} {
		require.NoError(t, fsys.MkdirAll(dir, 0o755))
	}
	for _, file := range []string{
		"/w/app/node_modules/dep/index.js",
		"/w/app/src/main.js",
		"/w/lib/node_modules/x.js",
	} {
		require.NoError(t, afero.WriteFile(fsys, file, []byte("data"), 0o644))
	}
	return fsys
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	return ok
}

func newTestRunner(cfg config.Config, fsys afero.Fs, out *bytes.Buffer, opts ...Option) *Runner {
	base := []Option{
		WithFs(fsys),
		WithOutput(out),
		WithWorkDir("/elsewhere"),
		WithAnalyzer(PlainAnalyzer),
		WithDryRunCost(time.Nanosecond),
		WithoutSignals(),
	}
	return New(cfg, append(base, opts...)...)
}

func TestRun_IncludeExcludePlain(t *testing.T) {
	fsys := buildTree(t)
	var out bytes.Buffer
	cfg := config.Config{
		RootPath:    "/w",
		Include:     []string{"node_modules"},
		Exclude:     []string{".git"},
		NoAnimation: true,
	}

	outcome := newTestRunner(cfg, fsys, &out).Run()
	require.True(t, outcome.Succeeded, "err: %v", outcome.Err)
	assert.Equal(t, ExitOK, outcome.ExitCode())

	assert.False(t, exists(t, fsys, "/w/app/node_modules"))
	assert.False(t, exists(t, fsys, "/w/lib/node_modules"))
	assert.True(t, exists(t, fsys, "/w/app/src/main.js"))
	assert.True(t, exists(t, fsys, "/w/.git/node_modules"))

	// 3 directories: 33%, 66%, 100%
	assert.Equal(t,
		"Analyzing...\nStart deleting\n3 directories\nDeleted 33%\nDeleted 66%\nDeleted 100%\nOver\n",
		out.String())
}

func TestRun_WholeRootKeepsWorkingDirectory(t *testing.T) {
	fsys := buildTree(t)
	var out bytes.Buffer
	cfg := config.Config{RootPath: "/w", NoAnimation: true}

	outcome := newTestRunner(cfg, fsys, &out, WithWorkDir("/w")).Run()
	require.True(t, outcome.Succeeded, "err: %v", outcome.Err)

	assert.True(t, exists(t, fsys, "/w"))
	left, err := afero.ReadDir(fsys, "/w")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	fsys := buildTree(t)
	var out bytes.Buffer
	cfg := config.Config{RootPath: "/w", DryRun: true, NoAnimation: true}

	outcome := newTestRunner(cfg, fsys, &out).Run()
	require.True(t, outcome.Succeeded)
	assert.True(t, exists(t, fsys, "/w/app/node_modules/dep/index.js"))
	assert.True(t, strings.HasSuffix(out.String(), "Deleted 100%\nOver\n"))
}

func TestRun_FailFast(t *testing.T) {
	mem := buildTree(t)
	fsys := failingFs{Fs: mem, failOn: "/w/app/src/main.js"}
	var out bytes.Buffer
	cfg := config.Config{RootPath: "/w", NoAnimation: true}

	outcome := newTestRunner(cfg, fsys, &out).Run()
	require.False(t, outcome.Succeeded)
	assert.Equal(t, ExitFailed, outcome.ExitCode())
	assert.True(t, errors.IsDeleteFailure(outcome.Err))

	// flattened order is /w/.git/..., /w/app/node_modules/..., /w/app/src, ...
	assert.False(t, exists(t, mem, "/w/.git"))
	assert.False(t, exists(t, mem, "/w/app/node_modules"))
	assert.True(t, exists(t, mem, "/w/app/src/main.js"))
	assert.True(t, exists(t, mem, "/w/lib/node_modules/x.js"))

	assert.True(t, strings.HasSuffix(out.String(), "Failed\n"+outcome.Err.Error()+"\n"))
	assert.NotContains(t, out.String(), "Deleted 100%")
}

func TestRun_AnalysisFailure(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Config{RootPath: "/missing", NoAnimation: true}

	outcome := newTestRunner(cfg, afero.NewMemMapFs(), &out).Run()
	require.False(t, outcome.Succeeded)
	assert.True(t, errors.IsListFailure(outcome.Err))
	assert.Equal(t, "Analyzing...\nFailed\n"+outcome.Err.Error()+"\n", out.String())
}

func TestRun_NothingMatched(t *testing.T) {
	fsys := buildTree(t)
	var out bytes.Buffer
	cfg := config.Config{RootPath: "/w", Include: []string{"target"}, NoAnimation: true}

	outcome := newTestRunner(cfg, fsys, &out).Run()
	require.True(t, outcome.Succeeded)
	assert.Equal(t, "Analyzing...\nStart deleting\n0 directories\nDeleted 100%\nOver\n", out.String())
}

func TestRun_AnimatedFrames(t *testing.T) {
	fsys := buildTree(t)
	var out bytes.Buffer
	cfg := config.Config{RootPath: "/w", Include: []string{"node_modules"}, ASCIITheme: true}

	outcome := newTestRunner(cfg, fsys, &out, WithAnalyzer(func(_ io.Writer, work tui.Work) ([]string, error) {
		return work()
	})).Run()
	require.True(t, outcome.Succeeded)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\x1b[?25l\x1b[1G["))
	assert.Contains(t, s, "\x1b[34G100")
	assert.True(t, strings.HasSuffix(s, "\x1b[32mOver\x1b[0m\x1b[?25h"))
}

func TestRun_MascotUsesClock(t *testing.T) {
	fsys := buildTree(t)
	var out bytes.Buffer
	cfg := config.Config{RootPath: "/w", CatAnimation: true}

	var mu sync.Mutex
	now := time.Unix(0, 0)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}

	outcome := newTestRunner(cfg, fsys, &out, WithClock(clock), WithAnalyzer(func(_ io.Writer, work tui.Work) ([]string, error) {
		return work()
	})).Run()
	require.True(t, outcome.Succeeded)
	assert.Contains(t, out.String(), "\x1b[42G(=^o^=)")
}

func TestHandleInterrupts_RecoversAndExits(t *testing.T) {
	var out bytes.Buffer
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	code := -1

	sig <- syscall.SIGINT
	handleInterrupts(sig, done, bar.NewRecoverer(&out, bar.Options{}), func(c int) { code = c })

	assert.Equal(t, ExitInterrupted, code)
	assert.Equal(t, "\x1b[0m\x1b[?25h", out.String())
}

func TestHandleInterrupts_StopWithoutSignal(t *testing.T) {
	var out bytes.Buffer
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	close(done)

	handleInterrupts(sig, done, bar.NewRecoverer(&out, bar.Options{}), func(int) {
		t.Fatal("exit must not be called")
	})
	assert.Empty(t, out.String())
}

func TestWatchInterrupts_Stop(t *testing.T) {
	stop := watchInterrupts(bar.Recoverer{}, func(int) {})
	stop()
}
