// Package runner drives a whole deletion run: analysis, the fail-fast delete
// loop, progress drawing and the final outcome.
package runner

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"rmrf/internal/bar"
	"rmrf/internal/config"
	"rmrf/internal/deleter"
	"rmrf/internal/logger"
	"rmrf/internal/scanner"
	"rmrf/internal/tui"
	"rmrf/pkg/utils"
)

const (
	ExitOK          = 0
	ExitFailed      = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Outcome is the result of a run.
type Outcome struct {
	Succeeded bool
	Err       error
}

// ExitCode maps the outcome onto a process exit status.
func (o Outcome) ExitCode() int {
	if o.Succeeded {
		return ExitOK
	}
	return ExitFailed
}

// Analyzer runs work, optionally decorating the wait on out.
type Analyzer func(out io.Writer, work tui.Work) ([]string, error)

// PlainAnalyzer prints a single line and runs work.
func PlainAnalyzer(out io.Writer, work tui.Work) ([]string, error) {
	fmt.Fprintln(out, "Analyzing...")
	return work()
}

type Runner struct {
	cfg        config.Config
	fs         afero.Fs
	out        io.Writer
	workDir    string
	now        func() time.Time
	exit       func(int)
	analyze    Analyzer
	dryRunCost time.Duration
	signals    bool
}

type Option func(*Runner)

func WithFs(fsys afero.Fs) Option { return func(r *Runner) { r.fs = fsys } }

func WithOutput(w io.Writer) Option { return func(r *Runner) { r.out = w } }

// WithWorkDir overrides the directory that is never removed itself.
func WithWorkDir(dir string) Option { return func(r *Runner) { r.workDir = dir } }

func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

func WithAnalyzer(a Analyzer) Option { return func(r *Runner) { r.analyze = a } }

func WithDryRunCost(d time.Duration) Option { return func(r *Runner) { r.dryRunCost = d } }

// WithoutSignals skips installing the interrupt handler.
func WithoutSignals() Option { return func(r *Runner) { r.signals = false } }

// New creates a runner for an already normalized configuration.
func New(cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		fs:      afero.NewOsFs(),
		out:     os.Stdout,
		workDir: deleter.WorkingDir(),
		now:     time.Now,
		exit:    os.Exit,
		signals: true,
	}
	if cfg.NoAnimation {
		r.analyze = PlainAnalyzer
	} else {
		r.analyze = tui.Analyze
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) barOptions() bar.Options {
	theme := bar.ThemeFira
	if r.cfg.ASCIITheme {
		theme = bar.ThemeASCII
	}
	return bar.Options{
		NoAnimation: r.cfg.NoAnimation,
		Theme:       theme,
		Cat:         r.cfg.CatAnimation,
	}
}

// collect resolves and flattens the targets of the configuration.
func (r *Runner) collect() ([]string, error) {
	targets, err := scanner.Resolve(r.fs, r.cfg.RootPath, scanner.Options{
		Include: r.cfg.Include,
		Exclude: r.cfg.Exclude,
	})
	if err != nil {
		return nil, err
	}
	return scanner.Flatten(r.fs, targets)
}

// Run executes the deletion and draws its progress. It never returns early on
// an interrupt: the handler restores the terminal and exits the process.
func (r *Runner) Run() Outcome {
	log := logger.Get()
	opts := r.barOptions()
	render := bar.New(r.out, opts)

	if r.signals {
		stop := watchInterrupts(bar.NewRecoverer(r.out, opts), r.exit)
		defer stop()
	}

	dirs, err := r.analyze(r.out, r.collect)
	if err != nil {
		log.Debug().Err(err).Str("path", r.cfg.RootPath).Msg("analysis failed")
		r.draw(render.Finish(err))
		return Outcome{Err: err}
	}
	log.Debug().Int("dirs", len(dirs)).Bool("dry_run", r.cfg.DryRun).Msg("starting deletion")

	r.draw(render.Begin(len(dirs)))
	start := r.now()
	elapsed := func() int64 { return r.now().Sub(start).Milliseconds() }

	d := deleter.New(r.fs, deleter.Options{
		DryRun:     r.cfg.DryRun,
		WorkDir:    r.workDir,
		DryRunCost: r.dryRunCost,
	})
	sum := d.DeleteAll(dirs, func(p deleter.Progress) {
		r.draw(render.Update(p.Completed, p.Total, elapsed()))
	})

	var runErr error
	if sum.Succeeded() {
		r.draw(render.Update(len(dirs), len(dirs), elapsed()))
	} else {
		runErr = sum.Failure.Err
	}
	r.draw(render.Finish(runErr))

	log.Info().
		Int("dirs", sum.Completed).
		Int("files", sum.Removed.Files).
		Str("bytes", utils.HumanizeBytes(sum.Removed.Bytes)).
		Bool("dry_run", r.cfg.DryRun).
		Dur("duration", time.Duration(elapsed())*time.Millisecond).
		Msg("run finished")

	return Outcome{Succeeded: runErr == nil, Err: runErr}
}

// draw logs output errors; the run keeps going without a terminal.
func (r *Runner) draw(err error) {
	if err != nil {
		logger.Get().Debug().Err(err).Msg("drawing progress failed")
	}
}
