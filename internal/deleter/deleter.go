package deleter

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"rmrf/internal/errors"
	"rmrf/internal/logger"
)

// DefaultDryRunCost is the simulated time spent per directory entry in a dry run.
const DefaultDryRunCost = 2 * time.Millisecond

type Options struct {
	DryRun bool
	// WorkDir is emptied but never removed itself. Compared as a plain string.
	WorkDir string
	// DryRunCost is the simulated time per entry; zero uses DefaultDryRunCost.
	DryRunCost time.Duration
}

type Progress struct {
	Completed int
	Total     int
	Path      string
}

type Failure struct {
	Path string
	Err  error
}

// Stats counts what one directory step removed (or would have removed).
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

type Summary struct {
	Completed int
	Removed   Stats
	Failure   *Failure
}

// Succeeded reports whether every directory was processed.
func (s Summary) Succeeded() bool { return s.Failure == nil }

// Deleter removes directories one flattened step at a time.
type Deleter struct {
	fs    afero.Fs
	opts  Options
	sleep func(time.Duration)
}

func New(fsys afero.Fs, opts Options) *Deleter {
	if opts.DryRunCost <= 0 {
		opts.DryRunCost = DefaultDryRunCost
	}
	return &Deleter{fs: fsys, opts: opts, sleep: time.Sleep}
}

// DeleteOne removes the files and the already emptied subdirectories directly
// inside path, then path itself. It never recurses: deeper directories must
// have been handled by earlier steps. The first error aborts the step.
func (d *Deleter) DeleteOne(path string) (Stats, error) {
	var st Stats
	infos, err := afero.ReadDir(d.fs, path)
	if err != nil {
		return st, errors.ListError(path, err)
	}

	if d.opts.DryRun {
		d.sleep(time.Duration(len(infos)) * d.opts.DryRunCost)
		for _, fi := range infos {
			if !fi.IsDir() {
				st.Files++
				st.Bytes += fi.Size()
			}
		}
		if path != d.opts.WorkDir {
			st.Dirs++
		}
		return st, nil
	}

	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		if err := d.fs.Remove(filepath.Join(path, fi.Name())); err != nil {
			return st, errors.DeleteError(path, err)
		}
		st.Files++
		st.Bytes += fi.Size()
	}
	for _, fi := range infos {
		if !fi.IsDir() {
			continue
		}
		if err := d.fs.Remove(filepath.Join(path, fi.Name())); err != nil {
			return st, errors.DeleteError(path, err)
		}
		st.Dirs++
	}
	if path == d.opts.WorkDir {
		logger.Get().Debug().Str("path", path).Msg("keeping working directory")
		return st, nil
	}
	if err := d.fs.Remove(path); err != nil {
		return st, errors.DeleteError(path, err)
	}
	st.Dirs++
	return st, nil
}

// DeleteAll processes dirs in order and stops at the first failure; nothing
// after a failed directory is attempted. progress is called synchronously
// after every successful step.
func (d *Deleter) DeleteAll(dirs []string, progress func(Progress)) Summary {
	sum := Summary{}
	total := len(dirs)
	for _, dir := range dirs {
		st, err := d.DeleteOne(dir)
		sum.Removed.Files += st.Files
		sum.Removed.Dirs += st.Dirs
		sum.Removed.Bytes += st.Bytes
		if err != nil {
			logger.Get().Debug().Err(err).Str("path", dir).Msg("deletion failed")
			sum.Failure = &Failure{Path: dir, Err: err}
			return sum
		}
		sum.Completed++
		if progress != nil {
			progress(Progress{Completed: sum.Completed, Total: total, Path: dir})
		}
	}
	return sum
}

// WorkingDir returns the process working directory, or "" if unknown.
func WorkingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
