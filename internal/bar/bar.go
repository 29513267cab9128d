// Package bar draws the deletion progress indicator.
//
// The animated renderer keeps the last drawn state and, on every progress
// event, writes only the escape sequences and glyphs needed to move the
// terminal from that state to the next one. The plain renderer prints a
// throttled line per ten percent for non-interactive output.
package bar

import (
	"bufio"
	"io"
)

const (
	// DefaultWidth is the number of fill columns between the end caps.
	DefaultWidth = 30
	// CatInterval is the minimum elapsed time between two mascot frames.
	CatInterval int64 = 700
)

// State is the renderer's memory of what is currently on screen.
type State struct {
	Width       int
	FilledIndex int
	Percent     int
	CatFrame    int
	LastFrameMs int64
}

// ComputeProgress maps completed/total onto a percentage and the last filled
// column index. Both are floored independently from the same ratio. An empty
// run counts as complete.
func ComputeProgress(completed, total, width int) (percent, filledIndex int) {
	if total <= 0 {
		return 100, width - 1
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	percent = 100 * completed / total
	filledIndex = (width - 1) * completed / total
	return percent, filledIndex
}

type Options struct {
	NoAnimation bool
	Theme       Theme
	Cat         bool
	Width       int
}

// Renderer consumes progress events and draws them.
type Renderer interface {
	// Begin draws the initial frame for a run over total directories.
	Begin(total int) error
	// Update handles one progress event; elapsedMs is the time since the run started.
	Update(completed, total int, elapsedMs int64) error
	// Finish draws the outcome; err is nil on success.
	Finish(err error) error
}

// New returns the renderer matching opts, writing to w.
func New(w io.Writer, opts Options) Renderer {
	if opts.Width <= 1 {
		opts.Width = DefaultWidth
	}
	if opts.NoAnimation {
		return &Plain{w: bufio.NewWriter(w), width: opts.Width}
	}
	return newAnimated(w, opts)
}
