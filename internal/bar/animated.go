package bar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Animated draws a fixed-width bar in place using absolute column moves.
//
// Screen layout (1-based columns): begin cap at 1, fill columns 2..width+1,
// finish cap at width+2, percentage right-aligned in width+4..width+6 followed
// by '%', mascot from width+12.
type Animated struct {
	w      *bufio.Writer
	glyphs Glyphs
	cat    bool
	st     State
}

func newAnimated(w io.Writer, opts Options) *Animated {
	return &Animated{
		w:      bufio.NewWriter(w),
		glyphs: opts.Theme.Glyphs(),
		cat:    opts.Cat && opts.Theme != ThemeASCII,
		st:     State{Width: opts.Width},
	}
}

// State returns a copy of the last drawn state.
func (a *Animated) State() State { return a.st }

func (a *Animated) esc(seq string) {
	a.w.WriteString("\x1b[")
	a.w.WriteString(seq)
}

func (a *Animated) column(col int) {
	a.esc(fmt.Sprintf("%dG", col))
}

func (a *Animated) percentColumn() int { return a.st.Width + 4 }

func (a *Animated) catColumn() int { return a.st.Width + 12 }

func (a *Animated) Begin(int) error {
	a.esc("?25l")
	a.column(1)
	a.w.WriteString(a.glyphs.Begin)
	a.w.WriteString(strings.Repeat(a.glyphs.Space, a.st.Width))
	a.w.WriteString(a.glyphs.Finish)
	a.w.WriteString("   0%")
	if a.cat {
		a.w.WriteString("    ")
		a.w.WriteString(catFrames[0])
	}
	return a.w.Flush()
}

func (a *Animated) nextCatFrame(elapsedMs int64) int {
	if !a.cat {
		return 0
	}
	if elapsedMs-a.st.LastFrameMs >= CatInterval {
		return (a.st.CatFrame + 1) % len(catFrames)
	}
	return a.st.CatFrame
}

func (a *Animated) Update(completed, total int, elapsedMs int64) error {
	nextPct, nextInd := ComputeProgress(completed, total, a.st.Width)
	if nextInd < a.st.FilledIndex {
		// the bar never shrinks
		nextInd = a.st.FilledIndex
	}
	nextCat := a.nextCatFrame(elapsedMs)
	if nextPct == a.st.Percent && nextInd == a.st.FilledIndex && nextCat == a.st.CatFrame {
		return nil
	}

	if nextInd > a.st.FilledIndex {
		if a.st.FilledIndex == 0 {
			a.column(1)
			a.w.WriteString(a.glyphs.BeginFilled)
		}
		a.column(2 + a.st.FilledIndex)
		a.w.WriteString(strings.Repeat(a.glyphs.Filler, nextInd-a.st.FilledIndex))
		if nextInd == a.st.Width-1 {
			a.w.WriteString(a.glyphs.Filler)
			a.w.WriteString(a.glyphs.FinishFilled)
		} else {
			a.w.WriteString(a.glyphs.Head)
		}
	}
	if nextPct != a.st.Percent {
		a.column(a.percentColumn())
		fmt.Fprintf(a.w, "%3d", nextPct)
	}
	if nextCat != a.st.CatFrame {
		a.column(a.catColumn())
		a.w.WriteString(catFrames[nextCat])
		a.st.LastFrameMs = elapsedMs
	}

	err := a.w.Flush()
	a.st.FilledIndex = nextInd
	a.st.Percent = nextPct
	a.st.CatFrame = nextCat
	return err
}

func (a *Animated) Finish(err error) error {
	a.esc("0m")
	a.w.WriteString("\n")
	if err == nil {
		a.esc("32m")
		a.w.WriteString("Over")
	} else {
		a.esc("31m")
		a.w.WriteString("Failed")
	}
	a.esc("0m")
	if err != nil {
		a.w.WriteString("\n")
		a.w.WriteString(err.Error())
	}
	a.esc("?25h")
	return a.w.Flush()
}
