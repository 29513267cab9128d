package bar

import (
	"bufio"
	"fmt"
)

// PlainStep is the minimum percentage advance between two printed lines.
const PlainStep = 10

// Plain prints progress as text lines without control codes.
type Plain struct {
	w          *bufio.Writer
	width      int
	lastPct    int
	printedAll bool
}

func (p *Plain) Begin(total int) error {
	fmt.Fprintln(p.w, "Start deleting")
	fmt.Fprintf(p.w, "%d directories\n", total)
	return p.w.Flush()
}

func (p *Plain) Update(completed, total int, _ int64) error {
	pct, _ := ComputeProgress(completed, total, p.width)
	switch {
	case pct == 100 && !p.printedAll:
	case pct >= p.lastPct+PlainStep:
	default:
		return nil
	}
	fmt.Fprintf(p.w, "Deleted %d%%\n", pct)
	p.lastPct = pct
	if pct == 100 {
		p.printedAll = true
	}
	return p.w.Flush()
}

func (p *Plain) Finish(err error) error {
	if err == nil {
		fmt.Fprintln(p.w, "Over")
	} else {
		fmt.Fprintln(p.w, "Failed")
		fmt.Fprintln(p.w, err.Error())
	}
	return p.w.Flush()
}
