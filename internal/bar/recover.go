package bar

import "io"

// Recoverer restores terminal state after an interrupt. It only holds the
// output stream and never reads renderer state, so it may run concurrently
// with a draw in progress.
type Recoverer struct {
	w io.Writer
}

// NewRecoverer returns a recoverer for opts; in plain mode it writes nothing.
func NewRecoverer(w io.Writer, opts Options) Recoverer {
	if opts.NoAnimation {
		return Recoverer{}
	}
	return Recoverer{w: w}
}

// Recover resets colors and shows the cursor. Calling it repeatedly is harmless.
func (r Recoverer) Recover() {
	if r.w == nil {
		return
	}
	_, _ = io.WriteString(r.w, "\x1b[0m\x1b[?25h")
}
