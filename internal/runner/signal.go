package runner

import (
	"os"
	"os/signal"
	"syscall"

	"rmrf/internal/bar"
)

// watchInterrupts restores the terminal and exits on SIGINT or SIGTERM.
// Deletion in flight is not cancelled. The returned func releases the handler.
func watchInterrupts(rc bar.Recoverer, exit func(int)) (stop func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go handleInterrupts(sig, done, rc, exit)
	return func() {
		signal.Stop(sig)
		close(done)
	}
}

func handleInterrupts(sig <-chan os.Signal, done <-chan struct{}, rc bar.Recoverer, exit func(int)) {
	select {
	case <-sig:
		rc.Recover()
		exit(ExitInterrupted)
	case <-done:
	}
}
