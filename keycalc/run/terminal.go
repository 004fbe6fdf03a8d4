package run

import (
	"fmt"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

// Structs - Private

// flushingWriter redraws the live area on every write, so each screen
// replaces the previous one without waiting for the refresh tick.
type flushingWriter struct {
	live *uilive.Writer
}

func (w *flushingWriter) Write(p []byte) (int, error) {
	n, err := w.live.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write screen: %w", err)
	}

	err = w.live.Flush()
	if err != nil {
		return n, fmt.Errorf("failed to flush screen: %w", err)
	}

	return n, nil
}

// Functions - Private

// isTerminal reports whether w is a file descriptor attached to a terminal.
func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
