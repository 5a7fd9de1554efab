package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI escape sequences used to redraw a single line
const (
	saveCursorSeq    = "\0337"
	restoreCursorSeq = "\0338"
	clearLineSeq     = "\033[2K"
)

// ANSITerminal implements Terminal with VT100 escape sequences
type ANSITerminal struct {
	w io.Writer
}

// NewANSITerminal creates a terminal writing escape sequences to w
func NewANSITerminal(w io.Writer) *ANSITerminal {
	return &ANSITerminal{w: w}
}

func (t *ANSITerminal) SaveCursor() error {
	return t.write(saveCursorSeq)
}

func (t *ANSITerminal) RestoreCursor() error {
	return t.write(restoreCursorSeq)
}

func (t *ANSITerminal) ClearLine() error {
	return t.write(clearLineSeq)
}

func (t *ANSITerminal) write(seq string) error {
	if _, err := io.WriteString(t.w, seq); err != nil {
		return fmt.Errorf("failed to write terminal control sequence: %w", err)
	}
	return nil
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w, or 0 when unknown
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
