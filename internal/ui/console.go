package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"xxh/internal/reporter"
	"xxh/pkg/types"
	"xxh/pkg/utils"
)

// ConsoleUI draws a single self-overwriting progress line and prints the
// final digest line in its place.
type ConsoleUI struct {
	out   io.Writer
	term  Terminal
	live  bool // Redraw progress; off for pipes and quiet runs
	width int  // Truncate progress lines to this many columns, 0 disables
}

// NewConsoleUI creates a console UI writing to out.
// Progress is drawn only when live is set.
func NewConsoleUI(out io.Writer, live bool) *ConsoleUI {
	return &ConsoleUI{
		out:   out,
		term:  NewANSITerminal(out),
		live:  live,
		width: TerminalWidth(out),
	}
}

// Start remembers where the progress line begins
func (c *ConsoleUI) Start(job types.FileJob) error {
	if !c.live {
		return nil
	}
	return c.term.SaveCursor()
}

// Update erases the previous progress line, prints the new one and moves
// the cursor back to the start of the line
func (c *ConsoleUI) Update(job types.FileJob, est reporter.Estimate) error {
	if !c.live {
		return nil
	}
	if err := c.term.ClearLine(); err != nil {
		return err
	}
	if _, err := io.WriteString(c.out, c.truncate(FormatProgressLine(job, est))); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	return c.term.RestoreCursor()
}

// Finish clears the progress line and prints the digest line
func (c *ConsoleUI) Finish(job types.FileJob, res types.HashResult) error {
	if c.live {
		if err := c.term.ClearLine(); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(c.out, FormatDigestLine(job, res)); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	return nil
}

// Abort clears the progress line of a failed job
func (c *ConsoleUI) Abort(job types.FileJob) error {
	if !c.live {
		return nil
	}
	return c.term.ClearLine()
}

func (c *ConsoleUI) truncate(line string) string {
	// Leave the last column free so the line never wraps
	if c.width <= 1 || utf8.RuneCountInString(line) < c.width {
		return line
	}
	return string([]rune(line)[:c.width-1])
}

// FormatProgressLine renders est as a one-line status for job
func FormatProgressLine(job types.FileJob, est reporter.Estimate) string {
	var b strings.Builder
	b.WriteString(job.Name)
	b.WriteString("  ")
	if est.HasPercent {
		fmt.Fprintf(&b, "%3d%%  %s / %s  %s  ETA %s",
			est.Percent, utils.FormatBytes(est.Bytes), utils.FormatBytes(est.Total), est.Rate(), est.ETA())
	} else {
		fmt.Fprintf(&b, "%s  %s", utils.FormatBytes(est.Bytes), est.Rate())
	}
	return b.String()
}

// FormatDigestLine renders the final "<digest>  <name>" line
func FormatDigestLine(job types.FileJob, res types.HashResult) string {
	return fmt.Sprintf("%016x  %s", res.Digest, job.Name)
}
