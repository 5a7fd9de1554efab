package ui

import (
	"fmt"
	"io"
	"time"

	"xxh/internal/reporter"
	"xxh/pkg/types"

	"github.com/schollz/progressbar/v3"
)

// ProgressUI renders progress as a bar on a separate stream, typically
// stderr, and prints digest lines to out
type ProgressUI struct {
	out      io.Writer
	barOut   io.Writer
	interval time.Duration
	bar      *progressbar.ProgressBar
}

// NewProgressUI creates a bar renderer throttled to interval
func NewProgressUI(out, barOut io.Writer, interval time.Duration) *ProgressUI {
	return &ProgressUI{
		out:      out,
		barOut:   barOut,
		interval: interval,
	}
}

// Start initializes the bar for job; unsized and empty sources get a spinner
func (p *ProgressUI) Start(job types.FileJob) error {
	total := int64(-1)
	if job.SizeKnown && job.Size > 0 {
		total = job.Size
	}
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(job.Name),
		progressbar.OptionSetWriter(p.barOut),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(p.interval),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetPredictTime(true),
	)
	return nil
}

// Update moves the bar to the sampled byte count
func (p *ProgressUI) Update(job types.FileJob, est reporter.Estimate) error {
	if p.bar == nil {
		return nil
	}
	return p.bar.Set64(int64(est.Bytes))
}

// Finish completes the bar and prints the digest line
func (p *ProgressUI) Finish(job types.FileJob, res types.HashResult) error {
	if p.bar != nil {
		if err := p.bar.Finish(); err != nil {
			return fmt.Errorf("failed to finish progress bar: %w", err)
		}
		p.bar = nil
	}
	if _, err := fmt.Fprintln(p.out, FormatDigestLine(job, res)); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	return nil
}

// Abort removes the bar of a failed job. Finishing stops the spinner
// goroutine of unsized bars and clears the line under the bar's lock.
func (p *ProgressUI) Abort(job types.FileJob) error {
	if p.bar == nil {
		return nil
	}
	err := p.bar.Finish()
	p.bar = nil
	if err != nil {
		return fmt.Errorf("failed to clear progress bar: %w", err)
	}
	return nil
}
