package ui

import (
	"xxh/internal/reporter"
	"xxh/pkg/types"
)

// Terminal exposes the cursor primitives the progress line is redrawn with
type Terminal interface {
	// SaveCursor remembers the current cursor position
	SaveCursor() error

	// RestoreCursor moves the cursor back to the saved position
	RestoreCursor() error

	// ClearLine erases the line under the cursor
	ClearLine() error
}

// ProgressRenderer displays the progress of one job at a time
type ProgressRenderer interface {
	// Start is called before the job's first update
	Start(job types.FileJob) error

	// Update redraws the progress display with a fresh estimate
	Update(job types.FileJob, est reporter.Estimate) error

	// Finish replaces the progress display with the digest line
	Finish(job types.FileJob, res types.HashResult) error

	// Abort removes the progress display of a failed job
	Abort(job types.FileJob) error
}
