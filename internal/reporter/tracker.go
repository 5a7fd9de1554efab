package reporter

import (
	"time"

	"xxh/pkg/types"
)

// Tracker turns progress samples of one job into estimates
type Tracker struct {
	total int64
	known bool
	start time.Time
	now   func() time.Time
}

// NewTracker starts the clock for job
func NewTracker(job types.FileJob) *Tracker {
	return newTrackerWithClock(job, time.Now)
}

func newTrackerWithClock(job types.FileJob, now func() time.Time) *Tracker {
	return &Tracker{
		total: job.Size,
		known: job.SizeKnown,
		start: now(),
		now:   now,
	}
}

// Sample computes the estimate for the cumulative byte count
func (t *Tracker) Sample(bytes types.ProgressSample) Estimate {
	return Calculate(t.Elapsed(), bytes, t.total, t.known)
}

// Elapsed returns the time since the tracker was created
func (t *Tracker) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}
