package reporter

import (
	"math"
	"time"

	"xxh/pkg/utils"
)

// minElapsed is the shortest elapsed time a throughput is derived from
const minElapsed = time.Millisecond

// maxRemaining caps estimates that would overflow time.Duration
const maxRemaining = float64(math.MaxInt64 / int64(time.Second))

// Estimate is the throughput and time-to-completion derived from one progress sample
type Estimate struct {
	Bytes        uint64
	Total        uint64
	Elapsed      time.Duration
	BytesPerSec  float64
	Percent      int
	HasPercent   bool // Percent is only defined for sources of known size
	Remaining    time.Duration
	HasRemaining bool
}

// Calculate derives an Estimate from the time elapsed since the job started,
// the bytes hashed so far and the total size of the source.
// Degenerate inputs (no elapsed time, unknown or zero size) yield a
// displayable estimate instead of NaN or Inf values.
func Calculate(elapsed time.Duration, bytes uint64, total int64, known bool) Estimate {
	e := Estimate{
		Bytes:   bytes,
		Elapsed: elapsed,
	}

	if elapsed >= minElapsed {
		e.BytesPerSec = float64(bytes) / elapsed.Seconds()
	}

	if !known {
		return e
	}

	e.HasPercent = true
	if total <= 0 {
		// Nothing to hash: the job is complete as soon as it starts
		e.Percent = 100
		e.HasRemaining = true
		return e
	}
	e.Total = uint64(total)

	ratio := float64(bytes) / float64(total)
	e.Percent = int(math.Round(math.Min(ratio, 1) * 100))

	if bytes >= e.Total {
		e.HasRemaining = true
		return e
	}
	if e.BytesPerSec > 0 {
		secs := float64(e.Total-bytes) / e.BytesPerSec
		if !math.IsInf(secs, 0) && !math.IsNaN(secs) && secs < maxRemaining {
			e.Remaining = time.Duration(secs * float64(time.Second))
			e.HasRemaining = true
		}
	}
	return e
}

// Rate returns the throughput formatted with binary prefixes
func (e Estimate) Rate() string {
	return utils.FormatRate(e.BytesPerSec)
}

// ETA returns the remaining time, or "unknown" when it cannot be estimated
func (e Estimate) ETA() string {
	if !e.HasRemaining {
		return "unknown"
	}
	return utils.FormatDuration(e.Remaining)
}

// Done reports whether every byte of a sized source has been hashed
func (e Estimate) Done() bool {
	return e.HasPercent && e.Bytes >= e.Total
}
