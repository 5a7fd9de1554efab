package utils

import (
	"fmt"
	"math"
	"time"
)

// FormatBytes formats a byte count with binary prefixes and one decimal place.
// Counts below 1024 are printed as plain bytes.
func FormatBytes(size uint64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(size) / float64(div)
	// 1048575 would otherwise print as "1024.0 KiB"
	if math.Round(value*10) >= unit*10 && exp < len("KMGTPE")-1 {
		value /= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", value, "KMGTPE"[exp])
}

// FormatRate formats a throughput in bytes per second
func FormatRate(bytesPerSec float64) string {
	if math.IsNaN(bytesPerSec) || bytesPerSec <= 0 {
		return "0 B/s"
	}
	if bytesPerSec >= 1<<63 {
		return FormatBytes(math.MaxUint64) + "/s"
	}
	return FormatBytes(uint64(bytesPerSec)) + "/s"
}

// FormatDuration formats d rounded to whole seconds as "45s", "2m5s" or "1h1m1s".
// Negative durations print as "0s".
func FormatDuration(d time.Duration) string {
	total := int64(math.Round(d.Seconds()))
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case total < 60:
		return fmt.Sprintf("%ds", seconds)
	case total < 3600:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	}
}
