package util //nolint:revive // package name util hosts shared formatting helpers used by CLI output

import (
	"fmt"
	"time"
)

// FormatTransferDuration formats a transfer duration for display, handling
// edge cases. Returns "—" for zero or negative durations, truncates to
// milliseconds for readability.
func FormatTransferDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "—"
	case d < time.Millisecond:
		return d.String()
	default:
		return d.Truncate(time.Millisecond).String()
	}
}

// FormatBytes renders a byte count using binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
