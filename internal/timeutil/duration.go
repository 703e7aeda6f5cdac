package timeutil

import "fmt"

// FormatDuration converts seconds into a human-readable duration string.
// Negative values render as "N/A".
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		return "N/A"
	}

	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatOptionalDuration is FormatDuration for values that may be absent
func FormatOptionalDuration(seconds *float64) string {
	if seconds == nil {
		return "N/A"
	}
	return FormatDuration(*seconds)
}
