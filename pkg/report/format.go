package report

import (
	"fmt"
)

// FormatBytes renders a byte count in 1024-based units, B through PB.
// Negative counts render as "invalid".
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "invalid"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	// Only as many decimals as the value needs.
	value := float64(bytes) / float64(div)
	switch {
	case value == float64(int64(value)):
		return fmt.Sprintf("%.0f %s", value, units[exp])
	case value*10 == float64(int64(value*10)):
		return fmt.Sprintf("%.1f %s", value, units[exp])
	default:
		return fmt.Sprintf("%.2f %s", value, units[exp])
	}
}

// Percent returns part/total as a percentage, guarding a zero total.
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// TruncateName shortens a name to at most max runes, appending "..." when
// anything was cut. Used to keep VM names from blowing out table columns.
func TruncateName(name string, max int) string {
	if max <= 3 {
		max = 4
	}
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-3]) + "..."
}
