package theme

import (
	"fmt"
	"strings"
)

func formatPercent(percent float64) string {
	return fmt.Sprintf("%.0f%%", percent)
}

func formatStreak(streak int) string {
	if streak == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", streak)
}

// ProgressBar renders a fixed-width bar for a percentage in [0, 100].
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = min(max(percent, 0), 100)
	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
