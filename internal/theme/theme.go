// Package theme maps the dark mode preference to terminal colors and styles.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the named colors of one theme.
type Palette struct {
	Primary      lipgloss.Color
	PrimaryLight lipgloss.Color
	Secondary    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Background lipgloss.Color
	Surface    lipgloss.Color
	Card       lipgloss.Color
	Border     lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextTertiary  lipgloss.Color
	TextInverse   lipgloss.Color
}

var Light = Palette{
	Primary:       "#6366F1",
	PrimaryLight:  "#818CF8",
	Secondary:     "#10B981",
	Success:       "#10B981",
	Warning:       "#F59E0B",
	Error:         "#EF4444",
	Info:          "#3B82F6",
	Background:    "#F9FAFB",
	Surface:       "#FFFFFF",
	Card:          "#FFFFFF",
	Border:        "#E5E7EB",
	TextPrimary:   "#111827",
	TextSecondary: "#6B7280",
	TextTertiary:  "#9CA3AF",
	TextInverse:   "#FFFFFF",
}

// Dark keeps the accent and status colors of Light and inverts the neutrals.
var Dark = Palette{
	Primary:       "#6366F1",
	PrimaryLight:  "#818CF8",
	Secondary:     "#10B981",
	Success:       "#10B981",
	Warning:       "#F59E0B",
	Error:         "#EF4444",
	Info:          "#3B82F6",
	Background:    "#111827",
	Surface:       "#1F2937",
	Card:          "#374151",
	Border:        "#4B5563",
	TextPrimary:   "#F9FAFB",
	TextSecondary: "#D1D5DB",
	TextTertiary:  "#9CA3AF",
	TextInverse:   "#111827",
}

// For returns the palette for the given preference.
func For(dark bool) Palette {
	if dark {
		return Dark
	}
	return Light
}

// ProgressColor colors a completion percentage: 80 and above is success,
// 60 and above is a warning, anything lower is an error.
func (p Palette) ProgressColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return p.Success
	case percent >= 60:
		return p.Warning
	default:
		return p.Error
	}
}

// StreakColor colors a streak length: a week or more is success, three days
// or more is a warning, shorter streaks are muted.
func (p Palette) StreakColor(streak int) lipgloss.Color {
	switch {
	case streak >= 7:
		return p.Success
	case streak >= 3:
		return p.Warning
	default:
		return p.TextTertiary
	}
}

// PriorityColor colors a task priority.
func (p Palette) PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case "high":
		return p.Error
	case "medium":
		return p.Warning
	default:
		return p.Success
	}
}
