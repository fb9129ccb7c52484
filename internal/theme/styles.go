package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles shared by every view, derived from a Palette.
type Styles struct {
	Palette Palette

	Title       lipgloss.Style
	Subtle      lipgloss.Style
	Text        lipgloss.Style
	Card        lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Selected    lipgloss.Style
	Completed   lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Danger      lipgloss.Style
	Doc         lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,
		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		Subtle: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		Text: lipgloss.NewStyle().
			Foreground(p.TextPrimary),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.TextInverse).
			Background(p.Primary).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.TextSecondary).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(p.PrimaryLight).
			Bold(true),
		Completed: lipgloss.NewStyle().
			Foreground(p.TextTertiary).
			Strikethrough(true),
		Success: lipgloss.NewStyle().
			Foreground(p.Success),
		Warning: lipgloss.NewStyle().
			Foreground(p.Warning).
			Italic(true),
		Danger: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		Doc: lipgloss.NewStyle().Padding(1, 2),
	}
}

// Progress renders a percentage in its band color.
func (s Styles) Progress(percent float64) string {
	return lipgloss.NewStyle().
		Foreground(s.Palette.ProgressColor(percent)).
		Bold(true).
		Render(formatPercent(percent))
}

// Streak renders a streak count in its band color.
func (s Styles) Streak(streak int) string {
	return lipgloss.NewStyle().
		Foreground(s.Palette.StreakColor(streak)).
		Render(formatStreak(streak))
}
