package profile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/theme"
)

type ToggleThemeMsg struct{}

type KeyMap struct {
	ToggleTheme key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle dark mode"),
		),
	}
}

type Model struct {
	keys     KeyMap
	stats    models.Stats
	habits   []models.Habit
	darkMode bool
	styles   theme.Styles
}

func New(styles theme.Styles) Model {
	return Model{keys: DefaultKeyMap(), styles: styles}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetData(stats models.Stats, habits []models.Habit, darkMode bool) {
	m.stats = stats
	m.habits = habits
	m.darkMode = darkMode
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.ToggleTheme) {
		return m, func() tea.Msg { return ToggleThemeMsg{} }
	}
	return m, nil
}

// bestHabit returns the habit with the longest recorded streak.
func bestHabit(habits []models.Habit) (models.Habit, bool) {
	var best models.Habit
	found := false
	for _, h := range habits {
		if !found || h.LongestStreak > best.LongestStreak {
			best = h
			found = true
		}
	}
	return best, found
}

func (m Model) View() string {
	s := m.styles
	row := func(label, value string) string {
		return fmt.Sprintf("  %-22s %s", label, value)
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Overview") + "\n")
	b.WriteString(row("Total tasks", fmt.Sprint(m.stats.TotalTasks)) + "\n")
	b.WriteString(row("Completed tasks", fmt.Sprint(m.stats.CompletedTasks)) + "\n")
	b.WriteString(row("Pending tasks", fmt.Sprint(m.stats.PendingTasks)) + "\n")
	b.WriteString(row("Task completion", s.Progress(m.stats.TaskCompletionPercent())) + "\n")
	b.WriteString(row("Total habits", fmt.Sprint(m.stats.TotalHabits)) + "\n")
	b.WriteString(row("Habits done today", fmt.Sprintf("%d (%s)", m.stats.CompletedHabitsToday, s.Progress(m.stats.HabitCompletionPercent()))) + "\n")

	b.WriteString("\n" + s.Title.Render("Streaks") + "\n")
	b.WriteString(row("Combined streak", s.Streak(m.stats.TotalStreak)) + "\n")
	b.WriteString(row("Longest streak", s.Streak(m.stats.LongestStreak)) + "\n")
	if h, ok := bestHabit(m.habits); ok && h.LongestStreak > 0 {
		b.WriteString(row("Best habit", h.Title) + "\n")
	}

	mode := "light"
	if m.darkMode {
		mode = "dark"
	}
	b.WriteString("\n" + s.Title.Render("Settings") + "\n")
	b.WriteString(row("Theme", mode) + "\n")
	b.WriteString(s.Subtle.Render(fmt.Sprintf("  Press '%s' to switch.", m.keys.ToggleTheme.Help().Key)))

	return b.String()
}
