package dashboard

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/theme"
)

const (
	maxUpNext = 5
	barWidth  = 24
)

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

type Model struct {
	tasks  []models.Task
	habits []models.Habit
	stats  models.Stats
	today  string
	styles theme.Styles
	width  int
	height int
}

func New(styles theme.Styles) Model {
	return Model{styles: styles}
}

func (m *Model) SetData(tasks []models.Task, habits []models.Habit, stats models.Stats, today string) {
	m.tasks = tasks
	m.habits = habits
	m.stats = stats
	m.today = today
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// UpNext returns pending tasks ordered by priority, then due date, capped at n.
func UpNext(tasks []models.Task, n int) []models.Task {
	pending := models.FilterTasks(tasks, models.TaskFilterPending)
	slices.SortStableFunc(pending, func(a, b models.Task) int {
		if c := cmp.Compare(priorityRank[a.Priority], priorityRank[b.Priority]); c != 0 {
			return c
		}
		return strings.Compare(a.DueDate, b.DueDate)
	})
	if len(pending) > n {
		pending = pending[:n]
	}
	return pending
}

func (m Model) View() string {
	s := m.styles
	taskPct := m.stats.TaskCompletionPercent()
	habitPct := m.stats.HabitCompletionPercent()

	taskCard := s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Tasks"),
		fmt.Sprintf("%d of %d completed", m.stats.CompletedTasks, m.stats.TotalTasks),
		lipgloss.NewStyle().Foreground(s.Palette.ProgressColor(taskPct)).Render(theme.ProgressBar(taskPct, barWidth))+" "+s.Progress(taskPct),
	))
	habitCard := s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Habits"),
		fmt.Sprintf("%d of %d done today", m.stats.CompletedHabitsToday, m.stats.TotalHabits),
		lipgloss.NewStyle().Foreground(s.Palette.ProgressColor(habitPct)).Render(theme.ProgressBar(habitPct, barWidth))+" "+s.Progress(habitPct),
	))
	streakCard := s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Streaks"),
		"Total:   "+s.Streak(m.stats.TotalStreak),
		"Longest: "+s.Streak(m.stats.LongestStreak),
	))

	cards := lipgloss.JoinHorizontal(lipgloss.Top, taskCard, " ", habitCard, " ", streakCard)
	if m.width > 0 && lipgloss.Width(cards) > m.width {
		cards = lipgloss.JoinVertical(lipgloss.Left, taskCard, habitCard, streakCard)
	}

	var b strings.Builder
	b.WriteString(s.Subtle.Render("Today is "+m.today) + "\n\n")
	b.WriteString(cards + "\n\n")

	b.WriteString(s.Title.Render("Up next") + "\n")
	next := UpNext(m.tasks, maxUpNext)
	if len(next) == 0 {
		b.WriteString(s.Success.Render("  All tasks done.") + "\n")
	}
	for _, t := range next {
		prio := lipgloss.NewStyle().Foreground(s.Palette.PriorityColor(string(t.Priority))).Render(fmt.Sprintf("%-6s", t.Priority))
		line := fmt.Sprintf("  %s %s", prio, t.Title)
		if t.DueDate != "" {
			line += s.Subtle.Render("  due " + t.DueDate)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Habits left today") + "\n")
	left := 0
	for _, h := range m.habits {
		if h.CompletedToday {
			continue
		}
		left++
		b.WriteString(fmt.Sprintf("  ○ %s %s\n", h.Title, s.Subtle.Render("at "+h.Reminder)))
	}
	if left == 0 {
		if len(m.habits) == 0 {
			b.WriteString(s.Subtle.Render("  No habits yet.") + "\n")
		} else {
			b.WriteString(s.Success.Render("  Every habit done today.") + "\n")
		}
	}

	return b.String()
}
