package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.snap.Loading {
		return m.styles.Doc.Render(m.styles.Subtle.Render("Loading..."))
	}

	var content string

	switch m.state {
	case StateDashboard:
		content = m.styles.Doc.Render(m.dashboard.View())
	case StateTasks:
		content = m.styles.Doc.Render(m.taskList.View())
	case StateHabits:
		content = m.styles.Doc.Render(m.habitsModel.View())
	case StateProfile:
		content = m.styles.Doc.Render(m.profileModel.View())
	case StateTaskForm, StateHabitForm:
		content = m.styles.Doc.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= SessionState(len(tabTitles)) {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.Danger.Render(" " + m.status)
	}
	return m.styles.Success.Render(" " + m.status)
}

func (m Model) viewConfirmDelete() string {
	kind := "task"
	if m.toDelete.habit {
		kind = "habit"
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Danger.Render("Delete "+kind+" \""+m.toDelete.title+"\"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
