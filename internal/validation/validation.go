package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/models"
)

// IssueType identifies the kind of problem found in a record
type IssueType string

const (
	IssueInvalidField IssueType = "invalid_field"
	IssueDuplicateID  IssueType = "duplicate_id"
	IssueStreakBound  IssueType = "streak_exceeds_longest"
)

// Issue is one problem found in a task or habit
type Issue struct {
	Type        IssueType
	Field       string // JSON field name, empty for record-level issues
	Description string
	ID          int64
}

// Result contains every issue found by a validation run
type Result struct {
	Issues []Issue
}

func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// Err returns nil when there are no issues, otherwise an error listing them.
func (r *Result) Err() error {
	if !r.HasIssues() {
		return nil
	}
	msgs := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msgs[i] = issue.Description
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// FormatReport returns a human-readable report of all issues
func (r *Result) FormatReport() string {
	if !r.HasIssues() {
		return "No issues detected."
	}

	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

func (r *Result) check(id int64, field string, err error) {
	if err == nil {
		return
	}
	r.Issues = append(r.Issues, Issue{
		Type:        IssueInvalidField,
		Field:       field,
		Description: err.Error(),
		ID:          id,
	})
}

// Validator checks records before they reach the store. The store itself
// accepts whatever it is given.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateTask checks the user-editable fields of a task.
func (v *Validator) ValidateTask(t models.Task) Result {
	var r Result
	r.check(t.ID, "title", Title(t.Title))
	r.check(t.ID, "description", Description(t.Description))
	r.check(t.ID, "priority", Priority(string(t.Priority)))
	r.check(t.ID, "dueDate", Date(t.DueDate))
	return r
}

// ValidateHabit checks the user-editable fields and streak counters of a habit.
func (v *Validator) ValidateHabit(h models.Habit) Result {
	var r Result
	r.check(h.ID, "title", Title(h.Title))
	r.check(h.ID, "description", Description(h.Description))
	if h.Frequency != "" {
		r.check(h.ID, "frequency", Frequency(string(h.Frequency)))
	}
	r.check(h.ID, "goal", Goal(h.Goal))
	r.check(h.ID, "reminder", Reminder(h.Reminder))
	if h.LastCompleted != nil {
		r.check(h.ID, "lastCompleted", Date(*h.LastCompleted))
	}
	if h.Streak > h.LongestStreak {
		r.Issues = append(r.Issues, Issue{
			Type:        IssueStreakBound,
			Description: fmt.Sprintf("habit %q has streak %d above longest streak %d", h.Title, h.Streak, h.LongestStreak),
			ID:          h.ID,
		})
	}
	return r
}

// ValidateCollections checks every record and reports ids used more than once
// within a collection.
func (v *Validator) ValidateCollections(tasks []models.Task, habits []models.Habit) Result {
	var r Result

	seenTasks := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if seenTasks[t.ID] {
			r.Issues = append(r.Issues, Issue{
				Type:        IssueDuplicateID,
				Description: fmt.Sprintf("duplicate task id %d", t.ID),
				ID:          t.ID,
			})
		}
		seenTasks[t.ID] = true
		r.Issues = append(r.Issues, v.ValidateTask(t).Issues...)
	}

	seenHabits := make(map[int64]bool, len(habits))
	for _, h := range habits {
		if seenHabits[h.ID] {
			r.Issues = append(r.Issues, Issue{
				Type:        IssueDuplicateID,
				Description: fmt.Sprintf("duplicate habit id %d", h.ID),
				ID:          h.ID,
			})
		}
		seenHabits[h.ID] = true
		r.Issues = append(r.Issues, v.ValidateHabit(h).Issues...)
	}

	return r
}
