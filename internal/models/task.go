package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every valid priority, lowest first.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a one-off actionable item. Field names and JSON tags are the persisted
// wire format of the "tasks" key.
type Task struct {
	ID          int64    `json:"id" yaml:"id"` // creation time in Unix milliseconds
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Category    string   `json:"category" yaml:"category"`
	DueDate     string   `json:"dueDate" yaml:"dueDate"` // YYYY-MM-DD format
	Completed   bool     `json:"completed" yaml:"completed"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"` // ISO 8601 timestamp
}

// TaskUpdate is a partial update. Every non-nil field replaces the
// corresponding field of the target task.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *Priority
	Category    *string
	DueDate     *string
	Completed   *bool
	CreatedAt   *string
}

// Apply returns a copy of t with u merged over it.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.CreatedAt != nil {
		t.CreatedAt = *u.CreatedAt
	}
	return t
}

// IsEmpty reports whether the update names no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u == TaskUpdate{}
}

type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterCompleted TaskFilter = "completed"
	TaskFilterPending   TaskFilter = "pending"
)

// FilterTasks returns the tasks matching f, preserving order. Unknown filters
// behave like TaskFilterAll.
func FilterTasks(tasks []Task, f TaskFilter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case TaskFilterCompleted:
			if !t.Completed {
				continue
			}
		case TaskFilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
