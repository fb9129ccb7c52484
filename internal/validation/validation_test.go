package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/tally/internal/models"
)

func TestFieldValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr error
	}{
		{"title ok", Title, "Walk the dog", nil},
		{"title empty", Title, "", ErrTitleRequired},
		{"title blank", Title, "   ", ErrTitleRequired},
		{"title at limit", Title, strings.Repeat("a", 100), nil},
		{"title too long", Title, strings.Repeat("a", 101), ErrTitleTooLong},
		{"title counts runes", Title, strings.Repeat("é", 100), nil},
		{"description empty", Description, "", nil},
		{"description too long", Description, strings.Repeat("x", 501), ErrDescTooLong},
		{"goal default", Goal, "", nil},
		{"goal ok", Goal, "8", nil},
		{"goal zero", Goal, "0", ErrGoalInvalid},
		{"goal text", Goal, "eight", ErrGoalInvalid},
		{"goal fraction", Goal, "1.5", ErrGoalInvalid},
		{"date ok", Date, "2026-02-28", nil},
		{"date impossible", Date, "2026-02-30", ErrDateInvalid},
		{"date wrong layout", Date, "02/28/2026", ErrDateInvalid},
		{"reminder ok", Reminder, "07:30", nil},
		{"reminder single digit hour", Reminder, "7:30", ErrTimeInvalid},
		{"reminder out of range", Reminder, "25:00", ErrTimeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validate(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestEnumValidators(t *testing.T) {
	if err := Priority("high"); err != nil {
		t.Errorf("Priority(high) returned error: %v", err)
	}
	if err := Priority("urgent"); err == nil {
		t.Error("Priority(urgent) should fail")
	}
	if err := Frequency("weekly"); err != nil {
		t.Errorf("Frequency(weekly) returned error: %v", err)
	}
	if err := Frequency("hourly"); err == nil {
		t.Error("Frequency(hourly) should fail")
	}
}

func TestValidateTask(t *testing.T) {
	v := New()

	valid := models.Task{ID: 1, Title: "Pay rent", Priority: models.PriorityHigh, DueDate: "2026-07-01"}
	if r := v.ValidateTask(valid); r.HasIssues() {
		t.Errorf("unexpected issues: %s", r.FormatReport())
	}

	invalid := models.Task{ID: 2, Priority: "urgent", DueDate: "tomorrow"}
	r := v.ValidateTask(invalid)
	if len(r.Issues) != 3 {
		t.Fatalf("got %d issues, want 3: %s", len(r.Issues), r.FormatReport())
	}
	fields := map[string]bool{}
	for _, issue := range r.Issues {
		fields[issue.Field] = true
	}
	for _, f := range []string{"title", "priority", "dueDate"} {
		if !fields[f] {
			t.Errorf("missing issue for field %q", f)
		}
	}
	if r.Err() == nil {
		t.Error("Err() should be non-nil when there are issues")
	}
}

func TestValidateHabit(t *testing.T) {
	v := New()
	day := "2026-06-01"

	valid := models.Habit{ID: 1, Title: "Journal", Frequency: models.FrequencyDaily, Goal: "1", Reminder: "21:00", Streak: 2, LongestStreak: 4, LastCompleted: &day}
	if r := v.ValidateHabit(valid); r.HasIssues() {
		t.Errorf("unexpected issues: %s", r.FormatReport())
	}

	broken := valid
	broken.Streak = 5
	r := v.ValidateHabit(broken)
	if len(r.Issues) != 1 || r.Issues[0].Type != IssueStreakBound {
		t.Errorf("issues = %+v, want one streak bound issue", r.Issues)
	}
}

func TestValidateCollectionsDuplicateIDs(t *testing.T) {
	v := New()
	tasks := []models.Task{
		{ID: 1, Title: "A", Priority: models.PriorityLow},
		{ID: 1, Title: "B", Priority: models.PriorityLow},
	}
	habits := []models.Habit{{ID: 1, Title: "C"}}

	r := v.ValidateCollections(tasks, habits)
	if len(r.Issues) != 1 || r.Issues[0].Type != IssueDuplicateID {
		t.Errorf("issues = %+v, want one duplicate id issue", r.Issues)
	}
	if !strings.Contains(r.FormatReport(), "duplicate task id 1") {
		t.Errorf("FormatReport() = %q", r.FormatReport())
	}
}
