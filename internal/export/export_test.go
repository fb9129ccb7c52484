package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/models"
)

func sampleDocument() Document {
	day := "2026-08-01"
	tasks := []models.Task{
		{ID: 1, Title: "Renew passport", Priority: models.PriorityHigh, Category: "personal", DueDate: "2026-08-15", CreatedAt: "2026-08-01T09:00:00.000Z"},
		{ID: 2, Title: "Groceries", Priority: models.PriorityLow, Category: "shopping", DueDate: "2026-08-02", Completed: true, CreatedAt: "2026-08-01T10:00:00.000Z"},
	}
	habits := []models.Habit{
		{ID: 3, Title: "Walk", Category: "health", Frequency: models.FrequencyDaily, Goal: "1", Reminder: "07:00", CompletedToday: true, Streak: 2, LongestStreak: 8, LastCompleted: &day, CreatedAt: "2026-07-01T07:00:00.000Z"},
		{ID: 4, Title: "Budget", Category: "finance", Reminder: "09:00", CreatedAt: "2026-07-02T07:00:00.000Z"},
	}
	return NewDocument(tasks, habits, true, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
}

func TestNewDocument(t *testing.T) {
	doc := sampleDocument()
	if doc.ExportedAt != "2026-08-01T12:00:00.000Z" {
		t.Errorf("ExportedAt = %q", doc.ExportedAt)
	}
	if doc.Stats.CompletedTasks != 1 || doc.Stats.LongestStreak != 8 {
		t.Errorf("Stats = %+v", doc.Stats)
	}

	empty := NewDocument(nil, nil, false, time.Now())
	var buf bytes.Buffer
	if err := Write(&buf, empty, FormatJSON); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"tasks": []`) {
		t.Errorf("empty export should contain an empty tasks array:\n%s", buf.String())
	}
}

func TestWriteRead(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			doc := sampleDocument()
			var buf bytes.Buffer
			if err := Write(&buf, doc, format); err != nil {
				t.Fatalf("Write() returned error: %v", err)
			}

			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() returned error: %v", err)
			}
			if !reflect.DeepEqual(got, doc) {
				t.Errorf("Read() = %+v, want %+v", got, doc)
			}
		})
	}
}

func TestYAMLUsesWireFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), FormatYAML); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"dueDate: \"2026-08-15\"", "lastCompleted: \"2026-08-01\"", "longestStreak: 8", "lastCompleted: null"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	if got := FormatForPath("backup.yml", FormatJSON); got != FormatYAML {
		t.Errorf("FormatForPath(.yml) = %q", got)
	}
	if got := FormatForPath("backup.txt", FormatJSON); got != FormatJSON {
		t.Errorf("FormatForPath(.txt) = %q, want default", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "tally.yaml")
	if err := WriteFile(path, sampleDocument(), FormatYAML); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	doc, err := Read(f, FormatYAML)
	if err != nil {
		t.Fatalf("Read() returned error: %v", err)
	}
	if len(doc.Tasks) != 2 || len(doc.Habits) != 2 {
		t.Errorf("read back %d tasks and %d habits, want 2 and 2", len(doc.Tasks), len(doc.Habits))
	}
}
