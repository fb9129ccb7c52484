package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFor(t *testing.T) {
	if For(true).Background != Dark.Background {
		t.Error("For(true) should return the dark palette")
	}
	if For(false).Background != Light.Background {
		t.Error("For(false) should return the light palette")
	}
	if Light.Primary != Dark.Primary {
		t.Error("accent colors should match across themes")
	}
}

func TestProgressColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    lipgloss.Color
	}{
		{100, Light.Success},
		{80, Light.Success},
		{79.9, Light.Warning},
		{60, Light.Warning},
		{59, Light.Error},
		{0, Light.Error},
	}

	for _, tt := range tests {
		if got := Light.ProgressColor(tt.percent); got != tt.want {
			t.Errorf("ProgressColor(%v) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestStreakColor(t *testing.T) {
	tests := []struct {
		streak int
		want   lipgloss.Color
	}{
		{30, Dark.Success},
		{7, Dark.Success},
		{6, Dark.Warning},
		{3, Dark.Warning},
		{2, Dark.TextTertiary},
		{0, Dark.TextTertiary},
	}

	for _, tt := range tests {
		if got := Dark.StreakColor(tt.streak); got != tt.want {
			t.Errorf("StreakColor(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		width   int
		want    string
	}{
		{50, 4, "██░░"},
		{0, 3, "░░░"},
		{100, 3, "███"},
		{150, 2, "██"},
		{-5, 2, "░░"},
		{50, 0, ""},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.percent, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := formatPercent(66.6); got != "67%" {
		t.Errorf("formatPercent(66.6) = %q, want %q", got, "67%")
	}
	if got := formatStreak(1); got != "1 day" {
		t.Errorf("formatStreak(1) = %q", got)
	}
	if got := formatStreak(4); got != "4 days" {
		t.Errorf("formatStreak(4) = %q", got)
	}
}
