package styles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"zero width", "hello", 0, ""},
		{"fits", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"tiny width uses dots", "hello", 2, ".."},
		{"width three uses dots", "hello", 3, "..."},
		{"emoji not split", "note 😀😀", 7, "note..."},
		{"cjk not split", "日本語テスト", 5, "日..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxWidth)
			require.Equal(t, tt.expected, got, "TruncateString(%q, %d)", tt.input, tt.maxWidth)
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected string
	}{
		{"zero", 0, "0m"},
		{"negative", -30, "0m"},
		{"minutes only", 45, "45m"},
		{"exact hour", 60, "1h"},
		{"exact hours", 120, "2h"},
		{"hours and minutes", 90, "1h 30m"},
		{"long week", 2310, "38h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMinutes(tt.minutes)
			require.Equal(t, tt.expected, got, "FormatMinutes(%d)", tt.minutes)
		})
	}
}

func TestFormatRateCents(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		expected string
	}{
		{"zero", 0, "0.00"},
		{"whole", 12500, "125.00"},
		{"with cents", 9950, "99.50"},
		{"single cent", 1, "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRateCents(tt.cents)
			require.Equal(t, tt.expected, got, "FormatRateCents(%d)", tt.cents)
		})
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		t        time.Time
		expected string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"just under an hour", now.Add(-59 * time.Minute), "59m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-26 * time.Hour), "1d ago"},
		{"days ago", now.Add(-50 * time.Hour), "2d ago"},
		{"future timestamp", now.Add(time.Minute), "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRelativeTime(tt.t, now)
			require.Equal(t, tt.expected, got)
		})
	}
}
