// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/zjrosen/stint/internal/ui/shared/textwidth"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
// Grapheme clusters are never split, so emoji in notes truncate cleanly.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if textwidth.Width(s) <= maxWidth {
		return s
	}

	// Too narrow for an ellipsis suffix
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	return textwidth.TruncateWithTail(s, maxWidth, "...")
}

// FormatMinutes renders a duration in minutes as "2h", "45m" or "1h 30m".
// Zero and negative values render as "0m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}

	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// FormatRateCents renders an hourly rate stored in cents as "125.00".
func FormatRateCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// FormatRelativeTime renders how long ago t was relative to now:
// "just now", "5m ago", "3h ago", "2d ago".
func FormatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
