package utils

import (
	"fmt"
	"time"
)

// FormatRoundedUnit renders a duration in seconds with a single coarse unit
func FormatRoundedUnit(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds >= 86400 {
		return fmt.Sprintf("%dd", seconds/86400)
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%dh", seconds/3600)
	}
	return fmt.Sprintf("%dm", seconds/60)
}

// FormatAge renders how long ago t was, relative to now
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < time.Second && d > -time.Second {
		return "just now"
	}
	if d < 0 {
		return "in " + FormatRoundedUnit(int64(d/time.Second))
	}
	return FormatRoundedUnit(int64(d/time.Second)) + " ago"
}

// Truncate shortens s to maxLen runes, marking the cut with "..."
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
