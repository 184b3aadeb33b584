package utils

import (
	"testing"
	"time"
)

func TestFormatRoundedUnit(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{59, "59s"},
		{-30, "30s"},
		{60, "1m"},
		{3599, "59m"},
		{3600, "1h"},
		{7300, "2h"},
		{86400, "1d"},
		{3 * 86400, "3d"},
	}

	for _, tt := range tests {
		if got := FormatRoundedUnit(tt.seconds); got != tt.want {
			t.Errorf("FormatRoundedUnit(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"now", now, "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"future", now.Add(90 * time.Second), "in 1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAge(tt.t, now); got != tt.want {
				t.Errorf("FormatAge() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %s, want short", got)
	}
	if got := Truncate("a very long window title", 10); got != "a very ..." {
		t.Errorf("Truncate() = %s, want %q", got, "a very ...")
	}
	if got := Truncate("äöüäöü", 3); got != "äöü" {
		t.Errorf("Truncate() = %s, want äöü", got)
	}
}
