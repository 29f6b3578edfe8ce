package format_test

import (
	"testing"
	"time"

	"studytime/internal/ui/format"
)

func TestDuration(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{12*time.Minute + 30*time.Second, "12m 30s"},
		{time.Hour + 5*time.Minute, "1h 05m"},
		{25*time.Hour + 400*time.Millisecond, "25h 00m"},
	}
	for _, tc := range cases {
		if got := format.Duration(tc.in); got != tc.want {
			t.Fatalf("Duration(%s): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestClockAndHours(t *testing.T) {
	t.Parallel()
	if got := format.Clock(time.Hour + 2*time.Minute + 3*time.Second + 900*time.Millisecond); got != "01:02:03" {
		t.Fatalf("unexpected clock %q", got)
	}
	if got := format.Clock(-time.Second); got != "00:00:00" {
		t.Fatalf("negative must clamp, got %q", got)
	}
	if got := format.Hours(90 * time.Minute); got != "1.5h" {
		t.Fatalf("unexpected hours %q", got)
	}
}

func TestAgo(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := format.Ago(now.Add(-3*time.Hour), now); got != "3 hours ago" {
		t.Fatalf("unexpected relative time %q", got)
	}
}
