// Package format renders durations and timestamps for people.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Duration renders d as "1h 05m", "12m 30s" or "45s".
func Duration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// Clock renders d as a stopwatch face, HH:MM:SS.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second))
}

// Hours renders d in decimal hours.
func Hours(d time.Duration) string {
	return fmt.Sprintf("%.1fh", d.Hours())
}

// Stamp renders t in loc as "2006-01-02 15:04".
func Stamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}

// Ago renders t relative to now, e.g. "3 hours ago".
func Ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
