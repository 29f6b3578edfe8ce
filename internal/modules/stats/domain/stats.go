// Package domain holds the pure aggregation over recorded sessions.
package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Entry is the part of a session the aggregations look at.
type Entry struct {
	Subject  string
	Start    time.Time
	Duration time.Duration
}

// Day is a calendar date, independent of any time zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf is the calendar date of t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time is midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Day) AddDays(n int) Day {
	return DayOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC), time.UTC)
}

func (d Day) Compare(o Day) int {
	return cmp.Or(cmp.Compare(d.Year, o.Year), cmp.Compare(d.Month, o.Month), cmp.Compare(d.Day, o.Day))
}

type SubjectTotal struct {
	Subject  string
	Total    time.Duration
	Sessions int
}

type DailyTotal struct {
	Day   Day
	Total time.Duration
}

// TotalsBySubject sums durations per subject, largest first. Subjects are
// grouped case-insensitively and keep the first spelling seen. Subjects
// without sessions do not appear.
func TotalsBySubject(entries []Entry) []SubjectTotal {
	index := map[string]int{}
	var totals []SubjectTotal
	for _, e := range entries {
		key := strings.ToLower(e.Subject)
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, SubjectTotal{Subject: e.Subject})
		}
		totals[i].Total += e.Duration
		totals[i].Sessions++
	}
	slices.SortStableFunc(totals, func(a, b SubjectTotal) int {
		return cmp.Or(cmp.Compare(b.Total, a.Total), strings.Compare(a.Subject, b.Subject))
	})
	return totals
}

// TotalsByDay sums durations per calendar day of each session's start in
// loc, oldest day first. A session crossing midnight counts wholly for the
// day it started.
func TotalsByDay(entries []Entry, loc *time.Location) []DailyTotal {
	sums := map[Day]time.Duration{}
	for _, e := range entries {
		sums[DayOf(e.Start, loc)] += e.Duration
	}
	totals := make([]DailyTotal, 0, len(sums))
	for day, total := range sums {
		totals = append(totals, DailyTotal{Day: day, Total: total})
	}
	slices.SortFunc(totals, func(a, b DailyTotal) int { return a.Day.Compare(b.Day) })
	return totals
}

func OverallTotal(entries []Entry) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Duration
	}
	return total
}

// LastNDays returns exactly n days ending with the day of reference in loc,
// oldest first, with zero totals for days without sessions.
func LastNDays(entries []Entry, n int, reference time.Time, loc *time.Location) []DailyTotal {
	if n <= 0 {
		return []DailyTotal{}
	}
	last := DayOf(reference, loc)
	first := last.AddDays(-(n - 1))
	out := make([]DailyTotal, n)
	for i := range out {
		out[i].Day = first.AddDays(i)
	}
	for _, e := range entries {
		day := DayOf(e.Start, loc)
		if day.Compare(first) < 0 || day.Compare(last) > 0 {
			continue
		}
		i := int(day.Time(time.UTC).Sub(first.Time(time.UTC)) / (24 * time.Hour))
		out[i].Total += e.Duration
	}
	return out
}

// Share is part/whole as a percentage, 0 when whole is 0.
func Share(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
