package dto

import "time"

type SubjectTotalOutput struct {
	Subject  string
	Total    time.Duration
	Sessions int
	Share    float64
}

type DayTotalOutput struct {
	Day   string
	Date  time.Time
	Total time.Duration
}

// Stale marks results computed from the last good data after the session
// store could not be read.
type SubjectTotalsOutput struct {
	Items []SubjectTotalOutput
	Stale bool
}

type DayTotalsOutput struct {
	Items []DayTotalOutput
	Stale bool
}

type OverallOutput struct {
	Total    time.Duration
	Sessions int
	Stale    bool
}

type ReportOutput struct {
	Subjects []SubjectTotalOutput
	Days     []DayTotalOutput
	LastDays []DayTotalOutput
	Overall  time.Duration
	Sessions int
	Stale    bool
}
