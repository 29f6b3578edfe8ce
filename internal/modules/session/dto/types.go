package dto

import "time"

type StopwatchOutput struct {
	State     string
	SessionID string
	Subject   string
	StartedAt time.Time
	Elapsed   time.Duration
}

func (o StopwatchOutput) Active() bool { return o.State != "" && o.State != "idle" }

type SessionOutput struct {
	ID       string
	Subject  string
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

type RecordInput struct {
	Subject string
	Start   time.Time
	End     time.Time
}

type EditInput struct {
	ID       string
	Subject  *string
	Start    *time.Time
	End      *time.Time
	Duration *time.Duration
}

type ListInput struct {
	Subject string
	Limit   int
}
