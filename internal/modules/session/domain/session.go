package domain

import (
	"strings"
	"time"

	apperrors "studytime/internal/platform/errors"
)

// Session is one finished study period. Duration is the net running time,
// so with pauses it is shorter than End-Start.
type Session struct {
	ID       string
	Subject  string
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return apperrors.Validation("session id is required")
	}
	if strings.TrimSpace(s.Subject) == "" {
		return apperrors.Validation("session subject is required")
	}
	if s.Start.IsZero() || s.End.IsZero() {
		return apperrors.Validation("session start and end are required")
	}
	if s.End.Before(s.Start) {
		return apperrors.Validation("session end %s is before start %s", s.End.Format(time.RFC3339), s.Start.Format(time.RFC3339))
	}
	if s.Duration < 0 {
		return apperrors.Validation("session duration must be non-negative")
	}
	if s.Duration > s.End.Sub(s.Start) {
		return apperrors.Validation("session duration %s exceeds its span %s", s.Duration, s.End.Sub(s.Start))
	}
	return nil
}

// Patch lists the fields of an edit. Nil fields are left as they are.
type Patch struct {
	Subject  *string
	Start    *time.Time
	End      *time.Time
	Duration *time.Duration
}

func (p Patch) Empty() bool {
	return p.Subject == nil && p.Start == nil && p.End == nil && p.Duration == nil
}

// Apply returns s with the patch applied. Moving either bound without an
// explicit duration resets the duration to the new span.
func (p Patch) Apply(s Session) Session {
	if p.Subject != nil {
		s.Subject = strings.TrimSpace(*p.Subject)
	}
	if p.Start != nil {
		s.Start = p.Start.UTC()
	}
	if p.End != nil {
		s.End = p.End.UTC()
	}
	switch {
	case p.Duration != nil:
		s.Duration = *p.Duration
	case p.Start != nil || p.End != nil:
		s.Duration = s.End.Sub(s.Start)
	}
	return s
}
