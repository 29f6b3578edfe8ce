package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. Round(0) drops the monotonic reading so
// differences between two readings include time the machine spent suspended.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().Round(0).UTC().Truncate(time.Millisecond)
}
