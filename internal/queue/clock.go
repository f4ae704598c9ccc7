// server/internal/queue/clock.go
package queue

import "time"

// Clock supplies the current time. The store depends on it for day bucketing
// and queue-number resets, so tests can pin the day boundary.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// DateKey formats t as the calendar-day bucket key. Days are bucketed in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
