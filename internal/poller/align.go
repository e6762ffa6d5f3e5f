package poller

import (
	"fmt"
	"time"
)

// ClockRewindError is returned by [SleepDuration] when the wake time is
// already behind the current time.
type ClockRewindError struct {
	Now  time.Time
	Wake time.Time
}

func (e *ClockRewindError) Error() string {
	return fmt.Sprintf("clock rewind: wake time %s is before now %s",
		e.Wake.Format(time.RFC3339Nano), e.Now.Format(time.RFC3339Nano))
}

// NextWakeTime returns the next point in time that falls on an exact multiple
// of interval seconds since the Unix epoch.
//
// The result is always strictly after the whole second containing now, so a
// now that is already on a boundary yields now + interval. Sub-second parts of
// interval are ignored and intervals below one second are treated as one
// second.
func NextWakeTime(now time.Time, interval time.Duration) time.Time {
	step := int64(interval / time.Second)
	if step < 1 {
		step = 1
	}

	secs := now.Unix()
	rem := secs % step
	if rem < 0 {
		rem += step
	}
	return time.Unix(secs-rem+step, 0).In(now.Location())
}

// SleepDuration returns how long to sleep from now until wake.
// It fails with [*ClockRewindError] when wake is before now.
func SleepDuration(now, wake time.Time) (time.Duration, error) {
	if wake.Before(now) {
		return 0, &ClockRewindError{Now: now, Wake: wake}
	}
	return wake.Sub(now), nil
}
