package poller

import (
	"errors"
	"testing"
	"time"
)

func TestNextWakeTime(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		interval time.Duration
		want     time.Time
	}{
		{
			name:     "mid interval",
			now:      time.Unix(1700000003, 0),
			interval: 5 * time.Second,
			want:     time.Unix(1700000005, 0),
		},
		{
			name:     "exactly on boundary advances a full interval",
			now:      time.Unix(1700000000, 0),
			interval: 5 * time.Second,
			want:     time.Unix(1700000005, 0),
		},
		{
			name:     "sub-second part truncated",
			now:      time.Unix(1700000004, 900_000_000),
			interval: 5 * time.Second,
			want:     time.Unix(1700000005, 0),
		},
		{
			name:     "boundary second with fraction",
			now:      time.Unix(1700000000, 500_000_000),
			interval: 5 * time.Second,
			want:     time.Unix(1700000005, 0),
		},
		{
			name:     "one minute",
			now:      time.Unix(1700000001, 0),
			interval: time.Minute,
			want:     time.Unix(1700000040, 0),
		},
		{
			name:     "interval below one second",
			now:      time.Unix(10, 100),
			interval: 500 * time.Millisecond,
			want:     time.Unix(11, 0),
		},
		{
			name:     "before epoch",
			now:      time.Unix(-3, 0),
			interval: 5 * time.Second,
			want:     time.Unix(0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextWakeTime(tt.now, tt.interval)
			if !got.Equal(tt.want) {
				t.Errorf("NextWakeTime(%v, %v) = %v, want %v", tt.now.Unix(), tt.interval, got.Unix(), tt.want.Unix())
			}
		})
	}
}

// TestNextWakeTime_Properties checks alignment and monotonicity across a
// spread of start times and intervals.
func TestNextWakeTime_Properties(t *testing.T) {
	intervals := []int64{1, 2, 5, 7, 10, 30, 60, 300, 3600}
	base := int64(1700000000)

	for _, iv := range intervals {
		interval := time.Duration(iv) * time.Second
		for offset := int64(0); offset < 2*iv+3; offset++ {
			for _, nanos := range []int64{0, 1, 499_999_999, 999_999_999} {
				now := time.Unix(base+offset, nanos)
				wake := NextWakeTime(now, interval)

				if wake.Unix()%iv != 0 {
					t.Fatalf("interval %ds, now %v: wake %d not aligned", iv, now, wake.Unix())
				}
				if wake.Nanosecond() != 0 {
					t.Fatalf("interval %ds, now %v: wake has sub-second part %d", iv, now, wake.Nanosecond())
				}
				if wake.Before(now) {
					t.Fatalf("interval %ds: wake %v before now %v", iv, wake, now)
				}
				if wake.Sub(now) > interval {
					t.Fatalf("interval %ds: wake %v more than one interval after now %v", iv, wake, now)
				}

				d, err := SleepDuration(now, wake)
				if err != nil {
					t.Fatalf("SleepDuration() error = %v", err)
				}
				if d < 0 {
					t.Fatalf("SleepDuration() = %v, want >= 0", d)
				}
			}
		}
	}
}

func TestSleepDuration(t *testing.T) {
	now := time.Unix(1700000000, 0)

	d, err := SleepDuration(now, now.Add(3*time.Second))
	if err != nil {
		t.Fatalf("SleepDuration() error = %v", err)
	}
	if d != 3*time.Second {
		t.Errorf("SleepDuration() = %v, want 3s", d)
	}

	d, err = SleepDuration(now, now)
	if err != nil || d != 0 {
		t.Errorf("SleepDuration(now, now) = (%v, %v), want (0, nil)", d, err)
	}
}

func TestSleepDuration_ClockRewind(t *testing.T) {
	now := time.Unix(1700000000, 0)
	wake := now.Add(-time.Second)

	_, err := SleepDuration(now, wake)
	if err == nil {
		t.Fatal("SleepDuration() expected error when wake is before now")
	}

	var rewind *ClockRewindError
	if !errors.As(err, &rewind) {
		t.Fatalf("error = %T, want *ClockRewindError", err)
	}
	if !rewind.Now.Equal(now) || !rewind.Wake.Equal(wake) {
		t.Errorf("ClockRewindError = %+v", rewind)
	}
}
