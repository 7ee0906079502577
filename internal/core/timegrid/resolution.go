package timegrid

import (
	"fmt"
	"time"
)

// Resolution is a named time granularity. Sub-hour resolutions are fixed
// durations; hour and coarser follow the calendar of a target timezone.
type Resolution string

const (
	Minute         Resolution = "1m"
	FiveMinutes    Resolution = "5m"
	TenMinutes     Resolution = "10m"
	FifteenMinutes Resolution = "15m"
	HalfHour       Resolution = "30m"
	Hour           Resolution = "1h"
	Day            Resolution = "1d"
	Week           Resolution = "1w"
	Month          Resolution = "1mo"
	Year           Resolution = "1y"
)

// Finest is the finest granularity samples can be stored at. Interpolation is
// never applied at this resolution.
const Finest = Minute

// resolutions lists every supported resolution, finest first.
var resolutions = []Resolution{
	Minute, FiveMinutes, TenMinutes, FifteenMinutes, HalfHour,
	Hour, Day, Week, Month, Year,
}

// nominal durations; month and year are averages and only used for ordering
// and for choosing between tiers.
var durations = map[Resolution]time.Duration{
	Minute:         time.Minute,
	FiveMinutes:    5 * time.Minute,
	TenMinutes:     10 * time.Minute,
	FifteenMinutes: 15 * time.Minute,
	HalfHour:       30 * time.Minute,
	Hour:           time.Hour,
	Day:            24 * time.Hour,
	Week:           7 * 24 * time.Hour,
	Month:          30 * 24 * time.Hour,
	Year:           365 * 24 * time.Hour,
}

// ParseResolution validates a resolution label such as "30m", "1d" or "1mo".
func ParseResolution(s string) (Resolution, error) {
	if s == "" {
		return "", fmt.Errorf("resolution must not be empty")
	}
	r := Resolution(s)
	if _, ok := durations[r]; !ok {
		return "", fmt.Errorf("unsupported resolution %q", s)
	}
	return r, nil
}

// All returns the supported resolutions, finest first.
func All() []Resolution {
	out := make([]Resolution, len(resolutions))
	copy(out, resolutions)
	return out
}

// Valid reports whether r is a supported resolution.
func (r Resolution) Valid() bool {
	_, ok := durations[r]
	return ok
}

// Duration returns the nominal length of one period.
func (r Resolution) Duration() time.Duration {
	return durations[r]
}

// Seconds returns the nominal length of one period in seconds.
func (r Resolution) Seconds() int64 {
	return int64(durations[r] / time.Second)
}

// Calendar reports whether buckets of r follow wall-clock boundaries.
func (r Resolution) Calendar() bool {
	switch r {
	case Hour, Day, Week, Month, Year:
		return true
	}
	return false
}

// Finer reports whether r is strictly finer than other.
func (r Resolution) Finer(other Resolution) bool {
	return r.Duration() < other.Duration()
}

func (r Resolution) String() string {
	return string(r)
}
