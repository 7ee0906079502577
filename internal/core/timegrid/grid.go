package timegrid

import "time"

// FloorToPeriod rounds t down to the nearest period boundary of r, counted
// from the Unix epoch. The result is in UTC.
// Example: FloorToPeriod(10:35:42, HalfHour) → 10:30:00
func FloorToPeriod(t time.Time, r Resolution) time.Time {
	secs := r.Seconds()
	if secs <= 0 {
		return t.UTC()
	}
	unix := t.Unix()
	floored := unix / secs * secs
	if unix < 0 && unix%secs != 0 {
		floored -= secs
	}
	return time.Unix(floored, 0).UTC()
}

// BucketTruncate truncates t to the start of its r bucket in loc's wall clock
// and returns the boundary in UTC. "Day" in Europe/London starts at local
// midnight, not at 00:00 UTC.
func BucketTruncate(t time.Time, r Resolution, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if !r.Calendar() {
		return FloorToPeriod(t, r)
	}

	local := t.In(loc)
	year, month, day := local.Date()

	var start time.Time
	switch r {
	case Hour:
		start = time.Date(year, month, day, local.Hour(), 0, 0, 0, loc)
	case Day:
		start = time.Date(year, month, day, 0, 0, 0, 0, loc)
	case Week:
		offset := (int(local.Weekday()) + 6) % 7 // Monday = 0
		start = time.Date(year, month, day-offset, 0, 0, 0, 0, loc)
	case Month:
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case Year:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	}
	return start.UTC()
}

// Next returns the start of the bucket following the one starting at start.
func Next(start time.Time, r Resolution, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := start.In(loc)
	switch r {
	case Hour:
		return start.Add(time.Hour).UTC()
	case Day:
		return local.AddDate(0, 0, 1).UTC()
	case Week:
		return local.AddDate(0, 0, 7).UTC()
	case Month:
		return local.AddDate(0, 1, 0).UTC()
	case Year:
		return local.AddDate(1, 0, 0).UTC()
	}
	return start.Add(r.Duration()).UTC()
}

// Periods returns how many whole periods of r separate from and to.
// Only meaningful for fixed-duration resolutions.
func Periods(from, to time.Time, r Resolution) int64 {
	secs := r.Seconds()
	if secs <= 0 {
		return 0
	}
	return int64(to.Sub(from)/time.Second) / secs
}

// DaysIn returns the number of calendar days of the month containing t in loc.
func DaysIn(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return first.AddDate(0, 1, -1).Day()
}

// DaysInYear returns 365 or 366 for the year containing t in loc.
func DaysInYear(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	year := t.In(loc).Year()
	return time.Date(year, time.December, 31, 0, 0, 0, 0, loc).YearDay()
}

// CalendarSpan counts the calendar days and calendar months touched by the
// half-open window [from, to) in loc.
func CalendarSpan(from, to time.Time, loc *time.Location) (days, months int) {
	if loc == nil {
		loc = time.UTC
	}
	if !to.After(from) {
		return 0, 0
	}
	first := from.In(loc)
	last := to.Add(-time.Nanosecond).In(loc)

	d0 := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	d1 := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	days = int(d1.Sub(d0)/(24*time.Hour)) + 1

	months = (last.Year()*12 + int(last.Month())) - (first.Year()*12 + int(first.Month())) + 1
	return days, months
}
