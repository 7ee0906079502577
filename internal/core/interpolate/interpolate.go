// Package interpolate evaluates and integrates the straight line between two
// timestamped samples. Ingestion uses it to fill gaps on the time grid and the
// long-term rollup uses it to compute time-weighted bucket averages.
package interpolate

import "time"

// Point is a single (time, value) sample.
type Point struct {
	Time  time.Time
	Value float64
}

// ValueAt evaluates the line through p1 and p2 at t.
// Returns p1.Value when t is at or before p1.
func ValueAt(p1, p2 Point, t time.Time) float64 {
	if !t.After(p1.Time) {
		return p1.Value
	}
	span := p2.Time.Sub(p1.Time).Seconds()
	if span <= 0 {
		return p2.Value
	}
	slope := (p2.Value - p1.Value) / span
	return p1.Value + slope*t.Sub(p1.Time).Seconds()
}

// Coverage returns how many seconds of [windowStart, windowEnd] lie between p1
// and p2.
func Coverage(p1, p2 Point, windowStart, windowEnd time.Time) float64 {
	start, end := clip(p1.Time, p2.Time, windowStart, windowEnd)
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Seconds()
}

// Integral returns the area (value × seconds) under the line through p1 and
// p2, clipped to [windowStart, windowEnd].
//
// When the samples are more than maxRange apart the line is not trusted: the
// segment is treated as a step, each endpoint owning its half, and the value
// of whichever half covers more of the clipped window is used for all of it.
// A zero maxRange disables the fallback.
func Integral(p1, p2 Point, windowStart, windowEnd time.Time, maxRange time.Duration) float64 {
	start, end := clip(p1.Time, p2.Time, windowStart, windowEnd)
	if !end.After(start) {
		return 0
	}
	seconds := end.Sub(start).Seconds()

	if maxRange > 0 && p2.Time.Sub(p1.Time) > maxRange {
		mid := p1.Time.Add(p2.Time.Sub(p1.Time) / 2)
		firstHalf := overlap(start, end, p1.Time, mid)
		secondHalf := overlap(start, end, mid, p2.Time)
		if firstHalf >= secondHalf {
			return p1.Value * seconds
		}
		return p2.Value * seconds
	}

	// Trapezoid between the line's values at the clipped edges.
	return (ValueAt(p1, p2, start) + ValueAt(p1, p2, end)) / 2 * seconds
}

func clip(a, b, windowStart, windowEnd time.Time) (time.Time, time.Time) {
	start := a
	if windowStart.After(start) {
		start = windowStart
	}
	end := b
	if windowEnd.Before(end) {
		end = windowEnd
	}
	return start, end
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start, end := clip(aStart, aEnd, bStart, bEnd)
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
