package v1

import (
	"fmt"
	"math"
	"time"
)

// RawSample is a single reading pushed or pulled from a meter connector.
type RawSample struct {
	// Time is when the reading was taken (meter clock).
	Time time.Time `json:"time"`

	// Value is the reading in Unit.
	Value float64 `json:"value"`

	// Unit must match the native unit of the resource the sample is written to.
	Unit string `json:"unit"`
}

// Validate ensures the sample carries a usable time and value.
func (s *RawSample) Validate() error {
	if s.Time.IsZero() {
		return fmt.Errorf("time is required")
	}
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return fmt.Errorf("value must be a finite number")
	}
	return nil
}

// TimeValue is one bucket of an aggregated series. Value is nil for buckets
// inserted by gap filling.
type TimeValue struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

// TimeValueWithComparison pairs a bucket of the primary window with the
// aligned bucket of the reference window. Either side may be nil.
type TimeValueWithComparison struct {
	Time     time.Time `json:"time"`
	Value    *float64  `json:"value"`
	CmpValue *float64  `json:"cmp_value"`
}

// ResourceValue is a single scalar result in the resolved target unit.
type ResourceValue struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
	Unit  string    `json:"unit"`
}

// HourValue is one entry of an hour-of-day profile (Hour is 0-23).
type HourValue struct {
	Hour  int      `json:"hour"`
	Value *float64 `json:"value"`
}

// Float returns a pointer to v, for building nullable values.
func Float(v float64) *float64 {
	return &v
}
