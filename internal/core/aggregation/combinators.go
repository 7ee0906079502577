package aggregation

import (
	"math"
	"time"

	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
	"github.com/wattline/wattline/internal/tariff"
)

// BucketInput is what a per-bucket combinator sees: the samples of one
// resource inside one bucket, already scaled by the recipe.
type BucketInput struct {
	Resource         *resource.Resource
	Start            time.Time
	End              time.Time
	Resolution       timegrid.Resolution
	NativeResolution timegrid.Resolution
	Location         *time.Location

	// Collapsed is set when the whole request window is one bucket (ToOne).
	Collapsed bool

	Samples []resource.Sample
	Tariffs []tariff.Tariff
}

// Combinator folds one bucket into a value. ok is false when the bucket
// yields nothing.
type Combinator func(in *BucketInput) (value float64, ok bool)

// Combinators lists the context-free combinators recipe files may name.
var Combinators = map[string]Combinator{
	"mean": Mean,
	"sum":  Sum,
	"min":  Min,
	"max":  Max,
}

// Mean averages the samples. Samples sit on the native grid, so this is
// the time-weighted average.
func Mean(in *BucketInput) (float64, bool) {
	total, ok := Sum(in)
	if !ok {
		return 0, false
	}
	return total / float64(len(in.Samples)), true
}

// Sum adds the samples.
func Sum(in *BucketInput) (float64, bool) {
	if len(in.Samples) == 0 {
		return 0, false
	}
	var total float64
	for _, s := range in.Samples {
		total += s.Value
	}
	return total, true
}

// Min returns the smallest sample.
func Min(in *BucketInput) (float64, bool) {
	return extreme(in, math.Min)
}

// Max returns the largest sample.
func Max(in *BucketInput) (float64, bool) {
	return extreme(in, math.Max)
}

func extreme(in *BucketInput, pick func(a, b float64) float64) (float64, bool) {
	if len(in.Samples) == 0 {
		return 0, false
	}
	v := in.Samples[0].Value
	for _, s := range in.Samples[1:] {
		v = pick(v, s.Value)
	}
	return v, true
}

// PowerToEnergy integrates power samples into watt-hours: each sample is
// the average power over its native period.
func PowerToEnergy(in *BucketInput) (float64, bool) {
	if len(in.Samples) == 0 {
		return 0, false
	}
	var total float64
	for _, s := range in.Samples {
		total += s.Value * samplePeriod(in, s).Hours()
	}
	return total, true
}

// EnergyToPower converts the energy of a bucket into its average power.
func EnergyToPower(in *BucketInput) (float64, bool) {
	hours := in.End.Sub(in.Start).Hours()
	if hours <= 0 {
		return 0, false
	}
	total, ok := Sum(in)
	if !ok {
		return 0, false
	}
	return total / hours, true
}

// samplePeriod is the native period a sample stands for.
func samplePeriod(in *BucketInput, s resource.Sample) time.Duration {
	return timegrid.Next(s.Time, in.NativeResolution, in.Location).Sub(s.Time)
}
