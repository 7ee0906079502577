package aggregation

import "math"

// Cross-resource operators.
const (
	OpSum = "sum"
	OpAvg = "avg"
	OpMin = "min"
	OpMax = "max"
)

// Aggregator defines how the per-resource values of one bucket are folded
// into a single value. To add an operator: implement this interface and add
// it to Operators.
type Aggregator interface {
	// Initial returns the aggregate after the first resource's value.
	Initial(incoming float64) float64

	// Apply folds the next resource's value into the aggregate.
	Apply(current, incoming float64) float64
}

// Finisher is implemented by operators whose state needs a final step once
// all n values are folded in.
type Finisher interface {
	Finish(current float64, n int) float64
}

// Operators is the registry of cross-resource operators.
var Operators = map[string]Aggregator{
	OpSum: sumAgg{},
	OpAvg: avgAgg{},
	OpMin: minAgg{},
	OpMax: maxAgg{},
}

// ValidOperator reports whether op is a registered operator.
func ValidOperator(op string) bool {
	_, ok := Operators[op]
	return ok
}

// Fold reduces values with agg. ok is false for an empty slice.
func Fold(agg Aggregator, values []float64) (result float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	result = agg.Initial(values[0])
	for _, v := range values[1:] {
		result = agg.Apply(result, v)
	}
	if f, isFinisher := agg.(Finisher); isFinisher {
		result = f.Finish(result, len(values))
	}
	return result, true
}

type sumAgg struct{}

func (sumAgg) Initial(v float64) float64      { return v }
func (sumAgg) Apply(cur, inc float64) float64 { return cur + inc }

// avgAgg sums and divides on Finish.
type avgAgg struct{}

func (avgAgg) Initial(v float64) float64      { return v }
func (avgAgg) Apply(cur, inc float64) float64 { return cur + inc }
func (avgAgg) Finish(cur float64, n int) float64 {
	return cur / float64(n)
}

type minAgg struct{}

func (minAgg) Initial(v float64) float64      { return v }
func (minAgg) Apply(cur, inc float64) float64 { return math.Min(cur, inc) }

type maxAgg struct{}

func (maxAgg) Initial(v float64) float64      { return v }
func (maxAgg) Apply(cur, inc float64) float64 { return math.Max(cur, inc) }
