package projection

import (
	"context"
	"fmt"
	"sort"
	"time"

	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/aggregation"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/core/timegrid"
	"github.com/wattline/wattline/internal/metrics"
	"github.com/wattline/wattline/internal/tariff"
)

// Engine executes resolved aggregation rules against the sample tiers.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	registry *aggregation.Registry
	samples  storage.SampleStore
	tariffs  tariff.Lister
	nowFn    func() time.Time
}

// NewEngine creates an engine. tariffs may be nil when no recipe joins
// tariffs.
func NewEngine(registry *aggregation.Registry, samples storage.SampleStore, tariffs tariff.Lister) *Engine {
	if registry == nil {
		panic("projection: registry must not be nil")
	}
	if samples == nil {
		panic("projection: sample store must not be nil")
	}
	return &Engine{
		registry: registry,
		samples:  samples,
		tariffs:  tariffs,
		nowFn:    time.Now,
	}
}

// Resolve resolves a query over resources with the engine's registry.
func (e *Engine) Resolve(resources []resource.Resource, q aggregation.Query) (*aggregation.Rules, error) {
	return e.registry.Resolve(resources, q)
}

// ToList buckets every resource by the rules' resolution, folds each bucket
// with the recipe's per-bucket combinator, then folds the per-resource
// values of each bucket with the cross-resource operator. Rows are ordered
// by time.
func (e *Engine) ToList(ctx context.Context, rules *aggregation.Rules) ([]v1.TimeValue, error) {
	defer observe("to_list", time.Now())

	r, grouped, tariffs, err := e.load(ctx, rules)
	if err != nil {
		return nil, err
	}

	buckets := make(map[time.Time][]float64)
	for i := range r.Resources {
		res := &r.Resources[i]
		samples := grouped[res.ID]
		for len(samples) > 0 {
			start := timegrid.BucketTruncate(samples[0].Time, r.Resolution, r.Location)
			end := timegrid.Next(start, r.Resolution, r.Location)

			n := 1
			for n < len(samples) && samples[n].Time.Before(end) {
				n++
			}

			in := &aggregation.BucketInput{
				Resource:         res,
				Start:            start,
				End:              end,
				Resolution:       r.Resolution,
				NativeResolution: r.NativeResolution,
				Location:         r.Location,
				Samples:          samples[:n],
				Tariffs:          tariffs[res.ID],
			}
			if v, ok := r.Params.PerBucket(in); ok {
				buckets[start] = append(buckets[start], v)
			}
			samples = samples[n:]
		}
	}

	rows := crossFold(r.Params, buckets)
	if r.Params.PostQuery != nil {
		rows = r.Params.PostQuery(rows)
	}
	return rows, nil
}

// ToOne collapses the whole window into one value. The reported time is the
// newest sample seen. Returns aggregation.ErrNoData when no rows qualify.
func (e *Engine) ToOne(ctx context.Context, rules *aggregation.Rules) (v1.ResourceValue, error) {
	defer observe("to_one", time.Now())

	r, grouped, tariffs, err := e.load(ctx, rules)
	if err != nil {
		return v1.ResourceValue{}, err
	}

	var (
		values []float64
		latest time.Time
	)
	for i := range r.Resources {
		res := &r.Resources[i]
		samples := grouped[res.ID]
		if len(samples) == 0 {
			continue
		}

		from := r.From
		if from.IsZero() {
			from = timegrid.BucketTruncate(samples[0].Time, timegrid.Day, r.Location)
		}
		in := &aggregation.BucketInput{
			Resource:         res,
			Start:            from,
			End:              r.To,
			Resolution:       r.Resolution,
			NativeResolution: r.NativeResolution,
			Location:         r.Location,
			Collapsed:        true,
			Samples:          samples,
			Tariffs:          tariffs[res.ID],
		}
		if v, ok := r.Params.PerBucket(in); ok {
			values = append(values, v)
		}
		if last := samples[len(samples)-1].Time; last.After(latest) {
			latest = last
		}
	}

	value, ok := aggregation.Fold(aggregation.Operators[r.Params.Cross], values)
	if !ok {
		return v1.ResourceValue{}, fmt.Errorf("%w: no samples for %v between %s and %s",
			aggregation.ErrNoData, resource.IDs(r.Resources), r.From.Format(time.RFC3339), r.To.Format(time.RFC3339))
	}

	if r.Params.PostQuery != nil {
		rows := r.Params.PostQuery([]v1.TimeValue{{Time: latest, Value: v1.Float(value)}})
		if len(rows) == 1 && rows[0].Value != nil {
			value = *rows[0].Value
		}
	}

	return v1.ResourceValue{
		Time:  latest,
		Value: value,
		Unit:  string(r.Params.TargetUnit),
	}, nil
}

// load applies the recipe's PreQuery to a copy of rules and reads the scaled
// samples and joined tariffs of every resource.
func (e *Engine) load(ctx context.Context, rules *aggregation.Rules) (*aggregation.Rules, map[string][]resource.Sample, map[string][]tariff.Tariff, error) {
	if rules == nil || rules.Params == nil {
		return nil, nil, nil, fmt.Errorf("%w: rules are not resolved", aggregation.ErrUnsupportedConditions)
	}

	r := *rules
	if r.Location == nil {
		r.Location = time.UTC
	}
	if r.To.IsZero() {
		r.To = e.nowFn()
	}
	if r.Params.PreQuery != nil {
		if err := r.Params.PreQuery(ctx, &r); err != nil {
			return nil, nil, nil, err
		}
	}

	rows, err := e.samples.QuerySamples(ctx, r.Tier, resource.IDs(r.Resources), r.From, r.To)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query %s samples: %w", r.Tier, err)
	}

	grouped := make(map[string][]resource.Sample, len(r.Resources))
	for _, row := range rows {
		grouped[row.ResourceID] = append(grouped[row.ResourceID], row)
	}
	for id, samples := range grouped {
		grouped[id] = r.Params.ScaleSamples(samples)
	}

	var tariffs map[string][]tariff.Tariff
	if r.Params.HasJoin(aggregation.JoinTariff) && e.tariffs != nil {
		tariffs = make(map[string][]tariff.Tariff, len(r.Resources))
		for i := range r.Resources {
			res := &r.Resources[i]
			list, err := e.tariffs.ListTariffs(ctx, res.ID, res.ProviderID, res.MeterType)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to load tariffs of %s: %w", res.ID, err)
			}
			tariffs[res.ID] = list
		}
	}

	return &r, grouped, tariffs, nil
}

// crossFold folds the per-resource values of each bucket and orders the
// buckets by time.
func crossFold(params *aggregation.Params, buckets map[time.Time][]float64) []v1.TimeValue {
	agg := aggregation.Operators[params.Cross]

	times := make([]time.Time, 0, len(buckets))
	for t := range buckets {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	rows := make([]v1.TimeValue, 0, len(times))
	for _, t := range times {
		if v, ok := aggregation.Fold(agg, buckets[t]); ok {
			rows = append(rows, v1.TimeValue{Time: t, Value: v1.Float(v)})
		}
	}
	return rows
}

func observe(method string, start time.Time) {
	metrics.QueryDurationSeconds.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
