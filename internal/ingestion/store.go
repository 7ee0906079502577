package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/aggregation"
	"github.com/wattline/wattline/internal/core/interpolate"
	"github.com/wattline/wattline/internal/core/partition"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/core/timegrid"
	"github.com/wattline/wattline/internal/metrics"
)

// ErrInvalidSample is returned when a raw sample fails validation or does not
// match the unit of its resource.
var ErrInvalidSample = errors.New("invalid sample")

// AbnormalValueChecker inspects raw readings before they are persisted.
// Implementations raise alerts out of band; they never block ingestion.
type AbnormalValueChecker interface {
	Check(ctx context.Context, res *resource.Resource, sample v1.RawSample)
}

// NopChecker ignores every reading.
type NopChecker struct{}

func (NopChecker) Check(context.Context, *resource.Resource, v1.RawSample) {}

// Options tunes interpolation and rollup.
type Options struct {
	// MaxPeriodsForInterpolation bounds forward interpolation: beyond this
	// many periods since the previous point the raw value is stored as is.
	MaxPeriodsForInterpolation int

	// MaxMissedPeriodsForInterpolation bounds backfill of skipped periods.
	MaxMissedPeriodsForInterpolation int

	// MaxInterpolationRange is the longest gap rollup integrates linearly.
	MaxInterpolationRange time.Duration

	// Location is the wall clock of calendar long-term buckets.
	Location *time.Location

	Checker AbnormalValueChecker
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxPeriodsForInterpolation:       4,
		MaxMissedPeriodsForInterpolation: 12,
		MaxInterpolationRange:            6 * time.Hour,
		Location:                         time.UTC,
		Checker:                          NopChecker{},
	}
}

// ResourceStore writes samples into the historical tiers and maintains the
// per-resource last-value cache and high-water marks.
type ResourceStore struct {
	samples   storage.SampleStore
	resources storage.ResourceRepository
	opts      Options
	locks     partition.Locks
	nowFn     func() time.Time
}

// NewResourceStore creates a store over the given repositories.
func NewResourceStore(samples storage.SampleStore, resources storage.ResourceRepository, opts Options) *ResourceStore {
	if samples == nil {
		panic("ingestion: sample store must not be nil")
	}
	if resources == nil {
		panic("ingestion: resource repository must not be nil")
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Checker == nil {
		opts.Checker = NopChecker{}
	}
	return &ResourceStore{
		samples:   samples,
		resources: resources,
		opts:      opts,
		nowFn:     time.Now,
	}
}

// AddValue stores one raw reading on the live tier of res.
//
// The reading is snapped to the period boundary at or before its time. When
// the resource interpolates, the stored value is the line from the previous
// grid point to the reading evaluated at that boundary, and periods skipped
// since the previous point are backfilled on the same line. A reading that
// falls in an already stored period is a no-op.
func (s *ResourceStore) AddValue(ctx context.Context, res *resource.Resource, sample v1.RawSample) error {
	if err := sample.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSample, err)
	}
	if sample.Unit != "" && resource.Unit(sample.Unit) != res.Unit {
		return fmt.Errorf("%w: unit %q does not match resource unit %q", ErrInvalidSample, sample.Unit, res.Unit)
	}

	start := time.Now()
	defer func() {
		metrics.IngestDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	s.opts.Checker.Check(ctx, res, sample)

	defer s.locks.Lock(res.ID)()

	tier := res.LiveTier()
	native := res.LiveResolution()
	target := timegrid.FloorToPeriod(sample.Time, native)
	raw := interpolate.Point{Time: sample.Time, Value: sample.Value}

	points := []interpolate.Point{{Time: target, Value: sample.Value}}
	interpolated := 0

	if res.Interpolates() {
		prev, ok, err := s.samples.LatestSampleAtOrBefore(ctx, tier, res.ID, sample.Time)
		if err != nil {
			return fmt.Errorf("failed to load previous sample for %s: %w", res.ID, err)
		}
		if ok {
			if !target.After(timegrid.FloorToPeriod(prev.Time, native)) {
				metrics.SamplesTotal.WithLabelValues(string(tier), metrics.OutcomeSkipped).Inc()
				return nil
			}

			prevPoint := interpolate.Point{Time: prev.Time, Value: prev.Value}
			periods := timegrid.Periods(prev.Time, target, native)

			if periods <= int64(s.opts.MaxPeriodsForInterpolation) {
				points[0].Value = interpolate.ValueAt(prevPoint, raw, target)
			}

			if periods > 1 && periods <= int64(s.opts.MaxMissedPeriodsForInterpolation) {
				backfill := make([]interpolate.Point, 0, periods)
				for at := timegrid.Next(prev.Time, native, time.UTC); at.Before(target); at = timegrid.Next(at, native, time.UTC) {
					backfill = append(backfill, interpolate.Point{
						Time:  at,
						Value: interpolate.ValueAt(prevPoint, raw, at),
					})
				}
				interpolated = len(backfill)
				points = append(backfill, points...)
			}
		}
	}

	var newest *interpolate.Point
	for i, p := range points {
		err := s.samples.InsertSample(ctx, tier, resource.Sample{ResourceID: res.ID, Time: p.Time, Value: p.Value})
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			metrics.SamplesTotal.WithLabelValues(string(tier), metrics.OutcomeDuplicate).Inc()
			continue
		case err != nil:
			return fmt.Errorf("failed to insert sample for %s at %s: %w", res.ID, p.Time.Format(time.RFC3339), err)
		}

		outcome := metrics.OutcomeStored
		if i < interpolated {
			outcome = metrics.OutcomeInterpolated
		}
		metrics.SamplesTotal.WithLabelValues(string(tier), outcome).Inc()
		newest = &points[i]
	}

	if newest == nil {
		return nil
	}

	updated, err := s.resources.UpdateLastValue(ctx, res.ID, tier, newest.Value, newest.Time)
	if err != nil {
		return fmt.Errorf("failed to update last value for %s: %w", res.ID, err)
	}
	if updated {
		slog.Debug("[Ingestion] Last value updated", "resource_id", res.ID, "time", newest.Time, "value", newest.Value)
	}
	return nil
}

// GetLatestValue returns the cached newest value of a resource.
func (s *ResourceStore) GetLatestValue(ctx context.Context, resourceID string) (v1.ResourceValue, error) {
	res, err := s.resources.GetResource(ctx, resourceID)
	if err != nil {
		return v1.ResourceValue{}, err
	}
	if res.LastValue == nil || res.LastValueTime.IsZero() {
		return v1.ResourceValue{}, fmt.Errorf("%w: resource %s has no samples", aggregation.ErrNoData, resourceID)
	}
	return v1.ResourceValue{
		Time:  res.LastValueTime,
		Value: *res.LastValue,
		Unit:  string(res.Unit),
	}, nil
}
