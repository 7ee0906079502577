package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wattline/wattline/internal/core/interpolate"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/core/timegrid"
	"github.com/wattline/wattline/internal/metrics"
)

// RollUpToLongTerm computes time-weighted averages of detailed samples into
// long-term buckets ending at or before end (now when zero). A bucket is
// finalized only once a detailed sample at or after its end exists, so a
// partially observed bucket is picked up again by the next run. Returns the
// number of buckets written.
func (s *ResourceStore) RollUpToLongTerm(ctx context.Context, res *resource.Resource, end time.Time) (int, error) {
	if !res.HasDetailed() || !res.HasLongTerm() {
		return 0, nil
	}
	if end.IsZero() {
		end = s.nowFn()
	}

	defer s.locks.Lock(res.ID)()

	// The caller's copy may predate the previous run.
	current, err := s.resources.GetResource(ctx, res.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to reload resource %s: %w", res.ID, err)
	}

	lt := current.LongTermResolution
	loc := s.opts.Location

	var start time.Time
	if hw := current.LongTermHighWater; !hw.IsZero() {
		start = timegrid.Next(timegrid.BucketTruncate(hw, lt, loc), lt, loc)
	} else {
		first, ok, err := s.samples.FirstSample(ctx, resource.TierDetailed, res.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to load first detailed sample of %s: %w", res.ID, err)
		}
		if !ok {
			return 0, nil
		}
		start = timegrid.BucketTruncate(first.Time, lt, loc)
	}
	if !start.Before(end) {
		return 0, nil
	}

	points, err := s.rollupPoints(ctx, res.ID, start, end)
	if err != nil {
		return 0, err
	}

	var (
		bucketStart = start
		bucketEnd   = timegrid.Next(start, lt, loc)
		area        float64
		covered     float64
		finalized   int
		lastBucket  time.Time
	)

	finalize := func() error {
		defer func() {
			area, covered = 0, 0
			bucketStart = bucketEnd
			bucketEnd = timegrid.Next(bucketStart, lt, loc)
		}()
		if covered == 0 {
			return nil
		}

		value := area / bucketEnd.Sub(bucketStart).Seconds()
		err := s.samples.InsertSample(ctx, resource.TierLongTerm, resource.Sample{
			ResourceID: res.ID,
			Time:       bucketStart,
			Value:      value,
		})
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			slog.Warn("[Rollup] Long-term bucket already present", "resource_id", res.ID, "bucket", bucketStart)
		case err != nil:
			return fmt.Errorf("failed to write long-term bucket %s for %s: %w", bucketStart.Format(time.RFC3339), res.ID, err)
		default:
			finalized++
			metrics.RollupBucketsTotal.Inc()
		}
		lastBucket = bucketStart
		return nil
	}

	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1], points[i]
		for !p2.Time.Before(bucketEnd) {
			area += interpolate.Integral(p1, p2, bucketStart, bucketEnd, s.opts.MaxInterpolationRange)
			covered += interpolate.Coverage(p1, p2, bucketStart, bucketEnd)
			if err := finalize(); err != nil {
				return finalized, err
			}
		}
		area += interpolate.Integral(p1, p2, bucketStart, bucketEnd, s.opts.MaxInterpolationRange)
		covered += interpolate.Coverage(p1, p2, bucketStart, bucketEnd)
	}

	if lastBucket.IsZero() {
		return 0, nil
	}

	if _, err := s.resources.AdvanceLongTermHighWater(ctx, res.ID, lastBucket); err != nil {
		return finalized, fmt.Errorf("failed to advance long-term high-water mark of %s: %w", res.ID, err)
	}

	slog.Info("[Rollup] Finalized long-term buckets",
		"resource_id", res.ID,
		"buckets", finalized,
		"high_water", lastBucket)
	return finalized, nil
}

// rollupPoints loads the detailed samples in [start, end], preceded by the
// newest sample before start so that the first bucket sees its left edge.
func (s *ResourceStore) rollupPoints(ctx context.Context, resourceID string, start, end time.Time) ([]interpolate.Point, error) {
	rows, err := s.samples.QuerySamples(ctx, resource.TierDetailed, []string{resourceID}, start, end.Add(time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("failed to load detailed samples of %s: %w", resourceID, err)
	}

	points := make([]interpolate.Point, 0, len(rows)+1)

	prev, ok, err := s.samples.LatestSampleAtOrBefore(ctx, resource.TierDetailed, resourceID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load detailed sample before %s: %w", start.Format(time.RFC3339), err)
	}
	if ok && prev.Time.Before(start) {
		points = append(points, interpolate.Point{Time: prev.Time, Value: prev.Value})
	}

	for _, row := range rows {
		points = append(points, interpolate.Point{Time: row.Time, Value: row.Value})
	}
	return points, nil
}

// PruneDetailed deletes detailed samples older than the retention window of
// res. Samples not yet rolled up into the long-term tier are kept.
func (s *ResourceStore) PruneDetailed(ctx context.Context, res *resource.Resource, now time.Time) (int64, error) {
	if !res.HasDetailed() || res.DetailedRetention <= 0 {
		return 0, nil
	}

	cutoff := now.Add(-res.DetailedRetention)
	if res.HasLongTerm() {
		current, err := s.resources.GetResource(ctx, res.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to reload resource %s: %w", res.ID, err)
		}
		if current.LongTermHighWater.IsZero() {
			return 0, nil
		}
		if current.LongTermHighWater.Before(cutoff) {
			cutoff = current.LongTermHighWater
		}
	}

	deleted, err := s.samples.DeleteSamplesBefore(ctx, resource.TierDetailed, res.ID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune detailed samples of %s: %w", res.ID, err)
	}
	if deleted > 0 {
		metrics.PrunedSamplesTotal.Add(float64(deleted))
		slog.Info("[Rollup] Pruned detailed samples", "resource_id", res.ID, "deleted", deleted, "before", cutoff)
	}
	return deleted, nil
}
