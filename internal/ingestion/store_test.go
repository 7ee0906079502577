package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/aggregation"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/core/storage/memory"
	"github.com/wattline/wattline/internal/core/timegrid"
	storagemocks "github.com/wattline/wattline/internal/mocks/storage"
)

var day = time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newTestStore(t *testing.T, res resource.Resource, opts Options) (*ResourceStore, *memory.Store, *resource.Resource) {
	t.Helper()
	mem := memory.New()
	require.NoError(t, mem.SaveResource(context.Background(), &res))
	saved, err := mem.GetResource(context.Background(), res.ID)
	require.NoError(t, err)
	return NewResourceStore(mem, mem, opts), mem, saved
}

func hourly() resource.Resource {
	return resource.Resource{
		ID:                 "meter-1",
		Unit:               resource.Watt,
		MeterType:          resource.MeterElectricity,
		DetailedResolution: timegrid.Hour,
		LongTermResolution: timegrid.Day,
	}
}

func halfHourly() resource.Resource {
	return resource.Resource{
		ID:                 "meter-1",
		Unit:               resource.Watt,
		MeterType:          resource.MeterElectricity,
		DetailedResolution: timegrid.HalfHour,
		LongTermResolution: timegrid.Hour,
	}
}

func stored(t *testing.T, mem *memory.Store, tier resource.Tier) map[time.Time]float64 {
	t.Helper()
	rows, err := mem.QuerySamples(context.Background(), tier, []string{"meter-1"}, time.Time{}, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	out := make(map[time.Time]float64, len(rows))
	for _, row := range rows {
		out[row.Time] = row.Value
	}
	return out
}

func TestAddValue_SingleSampleIsLatest(t *testing.T) {
	store, _, res := newTestStore(t, halfHourly(), DefaultOptions())
	ctx := context.Background()

	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(10, 7), Value: 100, Unit: "W"}))

	latest, err := store.GetLatestValue(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, at(10, 0), latest.Time)
	require.Equal(t, 100.0, latest.Value)
	require.Equal(t, "W", latest.Unit)
}

func TestAddValue_BackfillsMissedPeriods(t *testing.T) {
	store, mem, res := newTestStore(t, hourly(), DefaultOptions())
	ctx := context.Background()

	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(10, 0), Value: 10}))
	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(13, 0), Value: 40}))

	rows := stored(t, mem, resource.TierDetailed)
	require.Len(t, rows, 4)
	for ts, want := range map[time.Time]float64{at(10, 0): 10, at(11, 0): 20, at(12, 0): 30, at(13, 0): 40} {
		require.InDelta(t, want, rows[ts], 1e-9, "at %s", ts.Format(time.Kitchen))
	}

	latest, err := store.GetLatestValue(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, at(13, 0), latest.Time)
}

func TestAddValue_ForwardInterpolation(t *testing.T) {
	store, mem, res := newTestStore(t, halfHourly(), DefaultOptions())
	ctx := context.Background()

	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(10, 0), Value: 0}))
	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(10, 45), Value: 30}))

	rows := stored(t, mem, resource.TierDetailed)
	require.Len(t, rows, 2)
	require.InDelta(t, 20, rows[at(10, 30)], 1e-9)
}

func TestAddValue_SamePeriodIsNoop(t *testing.T) {
	store, mem, res := newTestStore(t, hourly(), DefaultOptions())
	ctx := context.Background()

	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(10, 0), Value: 10}))
	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(10, 20), Value: 99}))

	require.Equal(t, map[time.Time]float64{at(10, 0): 10}, stored(t, mem, resource.TierDetailed))
}

func TestAddValue_InterpolationCaps(t *testing.T) {
	tests := []struct {
		name      string
		maxMissed int
		wantRows  int
	}{
		{name: "gap within backfill cap", maxMissed: 12, wantRows: 11},
		{name: "gap beyond backfill cap", maxMissed: 5, wantRows: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MaxMissedPeriodsForInterpolation = tc.maxMissed
			store, mem, res := newTestStore(t, hourly(), opts)
			ctx := context.Background()

			require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(10, 0), Value: 10}))
			require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(20, 30), Value: 115}))

			rows := stored(t, mem, resource.TierDetailed)
			require.Len(t, rows, tc.wantRows)
			// Ten periods exceed the forward cap: the raw value is kept.
			require.Equal(t, 115.0, rows[at(20, 0)])
		})
	}
}

func TestAddValue_InterpolationDisabled(t *testing.T) {
	res := hourly()
	res.InterpolationMode = resource.InterpolationDisabled
	store, mem, saved := newTestStore(t, res, DefaultOptions())
	ctx := context.Background()

	require.NoError(t, store.AddValue(ctx, saved, v1.RawSample{Time: at(10, 0), Value: 10}))
	require.NoError(t, store.AddValue(ctx, saved, v1.RawSample{Time: at(13, 30), Value: 40}))

	require.Equal(t, map[time.Time]float64{
		at(10, 0): 10,
		at(13, 0): 40,
	}, stored(t, mem, resource.TierDetailed))
}

func TestAddValue_LateSampleKeepsLatest(t *testing.T) {
	store, _, res := newTestStore(t, hourly(), DefaultOptions())
	ctx := context.Background()

	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(12, 0), Value: 30}))
	require.NoError(t, store.AddValue(ctx, res, v1.RawSample{Time: at(9, 0), Value: 5}))

	latest, err := store.GetLatestValue(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, at(12, 0), latest.Time)
	require.Equal(t, 30.0, latest.Value)
}

func TestAddValue_LongTermOnlyResource(t *testing.T) {
	res := resource.Resource{ID: "meter-1", Unit: resource.KilowattHour, LongTermResolution: timegrid.Day}
	store, mem, saved := newTestStore(t, res, DefaultOptions())

	require.NoError(t, store.AddValue(context.Background(), saved, v1.RawSample{Time: at(18, 0), Value: 12}))

	require.Equal(t, map[time.Time]float64{day: 12}, stored(t, mem, resource.TierLongTerm))
	require.Zero(t, mem.Count(resource.TierDetailed, "meter-1"))
}

func TestAddValue_RejectsInvalidSamples(t *testing.T) {
	store, _, res := newTestStore(t, hourly(), DefaultOptions())
	ctx := context.Background()

	err := store.AddValue(ctx, res, v1.RawSample{Time: at(10, 0), Value: 1, Unit: "kWh"})
	require.ErrorIs(t, err, ErrInvalidSample)

	err = store.AddValue(ctx, res, v1.RawSample{Value: 1})
	require.ErrorIs(t, err, ErrInvalidSample)
}

type recordingChecker struct {
	seen []float64
}

func (c *recordingChecker) Check(_ context.Context, _ *resource.Resource, sample v1.RawSample) {
	c.seen = append(c.seen, sample.Value)
}

func TestAddValue_CallsChecker(t *testing.T) {
	checker := &recordingChecker{}
	opts := DefaultOptions()
	opts.Checker = checker
	store, _, res := newTestStore(t, hourly(), opts)

	require.NoError(t, store.AddValue(context.Background(), res, v1.RawSample{Time: at(10, 0), Value: 7}))
	require.Equal(t, []float64{7}, checker.seen)
}

func TestGetLatestValue_Errors(t *testing.T) {
	store, _, _ := newTestStore(t, hourly(), DefaultOptions())
	ctx := context.Background()

	_, err := store.GetLatestValue(ctx, "meter-1")
	require.ErrorIs(t, err, aggregation.ErrNoData)

	_, err = store.GetLatestValue(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddValue_DuplicateInsertSkipsLastValue(t *testing.T) {
	samples := storagemocks.NewSampleStore(t)
	resources := storagemocks.NewResourceRepository(t)
	res := hourly()
	res.InterpolationMode = resource.InterpolationDisabled

	samples.EXPECT().
		InsertSample(mock.Anything, resource.TierDetailed, resource.Sample{ResourceID: "meter-1", Time: at(10, 0), Value: 3}).
		Return(storage.ErrDuplicate).
		Once()

	store := NewResourceStore(samples, resources, DefaultOptions())
	require.NoError(t, store.AddValue(context.Background(), &res, v1.RawSample{Time: at(10, 0), Value: 3}))
}

func TestAddValue_StorageFailure(t *testing.T) {
	samples := storagemocks.NewSampleStore(t)
	resources := storagemocks.NewResourceRepository(t)
	res := hourly()

	samples.EXPECT().
		LatestSampleAtOrBefore(mock.Anything, resource.TierDetailed, "meter-1", at(10, 0)).
		Return(resource.Sample{}, false, nil).
		Once()
	samples.EXPECT().
		InsertSample(mock.Anything, resource.TierDetailed, mock.Anything).
		Return(errors.New("connection reset")).
		Once()

	store := NewResourceStore(samples, resources, DefaultOptions())
	err := store.AddValue(context.Background(), &res, v1.RawSample{Time: at(10, 0), Value: 3})
	require.ErrorContains(t, err, "connection reset")
}

func TestAddValue_UpdatesLastValueOnce(t *testing.T) {
	samples := storagemocks.NewSampleStore(t)
	resources := storagemocks.NewResourceRepository(t)
	res := hourly()

	samples.EXPECT().
		LatestSampleAtOrBefore(mock.Anything, resource.TierDetailed, "meter-1", at(12, 0)).
		Return(resource.Sample{ResourceID: "meter-1", Time: at(10, 0), Value: 10}, true, nil).
		Once()
	samples.EXPECT().
		InsertSample(mock.Anything, resource.TierDetailed, mock.Anything).
		Return(nil).
		Twice()
	resources.EXPECT().
		UpdateLastValue(mock.Anything, "meter-1", resource.TierDetailed, mock.AnythingOfType("float64"), at(12, 0)).
		Return(true, nil).
		Once()

	store := NewResourceStore(samples, resources, DefaultOptions())
	require.NoError(t, store.AddValue(context.Background(), &res, v1.RawSample{Time: at(12, 0), Value: 30}))
}
