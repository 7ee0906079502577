package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
)

func addAll(t *testing.T, store *ResourceStore, res *resource.Resource, samples ...v1.RawSample) {
	t.Helper()
	for _, s := range samples {
		require.NoError(t, store.AddValue(context.Background(), res, s))
	}
}

func TestRollUpToLongTerm_FinalizesObservedBuckets(t *testing.T) {
	store, mem, res := newTestStore(t, halfHourly(), DefaultOptions())
	ctx := context.Background()

	addAll(t, store, res,
		v1.RawSample{Time: at(10, 0), Value: 10},
		v1.RawSample{Time: at(10, 30), Value: 20},
		v1.RawSample{Time: at(11, 0), Value: 30},
	)

	n, err := store.RollUpToLongTerm(ctx, res, at(11, 15))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	longTerm := stored(t, mem, resource.TierLongTerm)
	require.Len(t, longTerm, 1)
	require.InDelta(t, 20, longTerm[at(10, 0)], 1e-9)

	// The 11:00 bucket has no sample at or after 12:00 yet.
	n, err = store.RollUpToLongTerm(ctx, res, at(11, 15))
	require.NoError(t, err)
	require.Zero(t, n)

	addAll(t, store, res, v1.RawSample{Time: at(12, 0), Value: 50})

	n, err = store.RollUpToLongTerm(ctx, res, at(12, 10))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	longTerm = stored(t, mem, resource.TierLongTerm)
	require.Len(t, longTerm, 2)
	require.InDelta(t, 40, longTerm[at(11, 0)], 1e-9)

	current, err := mem.GetResource(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, at(11, 0), current.LongTermHighWater)
}

func TestRollUpToLongTerm_Idempotent(t *testing.T) {
	store, mem, res := newTestStore(t, halfHourly(), DefaultOptions())
	ctx := context.Background()

	addAll(t, store, res,
		v1.RawSample{Time: at(8, 0), Value: 1},
		v1.RawSample{Time: at(9, 0), Value: 3},
		v1.RawSample{Time: at(10, 0), Value: 5},
	)

	n, err := store.RollUpToLongTerm(ctx, res, at(10, 0))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = store.RollUpToLongTerm(ctx, res, at(10, 0))
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, 2, mem.Count(resource.TierLongTerm, res.ID))
}

func TestRollUpToLongTerm_NeverPassesEnd(t *testing.T) {
	store, mem, res := newTestStore(t, halfHourly(), DefaultOptions())
	ctx := context.Background()

	addAll(t, store, res,
		v1.RawSample{Time: at(8, 0), Value: 1},
		v1.RawSample{Time: at(9, 0), Value: 3},
		v1.RawSample{Time: at(10, 0), Value: 5},
	)

	n, err := store.RollUpToLongTerm(ctx, res, at(9, 30))
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Contains(t, stored(t, mem, resource.TierLongTerm), at(8, 0))
}

func TestRollUpToLongTerm_NoDetailedTier(t *testing.T) {
	res := resource.Resource{ID: "meter-1", Unit: resource.KilowattHour, LongTermResolution: timegrid.Day}
	store, _, _ := newTestStore(t, hourly(), DefaultOptions())

	n, err := store.RollUpToLongTerm(context.Background(), &res, at(12, 0))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRollUpToLongTerm_EmptyResource(t *testing.T) {
	store, _, res := newTestStore(t, halfHourly(), DefaultOptions())

	n, err := store.RollUpToLongTerm(context.Background(), res, at(12, 0))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPruneDetailed(t *testing.T) {
	res := halfHourly()
	res.DetailedRetention = time.Hour
	store, mem, saved := newTestStore(t, res, DefaultOptions())
	ctx := context.Background()

	addAll(t, store, saved,
		v1.RawSample{Time: at(10, 0), Value: 10},
		v1.RawSample{Time: at(10, 30), Value: 20},
		v1.RawSample{Time: at(11, 0), Value: 30},
		v1.RawSample{Time: at(11, 30), Value: 40},
		v1.RawSample{Time: at(12, 0), Value: 50},
	)

	// Nothing rolled up yet: nothing may go.
	deleted, err := store.PruneDetailed(ctx, saved, at(12, 30))
	require.NoError(t, err)
	require.Zero(t, deleted)

	_, err = store.RollUpToLongTerm(ctx, saved, at(12, 0))
	require.NoError(t, err)

	// Cutoff 11:30 is capped by the 11:00 high-water mark.
	deleted, err = store.PruneDetailed(ctx, saved, at(12, 30))
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
	require.Equal(t, 3, mem.Count(resource.TierDetailed, saved.ID))
}

func TestPruneDetailed_NoRetention(t *testing.T) {
	store, _, res := newTestStore(t, halfHourly(), DefaultOptions())

	deleted, err := store.PruneDetailed(context.Background(), res, at(12, 0))
	require.NoError(t, err)
	require.Zero(t, deleted)
}
