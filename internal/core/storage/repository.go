package storage

import (
	"context"
	"errors"
	"time"

	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/tariff"
)

// ErrDuplicate is returned when a sample with the same (resource_id, time)
// already exists in the tier.
var ErrDuplicate = errors.New("sample already exists")

// ErrNotFound is returned when a resource or tariff id is unknown.
var ErrNotFound = errors.New("not found")

// SampleStore persists the two historical tiers. Both tiers share one shape;
// every method takes the tier it operates on.
type SampleStore interface {
	// InsertSample writes one row. Returns ErrDuplicate when the
	// (resource_id, time) key already exists.
	InsertSample(ctx context.Context, tier resource.Tier, sample resource.Sample) error

	// LatestSampleAtOrBefore returns the newest row with time <= at.
	// ok is false when there is none.
	LatestSampleAtOrBefore(ctx context.Context, tier resource.Tier, resourceID string, at time.Time) (sample resource.Sample, ok bool, err error)

	// FirstSample returns the oldest row of the resource in tier.
	FirstSample(ctx context.Context, tier resource.Tier, resourceID string) (sample resource.Sample, ok bool, err error)

	// QuerySamples returns rows with from <= time < to for the given resources,
	// ordered by resource id then time. A zero from means no lower bound.
	QuerySamples(ctx context.Context, tier resource.Tier, resourceIDs []string, from, to time.Time) ([]resource.Sample, error)

	// DeleteSamplesBefore removes rows of one resource older than before and
	// returns how many were deleted.
	DeleteSamplesBefore(ctx context.Context, tier resource.Tier, resourceID string, before time.Time) (int64, error)
}

// ResourceRepository persists resource configuration and the per-tier
// high-water marks.
type ResourceRepository interface {
	GetResource(ctx context.Context, id string) (*resource.Resource, error)
	GetResources(ctx context.Context, ids []string) ([]resource.Resource, error)
	ListResources(ctx context.Context) ([]resource.Resource, error)
	SaveResource(ctx context.Context, r *resource.Resource) error

	// UpdateLastValue sets the last-value cache and the live tier's high-water
	// mark, but only when at is strictly later than the cached time. Reports
	// whether the row changed.
	UpdateLastValue(ctx context.Context, id string, tier resource.Tier, value float64, at time.Time) (bool, error)

	// AdvanceLongTermHighWater moves the long-term mark forward; earlier
	// values are ignored.
	AdvanceLongTermHighWater(ctx context.Context, id string, at time.Time) (bool, error)
}

// TariffRepository persists tariffs. Implementations must reject a tariff
// that overlaps an existing one (tariff.ErrOverlap).
type TariffRepository interface {
	InsertTariff(ctx context.Context, t *tariff.Tariff) error
	UpdateTariff(ctx context.Context, t *tariff.Tariff) error
	DeleteTariff(ctx context.Context, id string) error

	// ListTariffs returns tariffs applying to a resource: those scoped to the
	// resource itself and those scoped to its provider.
	ListTariffs(ctx context.Context, resourceID, providerID string, meterType resource.MeterType) ([]tariff.Tariff, error)
}
