// Package memory is an in-process implementation of the storage ports.
// Data is lost on restart; it backs tests and single-node development runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/tariff"
)

type sampleKey struct {
	resourceID string
	unix       int64
}

// Store implements storage.SampleStore, storage.ResourceRepository and
// storage.TariffRepository.
type Store struct {
	mu        sync.RWMutex
	tiers     map[resource.Tier]map[sampleKey]float64
	resources map[string]resource.Resource
	tariffs   map[string]tariff.Tariff
}

// New creates an empty store.
func New() *Store {
	return &Store{
		tiers: map[resource.Tier]map[sampleKey]float64{
			resource.TierDetailed: {},
			resource.TierLongTerm: {},
		},
		resources: make(map[string]resource.Resource),
		tariffs:   make(map[string]tariff.Tariff),
	}
}

// InsertSample stores one row; returns storage.ErrDuplicate on key conflict.
func (s *Store) InsertSample(_ context.Context, tier resource.Tier, sample resource.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tiers[tier]
	if !ok {
		return fmt.Errorf("unknown tier %q", tier)
	}
	key := sampleKey{resourceID: sample.ResourceID, unix: sample.Time.Unix()}
	if _, exists := rows[key]; exists {
		return storage.ErrDuplicate
	}
	rows[key] = sample.Value
	return nil
}

// LatestSampleAtOrBefore returns the newest row with time <= at.
func (s *Store) LatestSampleAtOrBefore(_ context.Context, tier resource.Tier, resourceID string, at time.Time) (resource.Sample, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best  resource.Sample
		found bool
	)
	limit := at.Unix()
	for key, value := range s.tiers[tier] {
		if key.resourceID != resourceID || key.unix > limit {
			continue
		}
		if !found || key.unix > best.Time.Unix() {
			best = toSample(key, value)
			found = true
		}
	}
	return best, found, nil
}

// FirstSample returns the oldest row of a resource.
func (s *Store) FirstSample(_ context.Context, tier resource.Tier, resourceID string) (resource.Sample, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best  resource.Sample
		found bool
	)
	for key, value := range s.tiers[tier] {
		if key.resourceID != resourceID {
			continue
		}
		if !found || key.unix < best.Time.Unix() {
			best = toSample(key, value)
			found = true
		}
	}
	return best, found, nil
}

// QuerySamples returns rows in [from, to) ordered by resource then time.
func (s *Store) QuerySamples(_ context.Context, tier resource.Tier, resourceIDs []string, from, to time.Time) ([]resource.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(resourceIDs))
	for _, id := range resourceIDs {
		wanted[id] = struct{}{}
	}

	var out []resource.Sample
	for key, value := range s.tiers[tier] {
		if _, ok := wanted[key.resourceID]; !ok {
			continue
		}
		sample := toSample(key, value)
		if !from.IsZero() && sample.Time.Before(from) {
			continue
		}
		if !to.IsZero() && !sample.Time.Before(to) {
			continue
		}
		out = append(out, sample)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ResourceID != out[j].ResourceID {
			return out[i].ResourceID < out[j].ResourceID
		}
		return out[i].Time.Before(out[j].Time)
	})
	return out, nil
}

// DeleteSamplesBefore removes rows older than before.
func (s *Store) DeleteSamplesBefore(_ context.Context, tier resource.Tier, resourceID string, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	limit := before.Unix()
	for key := range s.tiers[tier] {
		if key.resourceID == resourceID && key.unix < limit {
			delete(s.tiers[tier], key)
			deleted++
		}
	}
	return deleted, nil
}

// Count returns the number of rows of a resource in tier.
func (s *Store) Count(tier resource.Tier, resourceID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for key := range s.tiers[tier] {
		if key.resourceID == resourceID {
			n++
		}
	}
	return n
}

// GetResource returns a copy of the stored resource.
func (s *Store) GetResource(_ context.Context, id string) (*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", id, storage.ErrNotFound)
	}
	return &r, nil
}

// GetResources returns the resources in the order of ids.
func (s *Store) GetResources(ctx context.Context, ids []string) ([]resource.Resource, error) {
	out := make([]resource.Resource, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetResource(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// ListResources returns all resources ordered by id.
func (s *Store) ListResources(_ context.Context) ([]resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]resource.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveResource creates or replaces a resource.
func (s *Store) SaveResource(_ context.Context, r *resource.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources[r.ID] = *r
	return nil
}

// UpdateLastValue is a compare-and-set on the cached time.
func (s *Store) UpdateLastValue(_ context.Context, id string, tier resource.Tier, value float64, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resources[id]
	if !ok {
		return false, fmt.Errorf("resource %s: %w", id, storage.ErrNotFound)
	}
	if !r.LastValueTime.IsZero() && !at.After(r.LastValueTime) {
		return false, nil
	}
	r.LastValue = &value
	r.LastValueTime = at
	if tier == resource.TierDetailed {
		if at.After(r.DetailedHighWater) {
			r.DetailedHighWater = at
		}
	} else if at.After(r.LongTermHighWater) {
		r.LongTermHighWater = at
	}
	s.resources[id] = r
	return true, nil
}

// AdvanceLongTermHighWater moves the long-term mark forward only.
func (s *Store) AdvanceLongTermHighWater(_ context.Context, id string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resources[id]
	if !ok {
		return false, fmt.Errorf("resource %s: %w", id, storage.ErrNotFound)
	}
	if !at.After(r.LongTermHighWater) {
		return false, nil
	}
	r.LongTermHighWater = at
	s.resources[id] = r
	return true, nil
}

// InsertTariff validates, checks overlaps and stores t, assigning an id when
// it has none.
func (s *Store) InsertTariff(_ context.Context, t *tariff.Tariff) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if err := tariff.CheckOverlap(t, s.tariffList()); err != nil {
		return err
	}
	s.tariffs[t.ID] = *t
	return nil
}

// UpdateTariff replaces an existing tariff after the same checks as insert.
func (s *Store) UpdateTariff(_ context.Context, t *tariff.Tariff) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tariffs[t.ID]; !ok {
		return fmt.Errorf("tariff %s: %w", t.ID, storage.ErrNotFound)
	}
	if err := tariff.CheckOverlap(t, s.tariffList()); err != nil {
		return err
	}
	s.tariffs[t.ID] = *t
	return nil
}

// DeleteTariff removes a tariff.
func (s *Store) DeleteTariff(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tariffs[id]; !ok {
		return fmt.Errorf("tariff %s: %w", id, storage.ErrNotFound)
	}
	delete(s.tariffs, id)
	return nil
}

// ListTariffs returns resource- and provider-scoped tariffs for a meter type.
func (s *Store) ListTariffs(_ context.Context, resourceID, providerID string, meterType resource.MeterType) ([]tariff.Tariff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []tariff.Tariff
	for _, t := range s.tariffList() {
		if t.MeterType != meterType {
			continue
		}
		if (t.Scope == tariff.ScopeResource && t.ScopeID == resourceID) ||
			(t.Scope == tariff.ScopeProvider && providerID != "" && t.ScopeID == providerID) {
			out = append(out, t)
		}
	}
	return out, nil
}

// tariffList returns all tariffs ordered by id. Callers hold s.mu.
func (s *Store) tariffList() []tariff.Tariff {
	out := make([]tariff.Tariff, 0, len(s.tariffs))
	for _, t := range s.tariffs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func toSample(key sampleKey, value float64) resource.Sample {
	return resource.Sample{
		ResourceID: key.resourceID,
		Time:       time.Unix(key.unix, 0).UTC(),
		Value:      value,
	}
}
