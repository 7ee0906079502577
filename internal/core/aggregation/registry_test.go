package aggregation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
)

var now = time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(Builtin()...)
	require.NoError(t, err)
	reg.nowFn = func() time.Time { return now }
	return reg
}

func meter(id string) resource.Resource {
	return resource.Resource{
		ID:                 id,
		MeterType:          resource.MeterElectricity,
		Unit:               resource.Watt,
		DetailedResolution: timegrid.Minute,
		LongTermResolution: timegrid.Hour,
	}
}

func TestBuiltin_OneDefaultPerUnitPair(t *testing.T) {
	defaults := make(map[[2]resource.Unit]int)
	for _, p := range Builtin() {
		if p.Default {
			defaults[[2]resource.Unit{p.SourceUnit, p.TargetUnit}]++
		}
	}
	for pair, n := range defaults {
		require.Equal(t, 1, n, "pair %v has %d defaults", pair, n)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	p := Params{
		Name: "a", SourceUnit: resource.Watt, TargetUnit: resource.Watt,
		Option: OptionMean, PerBucket: Mean, Cross: OpSum,
	}
	dup := p
	dup.Name = "b"

	_, err := NewRegistry(p, dup)
	require.True(t, errors.Is(err, ErrDuplicateRecipe))
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	err = reg.Register(Params{Name: "x", SourceUnit: resource.Watt, TargetUnit: resource.Watt, Option: OptionMean, Cross: OpSum})
	require.ErrorContains(t, err, "per-bucket combinator is required")
}

func TestRegistry_ResolveErrors(t *testing.T) {
	reg := newTestRegistry(t)

	mixed := meter("b")
	mixed.Unit = resource.WattHour

	coarse := meter("c")
	coarse.LongTermResolution = timegrid.Day

	tests := []struct {
		name      string
		resources []resource.Resource
		query     Query
		wantErr   error
	}{
		{name: "no resources", wantErr: ErrInconsistentResources},
		{name: "mixed units", resources: []resource.Resource{meter("a"), mixed}, wantErr: ErrInconsistentResources},
		{name: "mixed resolutions", resources: []resource.Resource{meter("a"), coarse}, wantErr: ErrInconsistentResources},
		{name: "no recipe for target", resources: []resource.Resource{meter("a")}, query: Query{TargetUnit: resource.PPM}, wantErr: ErrUnsupportedConditions},
		{name: "no recipe for option", resources: []resource.Resource{meter("a")}, query: Query{Option: OptionSum}, wantErr: ErrUnsupportedConditions},
		{name: "sub-hour non-native resolution", resources: []resource.Resource{meter("a")}, query: Query{Resolution: timegrid.HalfHour}, wantErr: ErrUnsupportedConditions},
		{
			name:      "cashback only daily",
			resources: []resource.Resource{meter("a")},
			query:     Query{TargetUnit: resource.Currency, Option: OptionCashback, Resolution: timegrid.Month},
			wantErr:   ErrUnsupportedConditions,
		},
		{
			name:      "empty window",
			resources: []resource.Resource{meter("a")},
			query:     Query{From: now, To: now},
			wantErr:   ErrUnsupportedConditions,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Resolve(tc.resources, tc.query)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestRegistry_ResolveFinerThanNative(t *testing.T) {
	reg := newTestRegistry(t)
	longOnly := meter("a")
	longOnly.DetailedResolution = ""

	_, err := reg.Resolve([]resource.Resource{longOnly}, Query{Resolution: timegrid.Minute})
	require.ErrorIs(t, err, ErrUnsupportedConditions)
}

func TestRegistry_ResolveTier(t *testing.T) {
	reg := newTestRegistry(t)

	longOnly := meter("a")
	longOnly.DetailedResolution = ""
	detailedOnly := meter("a")
	detailedOnly.LongTermResolution = ""

	tests := []struct {
		name           string
		res            resource.Resource
		query          Query
		wantTier       resource.Tier
		wantResolution timegrid.Resolution
	}{
		{name: "long-term only", res: longOnly, wantTier: resource.TierLongTerm, wantResolution: timegrid.Hour},
		{name: "detailed only", res: detailedOnly, query: Query{Resolution: timegrid.Day}, wantTier: resource.TierDetailed, wantResolution: timegrid.Day},
		{name: "explicit coarse resolution", res: meter("a"), query: Query{Resolution: timegrid.Day}, wantTier: resource.TierLongTerm, wantResolution: timegrid.Day},
		{name: "explicit native long-term", res: meter("a"), query: Query{Resolution: timegrid.Hour}, wantTier: resource.TierLongTerm, wantResolution: timegrid.Hour},
		{name: "explicit fine resolution", res: meter("a"), query: Query{Resolution: timegrid.Minute}, wantTier: resource.TierDetailed, wantResolution: timegrid.Minute},
		{name: "short window", res: meter("a"), query: Query{From: now.Add(-90 * time.Minute)}, wantTier: resource.TierDetailed, wantResolution: timegrid.Minute},
		{name: "long window", res: meter("a"), query: Query{From: now.Add(-24 * time.Hour)}, wantTier: resource.TierLongTerm, wantResolution: timegrid.Hour},
		{name: "nothing given", res: meter("a"), wantTier: resource.TierDetailed, wantResolution: timegrid.Minute},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := reg.Resolve([]resource.Resource{tc.res}, tc.query)
			require.NoError(t, err)
			require.Equal(t, tc.wantTier, rules.Tier)
			require.Equal(t, tc.wantResolution, rules.Resolution)
		})
	}
}

func TestRegistry_ResolveRecipe(t *testing.T) {
	reg := newTestRegistry(t)
	resources := []resource.Resource{meter("a"), meter("b")}

	rules, err := reg.Resolve(resources, Query{})
	require.NoError(t, err)
	require.Equal(t, "power_mean", rules.Params.Name)
	require.Equal(t, now, rules.To)
	require.Equal(t, time.UTC, rules.Location)

	rules, err = reg.Resolve(resources, Query{Option: OptionMax})
	require.NoError(t, err)
	require.Equal(t, "power_peak", rules.Params.Name)

	rules, err = reg.Resolve(resources, Query{TargetUnit: resource.WattHour})
	require.NoError(t, err)
	require.Equal(t, OptionEnergy, rules.Params.Option)

	rules, err = reg.Resolve(resources, Query{TargetUnit: resource.Currency})
	require.NoError(t, err)
	require.True(t, rules.Params.HasJoin(JoinTariff))
}

func TestRegistry_LoadedRecipeExtendsBuiltins(t *testing.T) {
	reg := newTestRegistry(t)
	require.NoError(t, reg.Register(Params{
		Name: "energy_sum_mwh", SourceUnit: resource.WattHour, TargetUnit: "MWh",
		Option: OptionSum, Default: true, Scale: 1e-6, PerBucket: Sum, Cross: OpSum,
	}))

	res := meter("a")
	res.Unit = resource.WattHour
	rules, err := reg.Resolve([]resource.Resource{res}, Query{TargetUnit: "MWh"})
	require.NoError(t, err)
	require.Equal(t, "energy_sum_mwh", rules.Params.Name)
}
