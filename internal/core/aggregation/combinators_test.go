package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
)

func TestCombinators(t *testing.T) {
	ts := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)
	in := &BucketInput{
		Start:            ts,
		End:              ts.Add(time.Hour),
		NativeResolution: timegrid.HalfHour,
		Location:         time.UTC,
		Samples: []resource.Sample{
			{Time: ts, Value: 300},
			{Time: ts.Add(30 * time.Minute), Value: 200},
		},
	}

	tests := []struct {
		name string
		fn   Combinator
		want float64
	}{
		{name: "mean", fn: Mean, want: 250},
		{name: "sum", fn: Sum, want: 500},
		{name: "min", fn: Min, want: 200},
		{name: "max", fn: Max, want: 300},
		{name: "power to energy", fn: PowerToEnergy, want: 250},
		{name: "energy to power", fn: EnergyToPower, want: 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.fn(in)
			require.True(t, ok)
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCombinators_Empty(t *testing.T) {
	for name, fn := range Combinators {
		_, ok := fn(&BucketInput{})
		require.False(t, ok, name)
	}
}

func TestParams_ScaleSamples(t *testing.T) {
	samples := []resource.Sample{{Value: 1500}}

	p := Params{Scale: 0.001}
	scaled := p.ScaleSamples(samples)
	require.InDelta(t, 1.5, scaled[0].Value, 1e-12)
	require.Equal(t, 1500.0, samples[0].Value, "input must not be modified")

	identity := Params{}
	require.Equal(t, samples, identity.ScaleSamples(samples))
}
