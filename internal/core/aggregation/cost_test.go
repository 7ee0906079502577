package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
	"github.com/wattline/wattline/internal/tariff"
)

func energyMeter() *resource.Resource {
	return &resource.Resource{
		ID:                 "m1",
		ProviderID:         "octo",
		MeterType:          resource.MeterElectricity,
		Unit:               resource.WattHour,
		DetailedResolution: timegrid.HalfHour,
		LongTermResolution: timegrid.Day,
	}
}

func flatTariff(kind tariff.Kind, rate string) tariff.Tariff {
	return tariff.Tariff{
		ID:               string(kind),
		Scope:            tariff.ScopeProvider,
		ScopeID:          "octo",
		MeterType:        resource.MeterElectricity,
		StartDate:        time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		Weekdays:         tariff.AllWeekdays,
		UnitEnergyCost:   decimal.RequireFromString(rate),
		DailyFixedCost:   decimal.RequireFromString("0.5"),
		MonthlyFixedCost: decimal.RequireFromString("1.5"),
		Kind:             kind,
	}
}

func samplesAt(values map[time.Time]float64) []resource.Sample {
	out := make([]resource.Sample, 0, len(values))
	for ts, v := range values {
		out = append(out, resource.Sample{ResourceID: "m1", Time: ts, Value: v})
	}
	return out
}

func TestCost_CollapsedYear(t *testing.T) {
	in := &BucketInput{
		Resource:         energyMeter(),
		Start:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:              time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		NativeResolution: timegrid.HalfHour,
		Location:         time.UTC,
		Collapsed:        true,
		Samples: samplesAt(map[time.Time]float64{
			time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC): 2,
			time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC): 3,
		}),
		Tariffs: []tariff.Tariff{flatTariff(tariff.KindNormal, "0.00007")},
	}

	got, ok := Cost(in)
	require.True(t, ok)
	require.InDelta(t, 365*0.5+12*1.5+5*0.07/1000, got, 1e-9)
}

func TestCost_MonthBucketAddsStandingCharge(t *testing.T) {
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	in := &BucketInput{
		Resource:         energyMeter(),
		Start:            feb,
		End:              feb.AddDate(0, 1, 0),
		Resolution:       timegrid.Month,
		NativeResolution: timegrid.Day,
		Location:         time.UTC,
		Samples:          samplesAt(map[time.Time]float64{feb.AddDate(0, 0, 3): 1000}),
		Tariffs:          []tariff.Tariff{flatTariff(tariff.KindNormal, "0.00007")},
	}

	got, ok := Cost(in)
	require.True(t, ok)
	require.InDelta(t, 0.07+28*0.5+1.5, got, 1e-9)
}

func TestCost_YearBucketChargesOnlyDaysInForce(t *testing.T) {
	year := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := flatTariff(tariff.KindNormal, "0.0001")
	tr.StartDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tr.DailyFixedCost = decimal.NewFromInt(1)
	tr.MonthlyFixedCost = decimal.Zero

	in := &BucketInput{
		Resource:         energyMeter(),
		Start:            year,
		End:              year.AddDate(1, 0, 0),
		Resolution:       timegrid.Year,
		NativeResolution: timegrid.Day,
		Location:         time.UTC,
		Samples:          samplesAt(map[time.Time]float64{time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC): 1000}),
		Tariffs:          []tariff.Tariff{tr},
	}

	got, ok := Cost(in)
	require.True(t, ok)
	require.InDelta(t, 0.1+306, got, 1e-9)
}

func TestCost_TimeOfUse(t *testing.T) {
	day := flatTariff(tariff.KindNormal, "0.0002")
	day.ID = "day"
	day.ActiveFrom = 7 * time.Hour
	day.ActiveTo = 23 * time.Hour

	night := flatTariff(tariff.KindNormal, "0.0001")
	night.ID = "night"
	night.ActiveFrom = 23 * time.Hour
	night.ActiveTo = 7 * time.Hour

	base := time.Date(2026, 2, 11, 6, 0, 0, 0, time.UTC)
	in := &BucketInput{
		Resource:         energyMeter(),
		Start:            base,
		End:              base.Add(2 * time.Hour),
		Resolution:       timegrid.Hour,
		NativeResolution: timegrid.HalfHour,
		Location:         time.UTC,
		Samples: samplesAt(map[time.Time]float64{
			base.Add(30 * time.Minute): 1000, // night
			base.Add(90 * time.Minute): 1000, // day
		}),
		Tariffs: []tariff.Tariff{day, night},
	}

	got, ok := Cost(in)
	require.True(t, ok)
	require.InDelta(t, 0.3, got, 1e-9)
}

func TestCost_PowerSamplesAreIntegrated(t *testing.T) {
	res := energyMeter()
	res.Unit = resource.Watt

	ts := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)
	in := &BucketInput{
		Resource:         res,
		Start:            ts,
		End:              ts.Add(time.Hour),
		Resolution:       timegrid.Hour,
		NativeResolution: timegrid.HalfHour,
		Location:         time.UTC,
		Samples:          samplesAt(map[time.Time]float64{ts: 2000}),
		Tariffs:          []tariff.Tariff{flatTariff(tariff.KindNormal, "0.00007")},
	}

	got, ok := Cost(in)
	require.True(t, ok)
	require.InDelta(t, 0.07, got, 1e-9)
}

func TestCashbackDelta(t *testing.T) {
	ts := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)
	in := &BucketInput{
		Resource:         energyMeter(),
		Start:            timegrid.BucketTruncate(ts, timegrid.Day, time.UTC),
		End:              timegrid.BucketTruncate(ts, timegrid.Day, time.UTC).AddDate(0, 0, 1),
		Resolution:       timegrid.Day,
		NativeResolution: timegrid.HalfHour,
		Location:         time.UTC,
		Samples:          samplesAt(map[time.Time]float64{ts: 1000}),
		Tariffs: []tariff.Tariff{
			flatTariff(tariff.KindNormal, "0.0001"),
			flatTariff(tariff.KindCashbackFlat, "0.0003"),
		},
	}

	got, ok := CashbackDelta(in)
	require.True(t, ok)
	require.InDelta(t, 0.2, got, 1e-9)
}

func TestCost_EmptyBucket(t *testing.T) {
	_, ok := Cost(&BucketInput{Resource: energyMeter()})
	require.False(t, ok)
}
