package projection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wattline/wattline/internal/core/aggregation"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
)

func hourlyMeter(id string) resource.Resource {
	r := powerMeter(id)
	r.DetailedResolution = timegrid.Hour
	return r
}

func TestAlwaysOn(t *testing.T) {
	night := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	e, mem := newTestEngine(t, night.Add(24*time.Hour))
	a := saveResource(t, mem, hourlyMeter("meter-a"))
	b := saveResource(t, mem, hourlyMeter("meter-b"))

	for hour, v := range []float64{900, 100, 200, 900, 900} {
		insert(t, mem, resource.TierDetailed, "meter-a", night.Add(time.Duration(hour)*time.Hour), v)
	}
	insert(t, mem, resource.TierDetailed, "meter-b", night.Add(time.Hour), 50)
	insert(t, mem, resource.TierDetailed, "meter-b", night.Add(2*time.Hour), 50)

	value, err := e.AlwaysOn(context.Background(), []resource.Resource{a, b}, night, night.Add(24*time.Hour), time.UTC)
	require.NoError(t, err)
	require.InDelta(t, 150+50, value.Value, 1e-9)
	require.Equal(t, "W", value.Unit)
}

func TestAlwaysOn_HonoursTimezone(t *testing.T) {
	// Europe/Paris is UTC+1 in February: 01:00 local is 00:00 UTC.
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	night := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	e, mem := newTestEngine(t, night.Add(24*time.Hour))
	res := saveResource(t, mem, hourlyMeter("meter-1"))

	insert(t, mem, resource.TierDetailed, "meter-1", night, 10)
	insert(t, mem, resource.TierDetailed, "meter-1", night.Add(time.Hour), 30)
	insert(t, mem, resource.TierDetailed, "meter-1", night.Add(2*time.Hour), 1000)

	value, err := e.AlwaysOn(context.Background(), []resource.Resource{res}, night.Add(-time.Hour), night.Add(24*time.Hour), paris)
	require.NoError(t, err)
	require.InDelta(t, 20, value.Value, 1e-9)
}

func TestAlwaysOn_NoNightSamples(t *testing.T) {
	day := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	e, mem := newTestEngine(t, day.Add(time.Hour))
	res := saveResource(t, mem, hourlyMeter("meter-1"))
	insert(t, mem, resource.TierDetailed, "meter-1", day, 10)

	_, err := e.AlwaysOn(context.Background(), []resource.Resource{res}, time.Time{}, time.Time{}, time.UTC)
	require.ErrorIs(t, err, aggregation.ErrNoData)
}

func TestPeriodicProfile(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	e, mem := newTestEngine(t, now)
	res := saveResource(t, mem, hourlyMeter("meter-1"))

	insert(t, mem, resource.TierDetailed, "meter-1", time.Date(2026, 7, 13, 8, 0, 0, 0, time.UTC), 10)   // Monday
	insert(t, mem, resource.TierDetailed, "meter-1", time.Date(2026, 7, 14, 8, 0, 0, 0, time.UTC), 20)   // Tuesday
	insert(t, mem, resource.TierDetailed, "meter-1", time.Date(2026, 7, 11, 8, 0, 0, 0, time.UTC), 1000) // Saturday
	insert(t, mem, resource.TierDetailed, "meter-1", time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC), 5000)  // winter
	insert(t, mem, resource.TierDetailed, "meter-1", time.Date(2026, 7, 14, 18, 0, 0, 0, time.UTC), 40)

	filled, err := e.PeriodicProfile(context.Background(), []resource.Resource{res}, "", SummerWeekdays, time.UTC, true)
	require.NoError(t, err)
	require.Len(t, filled, 24)
	for hour, hv := range filled {
		require.Equal(t, hour, hv.Hour)
		switch hour {
		case 8:
			require.InDelta(t, 15, *hv.Value, 1e-9)
		case 18:
			require.InDelta(t, 40, *hv.Value, 1e-9)
		default:
			require.Nil(t, hv.Value, "hour %d", hour)
		}
	}

	sparse, err := e.PeriodicProfile(context.Background(), []resource.Resource{res}, "", SummerWeekdays, time.UTC, false)
	require.NoError(t, err)
	require.Len(t, sparse, 2)

	winter, err := e.PeriodicProfile(context.Background(), []resource.Resource{res}, "", WinterWeekdays, time.UTC, false)
	require.NoError(t, err)
	require.Len(t, winter, 1)
	require.InDelta(t, 5000, *winter[0].Value, 1e-9)
}

func TestPeriod_Matches(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		t      time.Time
		want   bool
	}{
		{name: "summer weekday", period: SummerWeekdays, t: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC), want: true},
		{name: "summer weekend rejected by weekdays", period: SummerWeekdays, t: time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC), want: false},
		{name: "last day of summer", period: SummerWeekdays, t: time.Date(2026, 9, 30, 23, 0, 0, 0, time.UTC), want: true},
		{name: "winter spans new year", period: WinterWeekends, t: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), want: true},
		{name: "winter december", period: WinterWeekdays, t: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "april is not winter", period: WinterWeekdays, t: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.period.Matches(tc.t))
		})
	}
}
