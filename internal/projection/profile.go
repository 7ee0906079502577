package projection

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/aggregation"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
	"github.com/wattline/wattline/internal/tariff"
)

// Always-on load is read between 01:00 and 03:00 local time.
const (
	alwaysOnFromHour = 1
	alwaysOnToHour   = 3
)

// defaultAlwaysOnWindow is used when AlwaysOn is given no start.
const defaultAlwaysOnWindow = 7 * 24 * time.Hour

// AlwaysOn estimates the base load of resources: the mean of the hourly
// values between 01:00 and 03:00 local time of each resource, summed across
// resources. A zero to means now; a zero from means one week before to.
func (e *Engine) AlwaysOn(ctx context.Context, resources []resource.Resource, from, to time.Time, loc *time.Location) (v1.ResourceValue, error) {
	defer observe("always_on", time.Now())

	if to.IsZero() {
		to = e.nowFn()
	}
	if from.IsZero() {
		from = to.Add(-defaultAlwaysOnWindow)
	}

	rules, err := e.Resolve(resources, aggregation.Query{
		Resolution: timegrid.Hour,
		From:       from,
		To:         to,
		Location:   loc,
	})
	if err != nil {
		return v1.ResourceValue{}, err
	}

	var (
		total  float64
		found  bool
		latest time.Time
	)
	for i := range rules.Resources {
		single := *rules
		single.Resources = rules.Resources[i : i+1]

		rows, err := e.ToList(ctx, &single)
		if err != nil {
			return v1.ResourceValue{}, err
		}

		var sum float64
		var n int
		for _, row := range rows {
			hour := row.Time.In(rules.Location).Hour()
			if row.Value == nil || hour < alwaysOnFromHour || hour >= alwaysOnToHour {
				continue
			}
			sum += *row.Value
			n++
			if row.Time.After(latest) {
				latest = row.Time
			}
		}
		if n > 0 {
			total += sum / float64(n)
			found = true
		}
	}

	if !found {
		return v1.ResourceValue{}, fmt.Errorf("%w: no night-time samples for %v", aggregation.ErrNoData, resource.IDs(resources))
	}
	return v1.ResourceValue{Time: latest, Value: total, Unit: string(rules.Params.TargetUnit)}, nil
}

// MonthDay is a day of the year without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (m MonthDay) before(other MonthDay) bool {
	if m.Month != other.Month {
		return m.Month < other.Month
	}
	return m.Day < other.Day
}

// DateRange is an inclusive span of days of the year.
type DateRange struct {
	From MonthDay
	To   MonthDay
}

// Contains reports whether the local date of t lies in the range.
func (r DateRange) Contains(t time.Time) bool {
	d := MonthDay{Month: t.Month(), Day: t.Day()}
	return !d.before(r.From) && !r.To.before(d)
}

// Period selects the days an hour-of-day profile is built from.
type Period struct {
	Name     string
	Weekdays tariff.Weekdays
	Ranges   []DateRange
}

// Matches reports whether the local date of t falls in the period.
func (p Period) Matches(t time.Time) bool {
	if !p.Weekdays.Has(t.Weekday()) {
		return false
	}
	for _, r := range p.Ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

var (
	weekdays = tariff.WeekdaysOf(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	weekends = tariff.WeekdaysOf(time.Saturday, time.Sunday)

	summer = []DateRange{{From: MonthDay{time.April, 1}, To: MonthDay{time.September, 30}}}
	winter = []DateRange{
		{From: MonthDay{time.January, 1}, To: MonthDay{time.March, 31}},
		{From: MonthDay{time.October, 1}, To: MonthDay{time.December, 31}},
	}
	allYear = []DateRange{{From: MonthDay{time.January, 1}, To: MonthDay{time.December, 31}}}
)

// Profile periods.
var (
	SummerWeekdays = Period{Name: "summer_weekdays", Weekdays: weekdays, Ranges: summer}
	SummerWeekends = Period{Name: "summer_weekends", Weekdays: weekends, Ranges: summer}
	WinterWeekdays = Period{Name: "winter_weekdays", Weekdays: weekdays, Ranges: winter}
	WinterWeekends = Period{Name: "winter_weekends", Weekdays: weekends, Ranges: winter}
	AllWeekdays    = Period{Name: "weekdays", Weekdays: weekdays, Ranges: allYear}
	AllWeekends    = Period{Name: "weekends", Weekdays: weekends, Ranges: allYear}
)

// Periods lists the named profile periods.
var Periods = map[string]Period{
	SummerWeekdays.Name: SummerWeekdays,
	SummerWeekends.Name: SummerWeekends,
	WinterWeekdays.Name: WinterWeekdays,
	WinterWeekends.Name: WinterWeekends,
	AllWeekdays.Name:    AllWeekdays,
	AllWeekends.Name:    AllWeekends,
}

// profileWindow is how far back PeriodicProfile looks.
const profileWindow = 365 * 24 * time.Hour

// PeriodicProfile averages the hourly values of the trailing year that fall
// in period by local hour of day. With fill the result always has 24 entries,
// hours without data carrying nil.
func (e *Engine) PeriodicProfile(ctx context.Context, resources []resource.Resource, targetUnit resource.Unit, period Period, loc *time.Location, fill bool) ([]v1.HourValue, error) {
	defer observe("periodic_profile", time.Now())

	to := e.nowFn()
	rules, err := e.Resolve(resources, aggregation.Query{
		TargetUnit: targetUnit,
		Resolution: timegrid.Hour,
		From:       to.Add(-profileWindow),
		To:         to,
		Location:   loc,
	})
	if err != nil {
		return nil, err
	}

	rows, err := e.ToList(ctx, rules)
	if err != nil {
		return nil, err
	}

	var sums [24]float64
	var counts [24]int
	for _, row := range rows {
		if row.Value == nil {
			continue
		}
		local := row.Time.In(rules.Location)
		if !period.Matches(local) {
			continue
		}
		sums[local.Hour()] += *row.Value
		counts[local.Hour()]++
	}

	out := make([]v1.HourValue, 0, 24)
	for hour := 0; hour < 24; hour++ {
		switch {
		case counts[hour] > 0:
			out = append(out, v1.HourValue{Hour: hour, Value: v1.Float(sums[hour] / float64(counts[hour]))})
		case fill:
			out = append(out, v1.HourValue{Hour: hour})
		}
	}
	return out, nil
}
