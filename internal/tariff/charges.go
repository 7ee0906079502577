package tariff

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wattline/wattline/internal/core/timegrid"
)

// Select returns the tariff whose unit rate applies at instant at, restricted
// to the given kinds. Resource-scoped tariffs win over provider-scoped ones.
// Returns nil when none applies.
func Select(tariffs []Tariff, at time.Time, loc *time.Location, kinds ...Kind) *Tariff {
	return pick(tariffs, kinds, func(t *Tariff) bool { return t.ActiveAt(at, loc) })
}

// SelectForDay returns the tariff in force on the local date of at, ignoring
// time-of-day windows. Standing charges are taken from it.
func SelectForDay(tariffs []Tariff, at time.Time, loc *time.Location, kinds ...Kind) *Tariff {
	return pick(tariffs, kinds, func(t *Tariff) bool { return t.AppliesOn(at, loc) })
}

func pick(tariffs []Tariff, kinds []Kind, match func(*Tariff) bool) *Tariff {
	var fallback *Tariff
	for i := range tariffs {
		t := &tariffs[i]
		if !kindIn(t.Kind, kinds) || !match(t) {
			continue
		}
		if t.Scope == ScopeResource {
			return t
		}
		if fallback == nil {
			fallback = t
		}
	}
	return fallback
}

func kindIn(k Kind, kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// StandingCharge returns the fixed charges attributable to one bucket of
// resolution r starting at bucketStart:
//
//	year  → daily × days-in-year  + monthly × 12
//	month → daily × days-in-month + monthly
//	day   → daily
//
// Finer buckets carry no standing charge; it is added only when a window is
// collapsed to a single value (see StandingCharges).
func (t *Tariff) StandingCharge(r timegrid.Resolution, bucketStart time.Time, loc *time.Location) decimal.Decimal {
	switch r {
	case timegrid.Year:
		days := decimal.NewFromInt(int64(timegrid.DaysInYear(bucketStart, loc)))
		return t.DailyFixedCost.Mul(days).Add(t.MonthlyFixedCost.Mul(decimal.NewFromInt(12)))
	case timegrid.Month:
		days := decimal.NewFromInt(int64(timegrid.DaysIn(bucketStart, loc)))
		return t.DailyFixedCost.Mul(days).Add(t.MonthlyFixedCost)
	case timegrid.Day:
		return t.DailyFixedCost
	}
	return decimal.Zero
}

// StandingChargeForSpan returns daily × calendar days spanned plus
// monthly × calendar months spanned by [from, to).
func (t *Tariff) StandingChargeForSpan(from, to time.Time, loc *time.Location) decimal.Decimal {
	days, months := timegrid.CalendarSpan(from, to, loc)
	return t.DailyFixedCost.Mul(decimal.NewFromInt(int64(days))).
		Add(t.MonthlyFixedCost.Mul(decimal.NewFromInt(int64(months))))
}

// StandingCharges returns the fixed charges of [from, to) when the window is
// collapsed to one value: each local day adds the daily charge of the tariff
// in force that day, and each calendar month adds one monthly charge, taken
// from the first day of the month a tariff is in force.
func StandingCharges(tariffs []Tariff, from, to time.Time, loc *time.Location, kinds ...Kind) decimal.Decimal {
	if loc == nil {
		loc = time.UTC
	}
	if !to.After(from) {
		return decimal.Zero
	}

	if t := soleTariff(tariffs, from, to, loc, kinds); t != nil {
		return t.StandingChargeForSpan(from, to, loc)
	}

	total := decimal.Zero
	local := from.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	chargedMonth := -1
	for day.Before(to) {
		if t := SelectForDay(tariffs, day, loc, kinds...); t != nil {
			total = total.Add(t.DailyFixedCost)
			if month := day.Year()*12 + int(day.Month()); month != chargedMonth {
				total = total.Add(t.MonthlyFixedCost)
				chargedMonth = month
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

// BucketStandingCharge returns the fixed charges of the bucket of resolution r
// starting at bucketStart. When one tariff is in force for the whole bucket
// this is its StandingCharge; otherwise month and year buckets add up the
// tariff in force on each day, as StandingCharges does, clipped to the bucket.
func BucketStandingCharge(tariffs []Tariff, r timegrid.Resolution, bucketStart time.Time, loc *time.Location, kinds ...Kind) decimal.Decimal {
	if loc == nil {
		loc = time.UTC
	}
	switch r {
	case timegrid.Day:
		if t := SelectForDay(tariffs, bucketStart, loc, kinds...); t != nil {
			return t.DailyFixedCost
		}
		return decimal.Zero
	case timegrid.Month, timegrid.Year:
	default:
		return decimal.Zero
	}

	end := timegrid.Next(bucketStart, r, loc)
	if t := soleTariff(tariffs, bucketStart, end, loc, kinds); t != nil {
		return t.StandingCharge(r, bucketStart, loc)
	}
	return StandingCharges(tariffs, bucketStart, end, loc, kinds...)
}

// soleTariff returns the tariff in force on every day of [from, to) when no
// other tariff of the given kinds is in force on any of those days.
func soleTariff(tariffs []Tariff, from, to time.Time, loc *time.Location, kinds []Kind) *Tariff {
	last := to.Add(-time.Nanosecond)
	var sole *Tariff
	for i := range tariffs {
		t := &tariffs[i]
		if !kindIn(t.Kind, kinds) || !t.inForceBetween(from, last, loc) {
			continue
		}
		if sole != nil {
			return nil
		}
		sole = t
	}
	if sole == nil || sole.Weekdays&AllWeekdays != AllWeekdays ||
		!sole.AppliesOn(from, loc) || !sole.AppliesOn(last, loc) {
		return nil
	}
	return sole
}

// inForceBetween reports whether the date range of t touches the local dates
// of first through last.
func (t *Tariff) inForceBetween(first, last time.Time, loc *time.Location) bool {
	d0 := civilDate(first.In(loc))
	d1 := civilDate(last.In(loc))
	if d1.Before(civilDate(t.StartDate)) {
		return false
	}
	return t.EndDate == nil || !d0.After(civilDate(*t.EndDate))
}
