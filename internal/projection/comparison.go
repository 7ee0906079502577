package projection

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/aggregation"
	"github.com/wattline/wattline/internal/core/timegrid"
)

// Cut is the calendar unit a reference window is shifted by to line up with
// the primary window.
type Cut string

const (
	CutAuto  Cut = ""
	CutDay   Cut = "day"
	CutWeek  Cut = "week"
	CutMonth Cut = "month"
	CutYear  Cut = "year"
)

// ParseCut validates a cut name. The empty string selects the cut from the
// reference span.
func ParseCut(s string) (Cut, error) {
	switch c := Cut(s); c {
	case CutAuto, CutDay, CutWeek, CutMonth, CutYear:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown comparison cut %q", aggregation.ErrUnsupportedConditions, s)
}

// AutoCut picks the cut for a reference window of the given span.
func AutoCut(span time.Duration) Cut {
	const day = 24 * time.Hour
	switch {
	case span < 7*day:
		return CutDay
	case span < 28*day:
		return CutWeek
	case span < 365*day:
		return CutMonth
	}
	return CutYear
}

// shift moves t forward by the whole cut units separating refFrom from
// primaryFrom, on loc's calendar.
func (c Cut) shift(t, refFrom, primaryFrom time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	ref := refFrom.In(loc)
	primary := primaryFrom.In(loc)

	switch c {
	case CutDay:
		return local.AddDate(0, 0, civilDaysBetween(ref, primary)).UTC()
	case CutWeek:
		weeks := int(math.Round(float64(civilDaysBetween(ref, primary)) / 7))
		return local.AddDate(0, 0, 7*weeks).UTC()
	case CutMonth:
		months := (primary.Year()-ref.Year())*12 + int(primary.Month()) - int(ref.Month())
		return local.AddDate(0, months, 0).UTC()
	case CutYear:
		return local.AddDate(primary.Year()-ref.Year(), 0, 0).UTC()
	}
	return t
}

func civilDaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ToListWithComparison runs ToList over the primary window of rules and over
// [cmpFrom, cmpTo), shifts the reference rows onto the primary window by cut
// and merges both series. A row present on one side only carries a nil on
// the other.
func (e *Engine) ToListWithComparison(ctx context.Context, rules *aggregation.Rules, cmpFrom, cmpTo time.Time, cut Cut) ([]v1.TimeValueWithComparison, error) {
	defer observe("to_list_with_comparison", time.Now())

	if rules.From.IsZero() || cmpFrom.IsZero() || cmpTo.IsZero() {
		return nil, fmt.Errorf("%w: comparison needs bounded primary and reference windows", aggregation.ErrUnsupportedConditions)
	}
	if !cmpTo.After(cmpFrom) {
		return nil, fmt.Errorf("%w: reference window end %s is not after start %s",
			aggregation.ErrUnsupportedConditions, cmpTo.Format(time.RFC3339), cmpFrom.Format(time.RFC3339))
	}

	loc := rules.Location
	if loc == nil {
		loc = time.UTC
	}
	if cut == CutAuto {
		cut = AutoCut(cmpTo.Sub(cmpFrom))
	}

	primary, err := e.ToList(ctx, rules)
	if err != nil {
		return nil, err
	}

	refRules := *rules
	refRules.From = cmpFrom
	refRules.To = cmpTo
	reference, err := e.ToList(ctx, &refRules)
	if err != nil {
		return nil, err
	}

	lo, hi := rules.From, rules.To
	if rules.Resolution != "" {
		lo = timegrid.BucketTruncate(rules.From, rules.Resolution, loc)
	}
	if hi.IsZero() {
		hi = e.nowFn()
	}
	shifted := reference[:0]
	for _, row := range reference {
		row.Time = cut.shift(row.Time, cmpFrom, rules.From, loc)
		// Reference buckets that land outside the primary window have no slot.
		if row.Time.Before(lo) || !row.Time.Before(hi) {
			continue
		}
		shifted = append(shifted, row)
	}
	reference = shifted
	sort.SliceStable(reference, func(i, j int) bool { return reference[i].Time.Before(reference[j].Time) })

	return mergeComparison(primary, reference), nil
}

// mergeComparison walks both time-ordered series once.
func mergeComparison(primary, reference []v1.TimeValue) []v1.TimeValueWithComparison {
	out := make([]v1.TimeValueWithComparison, 0, len(primary)+len(reference))
	i, j := 0, 0
	for i < len(primary) || j < len(reference) {
		switch {
		case j >= len(reference) || (i < len(primary) && primary[i].Time.Before(reference[j].Time)):
			out = append(out, v1.TimeValueWithComparison{Time: primary[i].Time, Value: primary[i].Value})
			i++
		case i >= len(primary) || reference[j].Time.Before(primary[i].Time):
			out = append(out, v1.TimeValueWithComparison{Time: reference[j].Time, CmpValue: reference[j].Value})
			j++
		default:
			out = append(out, v1.TimeValueWithComparison{
				Time:     primary[i].Time,
				Value:    primary[i].Value,
				CmpValue: reference[j].Value,
			})
			i++
			j++
		}
	}
	return out
}
