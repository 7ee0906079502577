package projection

import (
	"time"

	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/timegrid"
)

// GapFill returns rows on a contiguous grid of res steps, inserting nil
// values where a bucket has no row. The grid starts at the bucket of from
// (the first row when from is zero) and stops before to (after the last row
// when to is zero). Rows outside the grid are dropped. With aligned bounds
// the grid has ceil((to-from)/res) entries; unaligned bounds yield one entry
// per bucket the window touches.
func GapFill(rows []v1.TimeValue, res timegrid.Resolution, from, to time.Time, loc *time.Location) []v1.TimeValue {
	if loc == nil {
		loc = time.UTC
	}
	if from.IsZero() {
		if len(rows) == 0 {
			return rows
		}
		from = rows[0].Time
	}
	if to.IsZero() {
		if len(rows) == 0 {
			return rows
		}
		to = timegrid.Next(rows[len(rows)-1].Time, res, loc)
	}

	byTime := make(map[int64]*float64, len(rows))
	for _, row := range rows {
		byTime[row.Time.Unix()] = row.Value
	}

	var out []v1.TimeValue
	for t := timegrid.BucketTruncate(from, res, loc); t.Before(to); t = timegrid.Next(t, res, loc) {
		out = append(out, v1.TimeValue{Time: t, Value: byTime[t.Unix()]})
	}
	return out
}
