package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
	"github.com/wattline/wattline/internal/tariff"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func timeOrZero(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time.UTC()
}

func scanSampleRow(row scanner) (resource.Sample, error) {
	var s resource.Sample
	if err := row.Scan(&s.ResourceID, &s.Time, &s.Value); err != nil {
		return resource.Sample{}, fmt.Errorf("failed to scan sample row: %w", err)
	}
	s.Time = s.Time.UTC()
	return s, nil
}

// scanResourceRow scans the columns listed in resourceColumns.
func scanResourceRow(row scanner) (*resource.Resource, error) {
	var (
		r                 resource.Resource
		detailedRes       string
		longTermRes       string
		retentionSeconds  int64
		lastValue         sql.NullFloat64
		lastValueTime     sql.NullTime
		detailedHighWater sql.NullTime
		longTermHighWater sql.NullTime
	)

	err := row.Scan(
		&r.ID,
		&r.ProviderID,
		&r.MeterType,
		&r.Unit,
		&detailedRes,
		&longTermRes,
		&r.InterpolationMode,
		&retentionSeconds,
		&lastValue,
		&lastValueTime,
		&detailedHighWater,
		&longTermHighWater,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan resource row: %w", err)
	}

	r.DetailedResolution = timegrid.Resolution(detailedRes)
	r.LongTermResolution = timegrid.Resolution(longTermRes)
	r.DetailedRetention = time.Duration(retentionSeconds) * time.Second
	if lastValue.Valid {
		v := lastValue.Float64
		r.LastValue = &v
	}
	r.LastValueTime = timeOrZero(lastValueTime)
	r.DetailedHighWater = timeOrZero(detailedHighWater)
	r.LongTermHighWater = timeOrZero(longTermHighWater)
	return &r, nil
}

// scanTariffRow scans the columns listed in tariffColumns.
func scanTariffRow(row scanner) (tariff.Tariff, error) {
	var (
		t           tariff.Tariff
		fromSeconds int64
		toSeconds   int64
		endDate     sql.NullTime
		weekdays    int16
	)

	err := row.Scan(
		&t.ID,
		&t.Scope,
		&t.ScopeID,
		&t.MeterType,
		&fromSeconds,
		&toSeconds,
		&t.StartDate,
		&endDate,
		&weekdays,
		&t.UnitEnergyCost,
		&t.DailyFixedCost,
		&t.MonthlyFixedCost,
		&t.Kind,
	)
	if err != nil {
		return tariff.Tariff{}, fmt.Errorf("failed to scan tariff row: %w", err)
	}

	t.ActiveFrom = time.Duration(fromSeconds) * time.Second
	t.ActiveTo = time.Duration(toSeconds) * time.Second
	t.StartDate = t.StartDate.UTC()
	if endDate.Valid {
		end := endDate.Time.UTC()
		t.EndDate = &end
	}
	t.Weekdays = tariff.Weekdays(weekdays)
	return t, nil
}

// tariffArgs returns the positional arguments matching tariffColumns.
func tariffArgs(t *tariff.Tariff) []interface{} {
	var endDate interface{}
	if t.EndDate != nil {
		endDate = *t.EndDate
	}
	return []interface{}{
		t.ID,
		string(t.Scope),
		t.ScopeID,
		string(t.MeterType),
		int64(t.ActiveFrom / time.Second),
		int64(t.ActiveTo / time.Second),
		t.StartDate,
		endDate,
		int16(t.Weekdays),
		t.UnitEnergyCost,
		t.DailyFixedCost,
		t.MonthlyFixedCost,
		string(t.Kind),
	}
}
