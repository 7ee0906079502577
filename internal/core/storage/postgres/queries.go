package postgres

import (
	"fmt"

	"github.com/wattline/wattline/internal/core/resource"
)

// sampleSQL holds the statements for one sample tier. Both tiers share a
// table shape: (resource_id, time, value) keyed on (resource_id, time).
type sampleSQL struct {
	table        string
	insert       string
	latestBefore string
	first        string
	queryRange   string
	deleteBefore string
}

func newSampleSQL(table string) sampleSQL {
	return sampleSQL{
		table: table,
		// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
		insert: fmt.Sprintf(`
		INSERT INTO %s (resource_id, time, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (resource_id, time) DO NOTHING
		RETURNING resource_id
	`, table),
		latestBefore: fmt.Sprintf(`
		SELECT resource_id, time, value
		FROM %s
		WHERE resource_id = $1 AND time <= $2
		ORDER BY time DESC
		LIMIT 1
	`, table),
		first: fmt.Sprintf(`
		SELECT resource_id, time, value
		FROM %s
		WHERE resource_id = $1
		ORDER BY time ASC
		LIMIT 1
	`, table),
		// A NULL lower bound means "from the beginning".
		queryRange: fmt.Sprintf(`
		SELECT resource_id, time, value
		FROM %s
		WHERE resource_id = ANY($1)
		  AND ($2::timestamptz IS NULL OR time >= $2)
		  AND time < $3
		ORDER BY resource_id ASC, time ASC
	`, table),
		deleteBefore: fmt.Sprintf(`
		DELETE FROM %s
		WHERE resource_id = $1 AND time < $2
	`, table),
	}
}

var sampleQueries = map[resource.Tier]sampleSQL{
	resource.TierDetailed: newSampleSQL("detailed_samples"),
	resource.TierLongTerm: newSampleSQL("long_term_samples"),
}

const resourceColumns = `
			id, provider_id, meter_type, unit,
			detailed_resolution, long_term_resolution, interpolation_mode,
			detailed_retention_seconds, last_value, last_value_time,
			detailed_high_water, long_term_high_water`

const (
	queryGetResource = `
		SELECT` + resourceColumns + `
		FROM resources
		WHERE id = $1
	`

	queryGetResources = `
		SELECT` + resourceColumns + `
		FROM resources
		WHERE id = ANY($1)
	`

	queryListResources = `
		SELECT` + resourceColumns + `
		FROM resources
		ORDER BY id ASC
	`

	// querySaveResource upserts static configuration only; the last-value
	// cache and high-water marks are owned by ingestion and rollup.
	querySaveResource = `
		INSERT INTO resources (
			id, provider_id, meter_type, unit,
			detailed_resolution, long_term_resolution, interpolation_mode,
			detailed_retention_seconds
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			provider_id                = EXCLUDED.provider_id,
			meter_type                 = EXCLUDED.meter_type,
			unit                       = EXCLUDED.unit,
			detailed_resolution        = EXCLUDED.detailed_resolution,
			long_term_resolution       = EXCLUDED.long_term_resolution,
			interpolation_mode         = EXCLUDED.interpolation_mode,
			detailed_retention_seconds = EXCLUDED.detailed_retention_seconds
	`

	// queryUpdateLastValue is a compare-and-set: a row whose cached time is
	// equal or later is left untouched.
	queryUpdateLastValue = `
		UPDATE resources SET
			last_value = $2,
			last_value_time = $3,
			detailed_high_water = CASE WHEN $4 = 'detailed'
				THEN GREATEST(COALESCE(detailed_high_water, $3), $3)
				ELSE detailed_high_water END,
			long_term_high_water = CASE WHEN $4 = 'long_term'
				THEN GREATEST(COALESCE(long_term_high_water, $3), $3)
				ELSE long_term_high_water END
		WHERE id = $1
		  AND (last_value_time IS NULL OR last_value_time < $3)
	`

	queryAdvanceLongTermHighWater = `
		UPDATE resources
		SET long_term_high_water = $2
		WHERE id = $1
		  AND (long_term_high_water IS NULL OR long_term_high_water < $2)
	`

	queryResourceExists = `SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1)`
)

const tariffColumns = `
			id, scope, scope_id, meter_type,
			active_from_seconds, active_to_seconds, start_date, end_date, weekdays,
			unit_energy_cost, daily_fixed_cost, monthly_fixed_cost, kind`

const (
	// queryLockTariffScope serialises overlap checks for one
	// (scope, scope_id, meter_type) until the transaction ends.
	queryLockTariffScope = `SELECT pg_advisory_xact_lock(hashtext($1))`

	queryTariffsInScope = `
		SELECT` + tariffColumns + `
		FROM tariffs
		WHERE scope = $1 AND scope_id = $2 AND meter_type = $3
	`

	queryInsertTariff = `
		INSERT INTO tariffs (` + tariffColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	queryUpdateTariff = `
		UPDATE tariffs SET
			scope = $2, scope_id = $3, meter_type = $4,
			active_from_seconds = $5, active_to_seconds = $6,
			start_date = $7, end_date = $8, weekdays = $9,
			unit_energy_cost = $10, daily_fixed_cost = $11, monthly_fixed_cost = $12,
			kind = $13
		WHERE id = $1
	`

	queryDeleteTariff = `DELETE FROM tariffs WHERE id = $1`

	queryListTariffs = `
		SELECT` + tariffColumns + `
		FROM tariffs
		WHERE meter_type = $3
		  AND ((scope = 'resource' AND scope_id = $1)
		    OR (scope = 'provider' AND scope_id = $2 AND $2 <> ''))
		ORDER BY id ASC
	`
)
