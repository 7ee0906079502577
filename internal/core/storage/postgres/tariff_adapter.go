package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/tariff"
)

// InsertTariff stores a new tariff, assigning an id when it has none.
// Returns tariff.ErrOverlap when it conflicts with a stored tariff.
func (a *Adapter) InsertTariff(ctx context.Context, t *tariff.Tariff) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return a.writeTariff(ctx, t, queryInsertTariff)
}

// UpdateTariff replaces a stored tariff after the same overlap check.
func (a *Adapter) UpdateTariff(ctx context.Context, t *tariff.Tariff) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return a.writeTariff(ctx, t, queryUpdateTariff)
}

// writeTariff runs the overlap check and the write in one transaction,
// holding an advisory lock on the tariff's scope.
func (a *Adapter) writeTariff(ctx context.Context, t *tariff.Tariff, query string) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("tariff write: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	lockKey := fmt.Sprintf("%s:%s:%s", t.Scope, t.ScopeID, t.MeterType)
	if _, err := tx.ExecContext(ctx, queryLockTariffScope, lockKey); err != nil {
		return fmt.Errorf("tariff write: lock scope: %w", err)
	}

	existing, err := queryTariffs(ctx, tx, queryTariffsInScope, string(t.Scope), t.ScopeID, string(t.MeterType))
	if err != nil {
		return fmt.Errorf("tariff write: %w", err)
	}
	if err := tariff.CheckOverlap(t, existing); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, tariffArgs(t)...)
	if err != nil {
		return fmt.Errorf("tariff write: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("tariff write: check result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tariff %s: %w", t.ID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tariff write: commit: %w", err)
	}

	slog.Info("[Postgres] Saved tariff",
		"tariff_id", t.ID,
		"scope", t.Scope,
		"scope_id", t.ScopeID,
		"kind", t.Kind)
	return nil
}

// DeleteTariff removes a tariff by id.
func (a *Adapter) DeleteTariff(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, queryDeleteTariff, id)
	if err != nil {
		return fmt.Errorf("failed to delete tariff %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of tariff %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("tariff %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ListTariffs returns the resource- and provider-scoped tariffs of one
// meter type.
func (a *Adapter) ListTariffs(ctx context.Context, resourceID, providerID string, meterType resource.MeterType) ([]tariff.Tariff, error) {
	tariffs, err := queryTariffs(ctx, a.db, queryListTariffs, resourceID, providerID, string(meterType))
	if err != nil {
		return nil, fmt.Errorf("failed to list tariffs for %s: %w", resourceID, err)
	}
	return tariffs, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func queryTariffs(ctx context.Context, q queryer, query string, args ...interface{}) ([]tariff.Tariff, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tariffs: %w", err)
	}
	defer rows.Close()

	var out []tariff.Tariff
	for rows.Next() {
		t, err := scanTariffRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tariffs: %w", err)
	}
	return out, nil
}
