package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	"github.com/werkportal/accounting_backend/internal/models"
	"github.com/werkportal/accounting_backend/internal/utils/mapping"
)

const depEntryColumns = `dep_entry_id, asset_id, year, opening_value, depreciation_amount, closing_value,
	       booked_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxDepreciationRepository struct {
	BaseRepository
}

func newPgxDepreciationRepository(pool *pgxpool.Pool) portsrepo.DepreciationRepositoryWithTx {
	return &PgxDepreciationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepreciationRepositoryWithTx = (*PgxDepreciationRepository)(nil)

func (r *PgxDepreciationRepository) SaveAsset(ctx context.Context, asset domain.DepreciationAsset) error {
	m := mapping.ToModelAsset(asset)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO depreciation_assets (
			asset_id, name, category, acquisition_date, acquisition_cost, useful_life_years,
			method, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.AssetID,
		m.Name,
		m.Category,
		m.AcquisitionDate,
		m.AcquisitionCost,
		m.UsefulLifeYears,
		m.Method,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert depreciation asset "+m.AssetID, err)
	}
	return nil
}

func (r *PgxDepreciationRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.DepreciationAsset, error) {
	var m models.DepreciationAsset
	err := r.Pool.QueryRow(ctx, `
		SELECT asset_id, name, category, acquisition_date, acquisition_cost, useful_life_years,
		       method, created_at, created_by, last_updated_at, last_updated_by
		FROM depreciation_assets WHERE asset_id = $1;
	`, assetID).Scan(
		&m.AssetID,
		&m.Name,
		&m.Category,
		&m.AcquisitionDate,
		&m.AcquisitionCost,
		&m.UsefulLifeYears,
		&m.Method,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan depreciation asset "+assetID, err)
	}
	d := mapping.ToDomainAsset(m)
	return &d, nil
}

// SaveScheduleEntries inserts the full schedule in one batch. The unique
// constraint on (asset_id, year) keeps a schedule from being written twice.
func (r *PgxDepreciationRepository) SaveScheduleEntries(ctx context.Context, entries []domain.DepreciationEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelDepEntry(e)
		batch.Queue(`
			INSERT INTO depreciation_entries (
				dep_entry_id, asset_id, year, opening_value, depreciation_amount, closing_value,
				booked_entry_id, created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`,
			m.DepEntryID,
			m.AssetID,
			m.Year,
			m.OpeningValue,
			m.DepreciationAmount,
			m.ClosingValue,
			m.BookedEntryID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert depreciation schedule rows", err)
		}
	}
	return nil
}

func (r *PgxDepreciationRepository) FindDepEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, depEntryID string) (*domain.DepreciationEntry, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+depEntryColumns+` FROM depreciation_entries WHERE dep_entry_id = $1 FOR UPDATE;`, depEntryID)
	return scanDepEntry(row, depEntryID)
}

func (r *PgxDepreciationRepository) SetDepEntryBookedInTx(ctx context.Context, tx pgx.Tx, depEntryID, entryID, userID string, now time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE depreciation_entries
		SET booked_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE dep_entry_id = $1 AND booked_entry_id IS NULL;
	`, depEntryID, entryID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark depreciation row "+depEntryID+" booked", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxDepreciationRepository) ListScheduleByAsset(ctx context.Context, assetID string) ([]domain.DepreciationEntry, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+depEntryColumns+` FROM depreciation_entries WHERE asset_id = $1 ORDER BY year;`, assetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedule for asset "+assetID, err)
	}
	defer rows.Close()

	return collectDepEntries(rows)
}

func (r *PgxDepreciationRepository) ListUnbookedByYear(ctx context.Context, year int) ([]domain.DepreciationEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+depEntryColumns+`
		FROM depreciation_entries
		WHERE year = $1 AND booked_entry_id IS NULL
		ORDER BY asset_id;
	`, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unbooked depreciation for year "+strconv.Itoa(year), err)
	}
	defer rows.Close()

	return collectDepEntries(rows)
}

func (r *PgxDepreciationRepository) CountUnbookedByYear(ctx context.Context, year int) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM depreciation_entries
		WHERE year <= $1 AND booked_entry_id IS NULL;
	`, year).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unbooked depreciation rows", err)
	}
	return count, nil
}

func scanDepEntry(row pgx.Row, depEntryID string) (*domain.DepreciationEntry, error) {
	var m models.DepreciationEntry
	err := row.Scan(
		&m.DepEntryID,
		&m.AssetID,
		&m.Year,
		&m.OpeningValue,
		&m.DepreciationAmount,
		&m.ClosingValue,
		&m.BookedEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan depreciation row "+depEntryID, err)
	}
	d := mapping.ToDomainDepEntry(m)
	return &d, nil
}

func collectDepEntries(rows pgx.Rows) ([]domain.DepreciationEntry, error) {
	modelEntries := []models.DepreciationEntry{}
	for rows.Next() {
		var m models.DepreciationEntry
		err := rows.Scan(
			&m.DepEntryID,
			&m.AssetID,
			&m.Year,
			&m.OpeningValue,
			&m.DepreciationAmount,
			&m.ClosingValue,
			&m.BookedEntryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan depreciation row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating depreciation rows", err)
	}
	return mapping.ToDomainDepEntrySlice(modelEntries), nil
}
