package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	"github.com/werkportal/accounting_backend/internal/models"
	"github.com/werkportal/accounting_backend/internal/utils/mapping"
)

const provisionColumns = `provision_id, type, amount, year, description, released, released_amount,
	       booked_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxProvisionRepository struct {
	BaseRepository
}

func newPgxProvisionRepository(pool *pgxpool.Pool) portsrepo.ProvisionRepositoryWithTx {
	return &PgxProvisionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProvisionRepositoryWithTx = (*PgxProvisionRepository)(nil)

func (r *PgxProvisionRepository) SaveProvision(ctx context.Context, provision domain.Provision) error {
	m := mapping.ToModelProvision(provision)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO provisions (
			provision_id, type, amount, year, description, released, released_amount,
			booked_entry_id, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.ProvisionID,
		m.Type,
		m.Amount,
		m.Year,
		m.Description,
		m.Released,
		m.ReleasedAmount,
		m.BookedEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert provision "+m.ProvisionID, err)
	}
	return nil
}

func (r *PgxProvisionRepository) FindProvisionByID(ctx context.Context, provisionID string) (*domain.Provision, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+provisionColumns+` FROM provisions WHERE provision_id = $1;`, provisionID)
	return scanProvision(row, provisionID)
}

func (r *PgxProvisionRepository) FindProvisionByIDForUpdate(ctx context.Context, tx pgx.Tx, provisionID string) (*domain.Provision, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+provisionColumns+` FROM provisions WHERE provision_id = $1 FOR UPDATE;`, provisionID)
	return scanProvision(row, provisionID)
}

func (r *PgxProvisionRepository) SetProvisionBookedInTx(ctx context.Context, tx pgx.Tx, provisionID, entryID, userID string, now time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE provisions
		SET booked_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE provision_id = $1 AND booked_entry_id IS NULL;
	`, provisionID, entryID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark provision "+provisionID+" booked", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxProvisionRepository) ApplyProvisionReleaseInTx(ctx context.Context, tx pgx.Tx, provisionID string, releasedAmount decimal.Decimal, released bool, userID string, now time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE provisions
		SET released_amount = $2, released = $3, last_updated_at = $4, last_updated_by = $5
		WHERE provision_id = $1;
	`, provisionID, releasedAmount, released, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply release on provision "+provisionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProvisionRepository) ListProvisionsByYear(ctx context.Context, year int) ([]domain.Provision, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+provisionColumns+` FROM provisions WHERE year = $1 ORDER BY created_at;`, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query provisions for year "+strconv.Itoa(year), err)
	}
	defer rows.Close()

	modelProvisions := []models.Provision{}
	for rows.Next() {
		var m models.Provision
		err := rows.Scan(
			&m.ProvisionID,
			&m.Type,
			&m.Amount,
			&m.Year,
			&m.Description,
			&m.Released,
			&m.ReleasedAmount,
			&m.BookedEntryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan provision row", err)
		}
		modelProvisions = append(modelProvisions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating provision rows", err)
	}
	return mapping.ToDomainProvisionSlice(modelProvisions), nil
}

func (r *PgxProvisionRepository) CountUnreleasedByYear(ctx context.Context, year int) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM provisions
		WHERE year <= $1 AND booked_entry_id IS NOT NULL AND NOT released;
	`, year).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unreleased provisions", err)
	}
	return count, nil
}

func (r *PgxProvisionRepository) SumRemainingByType(ctx context.Context, year int) (map[domain.ProvisionType]decimal.Decimal, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT type, SUM(amount - released_amount) FROM provisions
		WHERE year <= $1 AND booked_entry_id IS NOT NULL AND NOT released
		GROUP BY type;
	`, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum provision remainders", err)
	}
	defer rows.Close()

	totals := make(map[domain.ProvisionType]decimal.Decimal)
	for rows.Next() {
		var provType string
		var total decimal.Decimal
		if err := rows.Scan(&provType, &total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan provision total row", err)
		}
		totals[domain.ProvisionType(provType)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating provision total rows", err)
	}
	return totals, nil
}

func scanProvision(row pgx.Row, provisionID string) (*domain.Provision, error) {
	var m models.Provision
	err := row.Scan(
		&m.ProvisionID,
		&m.Type,
		&m.Amount,
		&m.Year,
		&m.Description,
		&m.Released,
		&m.ReleasedAmount,
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
		return nil, apperrors.NewAppError(500, "failed to scan provision "+provisionID, err)
	}
	d := mapping.ToDomainProvision(m)
	return &d, nil
}
