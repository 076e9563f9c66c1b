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

const closingColumns = `year, phase, locked_at, finalized_at, finalized_by,
	       created_at, created_by, last_updated_at, last_updated_by`

type PgxClosingRepository struct {
	BaseRepository
}

func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryFacade {
	return &PgxClosingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

func (r *PgxClosingRepository) FindClosingByYear(ctx context.Context, year int) (*domain.FiscalPeriodClosing, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+closingColumns+` FROM fiscal_period_closing WHERE year = $1;`, year)
	return scanClosing(row, year)
}

// EnsureClosing inserts the OPEN record on first touch of a year. The
// DO NOTHING arm makes concurrent first touches converge on one row.
func (r *PgxClosingRepository) EnsureClosing(ctx context.Context, year int, userID string) (*domain.FiscalPeriodClosing, error) {
	now := time.Now()
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO fiscal_period_closing (year, phase, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $3, $4)
		ON CONFLICT (year) DO NOTHING;
	`, year, string(domain.PhaseOpen), now, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure closing record for year "+strconv.Itoa(year), err)
	}
	return r.FindClosingByYear(ctx, year)
}

// TransitionPhase performs the state change as one conditional UPDATE. The
// current phase is part of the WHERE clause, so two racing transitions
// cannot both succeed; the loser sees zero rows affected.
func (r *PgxClosingRepository) TransitionPhase(ctx context.Context, year int, allowedFrom []domain.ClosingPhase, to domain.ClosingPhase, userID string) (bool, error) {
	fromPhases := make([]string, len(allowedFrom))
	for i, p := range allowedFrom {
		fromPhases[i] = string(p)
	}
	now := time.Now()

	var query string
	args := []interface{}{year, string(to), fromPhases, now, userID}
	switch to {
	case domain.PhaseLocked:
		query = `
			UPDATE fiscal_period_closing
			SET phase = $2, locked_at = $4, last_updated_at = $4, last_updated_by = $5
			WHERE year = $1 AND phase = ANY($3);`
	case domain.PhaseFinalized:
		query = `
			UPDATE fiscal_period_closing
			SET phase = $2, finalized_at = $4, finalized_by = $5, last_updated_at = $4, last_updated_by = $5
			WHERE year = $1 AND phase = ANY($3);`
	case domain.PhaseOpen:
		// Reopening clears the lock timestamp so the record reflects the
		// current phase only.
		query = `
			UPDATE fiscal_period_closing
			SET phase = $2, locked_at = NULL, last_updated_at = $4, last_updated_by = $5
			WHERE year = $1 AND phase = ANY($3);`
	default:
		query = `
			UPDATE fiscal_period_closing
			SET phase = $2, last_updated_at = $4, last_updated_by = $5
			WHERE year = $1 AND phase = ANY($3);`
	}

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to transition closing phase for year "+strconv.Itoa(year), err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func scanClosing(row pgx.Row, year int) (*domain.FiscalPeriodClosing, error) {
	var m models.FiscalPeriodClosing
	err := row.Scan(
		&m.Year,
		&m.Phase,
		&m.LockedAt,
		&m.FinalizedAt,
		&m.FinalizedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan closing record for year "+strconv.Itoa(year), err)
	}
	d := mapping.ToDomainClosing(m)
	return &d, nil
}
