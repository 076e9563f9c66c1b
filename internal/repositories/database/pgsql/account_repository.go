package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	"github.com/werkportal/accounting_backend/internal/models"
	"github.com/werkportal/accounting_backend/internal/utils/mapping"
)

const accountColumns = `account_id, code, name, account_type, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE code = $1 AND is_active;`, code)
	return scanAccount(row, code)
}

func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE code = ANY($1) AND is_active;`, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by codes", err)
	}
	defer rows.Close()

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}
	return byCode, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY code;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query chart of accounts", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func scanAccount(row pgx.Row, key string) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account "+key, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	modelAccounts := []models.Account{}
	for rows.Next() {
		var m models.Account
		err := rows.Scan(
			&m.AccountID,
			&m.Code,
			&m.Name,
			&m.AccountType,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}
