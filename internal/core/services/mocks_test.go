package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, originalEntryID, stornoEntryID string) error {
	args := m.Called(ctx, tx, originalEntryID, stornoEntryID)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByYear(ctx context.Context, year int, limit int, nextToken *string, includeStornos bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, year, limit, nextToken, includeStornos)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ProvisionRepository ---

type MockProvisionRepository struct {
	mock.Mock
}

var _ portsrepo.ProvisionRepositoryWithTx = (*MockProvisionRepository)(nil)

func (m *MockProvisionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockProvisionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockProvisionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockProvisionRepository) SaveProvision(ctx context.Context, provision domain.Provision) error {
	args := m.Called(ctx, provision)
	return args.Error(0)
}

func (m *MockProvisionRepository) FindProvisionByID(ctx context.Context, provisionID string) (*domain.Provision, error) {
	args := m.Called(ctx, provisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provision), args.Error(1)
}

func (m *MockProvisionRepository) FindProvisionByIDForUpdate(ctx context.Context, tx pgx.Tx, provisionID string) (*domain.Provision, error) {
	args := m.Called(ctx, tx, provisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provision), args.Error(1)
}

func (m *MockProvisionRepository) SetProvisionBookedInTx(ctx context.Context, tx pgx.Tx, provisionID, entryID, userID string, now time.Time) error {
	args := m.Called(ctx, tx, provisionID, entryID, userID, now)
	return args.Error(0)
}

func (m *MockProvisionRepository) ApplyProvisionReleaseInTx(ctx context.Context, tx pgx.Tx, provisionID string, releasedAmount decimal.Decimal, released bool, userID string, now time.Time) error {
	args := m.Called(ctx, tx, provisionID, releasedAmount, released, userID, now)
	return args.Error(0)
}

func (m *MockProvisionRepository) ListProvisionsByYear(ctx context.Context, year int) ([]domain.Provision, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provision), args.Error(1)
}

func (m *MockProvisionRepository) CountUnreleasedByYear(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockProvisionRepository) SumRemainingByType(ctx context.Context, year int) (map[domain.ProvisionType]decimal.Decimal, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ProvisionType]decimal.Decimal), args.Error(1)
}

// --- Mock DepreciationRepository ---

type MockDepreciationRepository struct {
	mock.Mock
}

var _ portsrepo.DepreciationRepositoryWithTx = (*MockDepreciationRepository)(nil)

func (m *MockDepreciationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockDepreciationRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDepreciationRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDepreciationRepository) SaveAsset(ctx context.Context, asset domain.DepreciationAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockDepreciationRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.DepreciationAsset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepreciationAsset), args.Error(1)
}

func (m *MockDepreciationRepository) SaveScheduleEntries(ctx context.Context, entries []domain.DepreciationEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockDepreciationRepository) FindDepEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, depEntryID string) (*domain.DepreciationEntry, error) {
	args := m.Called(ctx, tx, depEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepreciationEntry), args.Error(1)
}

func (m *MockDepreciationRepository) SetDepEntryBookedInTx(ctx context.Context, tx pgx.Tx, depEntryID, entryID, userID string, now time.Time) error {
	args := m.Called(ctx, tx, depEntryID, entryID, userID, now)
	return args.Error(0)
}

func (m *MockDepreciationRepository) ListScheduleByAsset(ctx context.Context, assetID string) ([]domain.DepreciationEntry, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepreciationEntry), args.Error(1)
}

func (m *MockDepreciationRepository) ListUnbookedByYear(ctx context.Context, year int) ([]domain.DepreciationEntry, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepreciationEntry), args.Error(1)
}

func (m *MockDepreciationRepository) CountUnbookedByYear(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

// --- Mock ClosingRepository ---

type MockClosingRepository struct {
	mock.Mock
}

var _ portsrepo.ClosingRepositoryFacade = (*MockClosingRepository)(nil)

func (m *MockClosingRepository) FindClosingByYear(ctx context.Context, year int) (*domain.FiscalPeriodClosing, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriodClosing), args.Error(1)
}

func (m *MockClosingRepository) EnsureClosing(ctx context.Context, year int, userID string) (*domain.FiscalPeriodClosing, error) {
	args := m.Called(ctx, year, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriodClosing), args.Error(1)
}

func (m *MockClosingRepository) TransitionPhase(ctx context.Context, year int, allowedFrom []domain.ClosingPhase, to domain.ClosingPhase, userID string) (bool, error) {
	args := m.Called(ctx, year, allowedFrom, to, userID)
	return args.Bool(0), args.Error(1)
}

// --- Mock InvoiceLinkRepository ---

type MockInvoiceLinkRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceLinkRepositoryWithTx = (*MockInvoiceLinkRepository)(nil)

func (m *MockInvoiceLinkRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockInvoiceLinkRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceLinkRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceLinkRepository) FindInvoiceLink(ctx context.Context, invoiceID string) (*portsrepo.InvoiceLink, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.InvoiceLink), args.Error(1)
}

func (m *MockInvoiceLinkRepository) SaveInvoiceLinkInTx(ctx context.Context, tx pgx.Tx, link portsrepo.InvoiceLink) error {
	args := m.Called(ctx, tx, link)
	return args.Error(0)
}

// --- Mock LedgerSvc ---

type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) PostEntry(ctx context.Context, draft domain.EntryDraft) (*domain.JournalEntry, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) PostEntryInTx(ctx context.Context, tx pgx.Tx, draft domain.EntryDraft) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) ReverseEntry(ctx context.Context, entryID, reason, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) GetEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
