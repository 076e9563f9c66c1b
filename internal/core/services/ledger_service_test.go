package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	"github.com/werkportal/accounting_backend/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockEntryRepository
	service       *services.LedgerService

	userID          string
	debitAccountID  string
	creditAccountID string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewLedgerService(suite.mockEntryRepo)

	suite.userID = uuid.NewString()
	suite.debitAccountID = uuid.NewString()
	suite.creditAccountID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) validDraft() domain.EntryDraft {
	return domain.EntryDraft{
		BookingDate:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		DebitAccountID:  suite.debitAccountID,
		CreditAccountID: suite.creditAccountID,
		Amount:          decimal.NewFromInt(100),
		Description:     "Test booking",
		SourceType:      domain.SourceManual,
		CreatedBy:       suite.userID,
	}
}

func (suite *LedgerServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	draft := suite.validDraft()

	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Return(&domain.JournalEntry{
			EntryID:     uuid.NewString(),
			FiscalYear:  2024,
			EntryNumber: 1,
			Amount:      draft.Amount,
			SourceType:  domain.SourceManual,
		}, nil).Once()

	entry, err := suite.service.PostEntry(ctx, draft)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(2024, entry.FiscalYear)
	suite.Equal(int64(1), entry.EntryNumber)
	suite.Equal("BEL-2024-000001", entry.DocumentNumber())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_SameAccountRejected() {
	draft := suite.validDraft()
	draft.CreditAccountID = draft.DebitAccountID

	_, err := suite.service.PostEntry(context.Background(), draft)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_NonPositiveAmountRejected() {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		draft := suite.validDraft()
		draft.Amount = amount

		_, err := suite.service.PostEntry(context.Background(), draft)

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_UnknownSourceTypeRejected() {
	draft := suite.validDraft()
	draft.SourceType = "SOMETHING_ELSE"

	_, err := suite.service.PostEntry(context.Background(), draft)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_LockedPeriodConflictPropagates() {
	ctx := context.Background()
	draft := suite.validDraft()
	lockedErr := apperrors.ErrConflict

	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Return(nil, lockedErr).Once()

	_, err := suite.service.PostEntry(ctx, draft)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:         originalID,
		FiscalYear:      2024,
		EntryNumber:     7,
		DebitAccountID:  suite.debitAccountID,
		CreditAccountID: suite.creditAccountID,
		Amount:          decimal.NewFromInt(250),
		SourceType:      domain.SourceManual,
	}

	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockEntryRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, originalID).Return(original, nil).Once()
	suite.mockEntryRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		// Debit and credit swapped, amount unchanged, linked to the original.
		return e.DebitAccountID == original.CreditAccountID &&
			e.CreditAccountID == original.DebitAccountID &&
			e.Amount.Equal(original.Amount) &&
			e.SourceType == domain.SourceStorno &&
			e.StornoOfEntryID != nil && *e.StornoOfEntryID == originalID
	})).Return(&domain.JournalEntry{
		EntryID:         uuid.NewString(),
		FiscalYear:      2025,
		EntryNumber:     3,
		SourceType:      domain.SourceStorno,
		StornoOfEntryID: &originalID,
	}, nil).Once()
	suite.mockEntryRepo.On("MarkEntryReversedInTx", ctx, mock.Anything, originalID, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockEntryRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	storno, err := suite.service.ReverseEntry(ctx, originalID, "wrong amount", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(storno)
	suite.True(storno.IsStorno())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_MissingReasonRejected() {
	_, err := suite.service.ReverseEntry(context.Background(), uuid.NewString(), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_ReasonLengthCountsRunes() {
	ctx := context.Background()
	entryID := uuid.NewString()

	// Two runes, four bytes. Still too short.
	_, err := suite.service.ReverseEntry(ctx, entryID, "äö", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)

	// Three runes meet the minimum.
	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockEntryRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err = suite.service.ReverseEntry(ctx, entryID, "äöü", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockEntryRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, "duplicate booking", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_AlreadyReversedConflict() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existingStornoID := uuid.NewString()

	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockEntryRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(&domain.JournalEntry{
		EntryID:      entryID,
		SourceType:   domain.SourceManual,
		ReversedByID: &existingStornoID,
	}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, "second attempt", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_StornoOfStornoRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	originalID := uuid.NewString()

	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockEntryRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(&domain.JournalEntry{
		EntryID:         entryID,
		SourceType:      domain.SourceStorno,
		StornoOfEntryID: &originalID,
	}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, "undo the undo", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestGetEntriesBySource_ReturnsPostingTrail() {
	ctx := context.Background()
	sourceID := uuid.NewString()
	trail := []domain.JournalEntry{
		{EntryID: uuid.NewString(), SourceType: domain.SourceInvoice},
		{EntryID: uuid.NewString(), SourceType: domain.SourceStorno},
	}

	suite.mockEntryRepo.On("FindEntriesBySource", ctx, domain.SourceInvoice, sourceID).Return(trail, nil).Once()

	entries, err := suite.service.GetEntriesBySource(ctx, domain.SourceInvoice, sourceID)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntriesBySource_UnknownSourceTypeRejected() {
	_, err := suite.service.GetEntriesBySource(context.Background(), domain.SourceType("LOTTERY"), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindEntriesBySource", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
