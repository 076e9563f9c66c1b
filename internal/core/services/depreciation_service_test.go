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
	"github.com/werkportal/accounting_backend/internal/dto"
)

type DepreciationServiceTestSuite struct {
	suite.Suite
	mockDepreciationRepo *MockDepreciationRepository
	mockAccountRepo      *MockAccountRepository
	mockLedgerSvc        *MockLedgerSvc
	service              *services.DepreciationService

	userID             string
	expenseAccount     domain.Account
	accumulatedAccount domain.Account
}

func (suite *DepreciationServiceTestSuite) SetupTest() {
	suite.mockDepreciationRepo = new(MockDepreciationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerSvc = new(MockLedgerSvc)
	suite.service = services.NewDepreciationService(suite.mockDepreciationRepo, suite.mockAccountRepo, suite.mockLedgerSvc)

	suite.userID = uuid.NewString()
	suite.expenseAccount = domain.Account{AccountID: uuid.NewString(), Code: domain.AccountDepreciationExpense}
	suite.accumulatedAccount = domain.Account{AccountID: uuid.NewString(), Code: domain.AccountAccumulatedDep}
}

func (suite *DepreciationServiceTestSuite) expectDepreciationAccounts() {
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything,
		[]string{domain.AccountDepreciationExpense, domain.AccountAccumulatedDep}).
		Return(map[string]domain.Account{
			domain.AccountDepreciationExpense: suite.expenseAccount,
			domain.AccountAccumulatedDep:      suite.accumulatedAccount,
		}, nil)
}

func (suite *DepreciationServiceTestSuite) unbookedRow(year int) *domain.DepreciationEntry {
	return &domain.DepreciationEntry{
		DepEntryID:         uuid.NewString(),
		AssetID:            uuid.NewString(),
		Year:               year,
		DepreciationAmount: decimal.NewFromInt(400),
	}
}

func (suite *DepreciationServiceTestSuite) TestCreateAsset_PersistsAssetAndSchedule() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:            "Dienstwagen",
		Category:        "VEHICLE",
		AcquisitionDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		AcquisitionCost: decimal.NewFromInt(1200),
		UsefulLifeYears: 3,
		Method:          string(domain.MethodLinear),
	}

	suite.mockDepreciationRepo.On("SaveAsset", ctx, mock.AnythingOfType("domain.DepreciationAsset")).Return(nil).Once()
	suite.mockDepreciationRepo.On("SaveScheduleEntries", ctx, mock.MatchedBy(func(schedule []domain.DepreciationEntry) bool {
		if len(schedule) != 3 {
			return false
		}
		sum := decimal.Zero
		for _, row := range schedule {
			if row.DepEntryID == "" || row.BookedEntryID != nil {
				return false
			}
			sum = sum.Add(row.DepreciationAmount)
		}
		return sum.Equal(req.AcquisitionCost)
	})).Return(nil).Once()

	asset, schedule, err := suite.service.CreateAsset(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(asset.AssetID)
	suite.Len(schedule, 3)
	suite.Equal(2024, schedule[0].Year)
	suite.mockDepreciationRepo.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestCreateAsset_EmptyScheduleRejected() {
	_, _, err := suite.service.CreateAsset(context.Background(), dto.CreateAssetRequest{
		Name:            "Nichts",
		AcquisitionDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		AcquisitionCost: decimal.Zero,
		UsefulLifeYears: 3,
		Method:          string(domain.MethodLinear),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDepreciationRepo.AssertNotCalled(suite.T(), "SaveAsset", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestBookDepreciation_Success() {
	ctx := context.Background()
	suite.expectDepreciationAccounts()

	row := suite.unbookedRow(2024)
	asset := &domain.DepreciationAsset{AssetID: row.AssetID, Name: "Dienstwagen"}

	suite.mockDepreciationRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDepreciationRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockDepreciationRepo.On("FindDepEntryByIDForUpdate", ctx, mock.Anything, row.DepEntryID).Return(row, nil).Once()
	suite.mockDepreciationRepo.On("FindAssetByID", ctx, row.AssetID).Return(asset, nil).Once()

	entry := &domain.JournalEntry{EntryID: uuid.NewString(), FiscalYear: 2024, EntryNumber: 7}
	suite.mockLedgerSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(d domain.EntryDraft) bool {
		return d.DebitAccountID == suite.expenseAccount.AccountID &&
			d.CreditAccountID == suite.accumulatedAccount.AccountID &&
			d.Amount.Equal(row.DepreciationAmount) &&
			d.Description == "Abschreibung Dienstwagen 2024" &&
			d.BookingDate.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	})).Return(entry, nil).Once()

	suite.mockDepreciationRepo.On("SetDepEntryBookedInTx", ctx, mock.Anything, row.DepEntryID, entry.EntryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDepreciationRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	err := suite.service.BookDepreciation(ctx, row.DepEntryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockDepreciationRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestBookDepreciation_AlreadyBookedConflict() {
	ctx := context.Background()
	suite.expectDepreciationAccounts()

	row := suite.unbookedRow(2024)
	bookedEntryID := uuid.NewString()
	row.BookedEntryID = &bookedEntryID

	suite.mockDepreciationRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDepreciationRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockDepreciationRepo.On("FindDepEntryByIDForUpdate", ctx, mock.Anything, row.DepEntryID).Return(row, nil).Once()

	err := suite.service.BookDepreciation(ctx, row.DepEntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunYearlyDepreciation_CollectsPerRowFailures() {
	ctx := context.Background()
	suite.expectDepreciationAccounts()

	good := suite.unbookedRow(2024)
	bad := suite.unbookedRow(2024)
	asset := &domain.DepreciationAsset{AssetID: good.AssetID, Name: "Laptop"}

	suite.mockDepreciationRepo.On("ListUnbookedByYear", ctx, 2024).
		Return([]domain.DepreciationEntry{*good, *bad}, nil).Once()

	suite.mockDepreciationRepo.On("Begin", ctx).Return(nil, nil).Twice()
	suite.mockDepreciationRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockDepreciationRepo.On("FindDepEntryByIDForUpdate", ctx, mock.Anything, good.DepEntryID).Return(good, nil).Once()
	suite.mockDepreciationRepo.On("FindDepEntryByIDForUpdate", ctx, mock.Anything, bad.DepEntryID).
		Return(nil, apperrors.NewNotFoundError("depreciation entry not found")).Once()
	suite.mockDepreciationRepo.On("FindAssetByID", ctx, good.AssetID).Return(asset, nil).Once()

	suite.mockLedgerSvc.On("PostEntryInTx", ctx, mock.Anything, mock.Anything).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockDepreciationRepo.On("SetDepEntryBookedInTx", ctx, mock.Anything, good.DepEntryID, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDepreciationRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RunYearlyDepreciation(ctx, 2024, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Processed)
	suite.Equal(1, result.Booked)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], bad.DepEntryID)
	suite.mockDepreciationRepo.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestRunYearlyDepreciation_NothingToBook() {
	ctx := context.Background()
	suite.mockDepreciationRepo.On("ListUnbookedByYear", ctx, 2024).
		Return([]domain.DepreciationEntry{}, nil).Once()

	result, err := suite.service.RunYearlyDepreciation(ctx, 2024, suite.userID)

	suite.Require().NoError(err)
	suite.Zero(result.Processed)
	suite.Zero(result.Booked)
	suite.Empty(result.Errors)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestDepreciationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepreciationServiceTestSuite))
}
