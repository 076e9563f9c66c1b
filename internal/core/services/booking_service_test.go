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

type BookingServiceTestSuite struct {
	suite.Suite
	mockLedgerSvc   *MockLedgerSvc
	mockAccountRepo *MockAccountRepository
	service         *services.BookingService

	userID string
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockLedgerSvc = new(MockLedgerSvc)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewBookingService(suite.mockLedgerSvc, suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *BookingServiceTestSuite) expectAccounts(codes ...string) map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		accounts[code] = domain.Account{AccountID: uuid.NewString(), Code: code}
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, codes).Return(accounts, nil).Once()
	return accounts
}

func (suite *BookingServiceTestSuite) TestCreateBooking_ResolvesCodesAndPosts() {
	ctx := context.Background()
	accounts := suite.expectAccounts(domain.AccountBank, domain.AccountCommissionRevenue)

	req := dto.CreateBookingRequest{
		DebitAccountCode:  domain.AccountBank,
		CreditAccountCode: domain.AccountCommissionRevenue,
		Amount:            decimal.NewFromInt(150),
		Description:       "Manuelle Buchung",
		BookingDate:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		SourceType:        string(domain.SourceManual),
	}

	posted := &domain.JournalEntry{EntryID: uuid.NewString(), FiscalYear: 2024, EntryNumber: 1}
	suite.mockLedgerSvc.On("PostEntry", ctx, mock.MatchedBy(func(d domain.EntryDraft) bool {
		return d.DebitAccountID == accounts[domain.AccountBank].AccountID &&
			d.CreditAccountID == accounts[domain.AccountCommissionRevenue].AccountID &&
			d.Amount.Equal(req.Amount) &&
			d.SourceType == domain.SourceManual &&
			d.CreatedBy == suite.userID
	})).Return(posted, nil).Once()

	entry, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(posted.EntryID, entry.EntryID)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_UnknownAccountCodeRejected() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{"9999", domain.AccountBank}).
		Return(map[string]domain.Account{domain.AccountBank: {AccountID: uuid.NewString(), Code: domain.AccountBank}}, nil).Once()

	_, err := suite.service.CreateBooking(ctx, dto.CreateBookingRequest{
		DebitAccountCode:  "9999",
		CreditAccountCode: domain.AccountBank,
		Amount:            decimal.NewFromInt(10),
		Description:       "kaputt",
		BookingDate:       time.Now(),
		SourceType:        string(domain.SourceManual),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "9999")
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_StornoSourceRejected() {
	_, err := suite.service.CreateBooking(context.Background(), dto.CreateBookingRequest{
		DebitAccountCode:  domain.AccountBank,
		CreditAccountCode: domain.AccountCommissionRevenue,
		Amount:            decimal.NewFromInt(10),
		Description:       "kein Storno hier",
		BookingDate:       time.Now(),
		SourceType:        string(domain.SourceStorno),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByCodes", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_UnknownSourceTypeRejected() {
	_, err := suite.service.CreateBooking(context.Background(), dto.CreateBookingRequest{
		DebitAccountCode:  domain.AccountBank,
		CreditAccountCode: domain.AccountCommissionRevenue,
		Amount:            decimal.NewFromInt(10),
		Description:       "x",
		BookingDate:       time.Now(),
		SourceType:        "LOTTERY",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BookingServiceTestSuite) TestBookCommissionReceived_DebitsBankCreditsRevenue() {
	ctx := context.Background()
	accounts := suite.expectAccounts(domain.AccountBank, domain.AccountCommissionRevenue)
	commissionID := uuid.NewString()
	paymentDate := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerSvc.On("PostEntry", ctx, mock.MatchedBy(func(d domain.EntryDraft) bool {
		return d.DebitAccountID == accounts[domain.AccountBank].AccountID &&
			d.CreditAccountID == accounts[domain.AccountCommissionRevenue].AccountID &&
			d.Amount.Equal(decimal.NewFromInt(75)) &&
			d.SourceType == domain.SourceCommission &&
			d.SourceID != nil && *d.SourceID == commissionID &&
			d.BookingDate.Equal(paymentDate)
	})).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	_, err := suite.service.BookCommissionReceived(ctx, commissionID, decimal.NewFromInt(75), paymentDate, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestBookCommissionPaid_DebitsExpenseCreditsBank() {
	ctx := context.Background()
	accounts := suite.expectAccounts(domain.AccountCommissionExpense, domain.AccountBank)
	commissionID := uuid.NewString()

	suite.mockLedgerSvc.On("PostEntry", ctx, mock.MatchedBy(func(d domain.EntryDraft) bool {
		return d.DebitAccountID == accounts[domain.AccountCommissionExpense].AccountID &&
			d.CreditAccountID == accounts[domain.AccountBank].AccountID
	})).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	_, err := suite.service.BookCommissionPaid(ctx, commissionID, decimal.NewFromInt(40), time.Now(), suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestBookExpenseApproved_DefaultsDescription() {
	ctx := context.Background()
	suite.expectAccounts(domain.AccountOfficeExpense, domain.AccountTradePayables)
	expenseID := uuid.NewString()

	suite.mockLedgerSvc.On("PostEntry", ctx, mock.MatchedBy(func(d domain.EntryDraft) bool {
		return d.Description == "Auslage "+expenseID &&
			d.SourceType == domain.SourceExpensePayment
	})).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	_, err := suite.service.BookExpenseApproved(ctx, expenseID, decimal.NewFromInt(25), time.Now(), "", suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestBookExpensePaid_ClearsPayable() {
	ctx := context.Background()
	accounts := suite.expectAccounts(domain.AccountTradePayables, domain.AccountBank)
	expenseID := uuid.NewString()

	suite.mockLedgerSvc.On("PostEntry", ctx, mock.MatchedBy(func(d domain.EntryDraft) bool {
		return d.DebitAccountID == accounts[domain.AccountTradePayables].AccountID &&
			d.CreditAccountID == accounts[domain.AccountBank].AccountID
	})).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	_, err := suite.service.BookExpensePaid(ctx, expenseID, decimal.NewFromInt(25), time.Now(), suite.userID)

	suite.Require().NoError(err)
}

func (suite *BookingServiceTestSuite) TestBookAuto_MissingSourceIDRejected() {
	_, err := suite.service.BookCommissionReceived(context.Background(), "", decimal.NewFromInt(10), time.Now(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByCodes", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateStorno_DelegatesToLedger() {
	ctx := context.Background()
	entryID := uuid.NewString()
	storno := &domain.JournalEntry{EntryID: uuid.NewString(), SourceType: domain.SourceStorno}

	suite.mockLedgerSvc.On("ReverseEntry", ctx, entryID, "Zahlendreher", suite.userID).Return(storno, nil).Once()

	result, err := suite.service.CreateStorno(ctx, entryID, "Zahlendreher", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(storno.EntryID, result.EntryID)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
