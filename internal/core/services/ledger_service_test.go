package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, boardingHouseID string, kind domain.EntryKind, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, boardingHouseID, kind, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SavePettyCashEntry(ctx context.Context, entry domain.LedgerEntry, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceDelta)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// MockPettyCashRepository is a mock type for the PettyCashRepositoryFacade interface
type MockPettyCashRepository struct {
	mock.Mock
}

func (m *MockPettyCashRepository) FindPettyCashUserByID(ctx context.Context, pettyCashUserID string) (*domain.PettyCashUser, error) {
	args := m.Called(ctx, pettyCashUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PettyCashUser), args.Error(1)
}

func (m *MockPettyCashRepository) ListPettyCashUsers(ctx context.Context, boardingHouseID string) ([]domain.PettyCashUser, error) {
	args := m.Called(ctx, boardingHouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PettyCashUser), args.Error(1)
}

func (m *MockPettyCashRepository) HasPettyCashHistory(ctx context.Context, pettyCashUserID string) (bool, error) {
	args := m.Called(ctx, pettyCashUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPettyCashRepository) SavePettyCashUser(ctx context.Context, user domain.PettyCashUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockPettyCashRepository) UpdatePettyCashUser(ctx context.Context, user domain.PettyCashUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockPettyCashRepository) DeletePettyCashUser(ctx context.Context, pettyCashUserID string) error {
	args := m.Called(ctx, pettyCashUserID)
	return args.Error(0)
}

// MockPeriodService is a mock type for the PeriodSvcFacade interface
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) GetOrCreatePeriod(ctx context.Context, boardingHouseID string, date time.Time, userID string) (*domain.Period, error) {
	args := m.Called(ctx, boardingHouseID, date, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, boardingHouseID string, userID string) ([]domain.Period, error) {
	args := m.Called(ctx, boardingHouseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, boardingHouseID string, periodID string, userID string) error {
	args := m.Called(ctx, boardingHouseID, periodID, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo    *MockLedgerRepository
	mockAccountRepo   *MockAccountRepository
	mockPettyCashRepo *MockPettyCashRepository
	mockPeriodSvc     *MockPeriodService
	service           portssvc.LedgerSvcFacade

	boardingHouseID string
	userID          string
	openPeriod      *domain.Period
	expenseAccount  *domain.Account
	revenueAccount  *domain.Account
	floatAccount    *domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPettyCashRepo = new(MockPettyCashRepository)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo, suite.mockPettyCashRepo, suite.mockPeriodSvc, nil)

	suite.boardingHouseID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.openPeriod = &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-05",
		StartDate:       time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.expenseAccount = &domain.Account{
		AccountID:       uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Code:            "500010",
		Name:            "Utilities",
		AccountType:     domain.Expense,
		IsActive:        true,
	}
	suite.revenueAccount = &domain.Account{
		AccountID:       uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Code:            "400010",
		Name:            "Room Rent",
		AccountType:     domain.Revenue,
		IsActive:        true,
	}
	suite.floatAccount = &domain.Account{
		AccountID:       uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Code:            "100030",
		Name:            "Petty Cash Float",
		AccountType:     domain.Asset,
		IsActive:        true,
	}
}

func (suite *LedgerServiceTestSuite) expectPostingTarget(account *domain.Account) {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockPeriodSvc.On("GetOrCreatePeriod", ctx, suite.boardingHouseID, mock.AnythingOfType("time.Time"), suite.userID).Return(suite.openPeriod, nil).Once()
}

// --- Expense posting ---

func (suite *LedgerServiceTestSuite) TestPostExpense_FullyPaid() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		AccountID:     suite.expenseAccount.AccountID,
		EntryDate:     "2024-05-12",
		Amount:        decimal.NewFromInt(120),
		Description:   "Electricity bill",
		PaymentMethod: "cash",
		PaymentStatus: "full",
	}

	suite.expectPostingTarget(suite.expenseAccount)
	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.LedgerEntry)
	}).Return(nil).Once()

	entry, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.KindExpense, saved.Kind)
	suite.Equal(domain.Debit, saved.Side)
	suite.Equal(suite.openPeriod.PeriodID, saved.PeriodID)
	suite.Equal(domain.StatusFull, saved.PaymentStatus)
	suite.True(saved.PartialPaymentAmount.IsZero())
	suite.True(saved.RemainingBalance.IsZero())

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostExpense_PartiallyPaid() {
	ctx := context.Background()
	partial := decimal.NewFromInt(40)
	req := dto.CreateExpenseRequest{
		AccountID:            suite.expenseAccount.AccountID,
		EntryDate:            "2024-05-12",
		Amount:               decimal.NewFromInt(100),
		Description:          "Groceries",
		PaymentMethod:        "bank_transfer",
		PaymentStatus:        "partial",
		PartialPaymentAmount: &partial,
		SupplierName:         "Fresh Farm",
	}

	suite.expectPostingTarget(suite.expenseAccount)
	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.LedgerEntry)
	}).Return(nil).Once()

	_, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(saved.PartialPaymentAmount.Equal(decimal.NewFromInt(40)))
	suite.True(saved.RemainingBalance.Equal(decimal.NewFromInt(60)))
	suite.Equal(domain.StatusPartial, saved.PaymentStatus)
}

func (suite *LedgerServiceTestSuite) TestPostExpense_PartialWithoutAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		AccountID:     suite.expenseAccount.AccountID,
		EntryDate:     "2024-05-12",
		Amount:        decimal.NewFromInt(100),
		Description:   "Groceries",
		PaymentMethod: "cash",
		PaymentStatus: "partial",
	}

	suite.expectPostingTarget(suite.expenseAccount)

	entry, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostExpense_PartialExceedsAmount() {
	ctx := context.Background()
	partial := decimal.NewFromInt(150)
	req := dto.CreateExpenseRequest{
		AccountID:            suite.expenseAccount.AccountID,
		EntryDate:            "2024-05-12",
		Amount:               decimal.NewFromInt(100),
		Description:          "Groceries",
		PaymentMethod:        "cash",
		PaymentStatus:        "partial",
		PartialPaymentAmount: &partial,
	}

	suite.expectPostingTarget(suite.expenseAccount)

	_, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostExpense_Unpaid() {
	ctx := context.Background()
	dueDate := "2024-06-01"
	req := dto.CreateExpenseRequest{
		AccountID:     suite.expenseAccount.AccountID,
		EntryDate:     "2024-05-12",
		Amount:        decimal.NewFromInt(250),
		Description:   "Plumbing repair",
		PaymentMethod: "credit",
		PaymentStatus: "unpaid",
		DueDate:       &dueDate,
		SupplierName:  "FixIt Services",
	}

	suite.expectPostingTarget(suite.expenseAccount)
	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.LedgerEntry)
	}).Return(nil).Once()

	_, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(saved.RemainingBalance.Equal(decimal.NewFromInt(250)))
	suite.Require().NotNil(saved.DueDate)
	suite.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), *saved.DueDate)
}

func (suite *LedgerServiceTestSuite) TestPostExpense_ClosedPeriod() {
	ctx := context.Background()
	closed := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-01",
		IsClosed:        true,
	}
	req := dto.CreateExpenseRequest{
		AccountID:     suite.expenseAccount.AccountID,
		EntryDate:     "2024-01-15",
		Amount:        decimal.NewFromInt(50),
		Description:   "Backdated",
		PaymentMethod: "cash",
		PaymentStatus: "full",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(suite.expenseAccount, nil).Once()
	suite.mockPeriodSvc.On("GetOrCreatePeriod", ctx, suite.boardingHouseID, mock.AnythingOfType("time.Time"), suite.userID).Return(closed, nil).Once()

	entry, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostExpense_CategoryAccount() {
	ctx := context.Background()
	category := &domain.Account{
		AccountID:       uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Code:            "5000",
		AccountType:     domain.Expense,
		IsCategory:      true,
		IsActive:        true,
	}
	req := dto.CreateExpenseRequest{
		AccountID:     category.AccountID,
		EntryDate:     "2024-05-12",
		Amount:        decimal.NewFromInt(10),
		Description:   "Misc",
		PaymentMethod: "cash",
		PaymentStatus: "full",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, category.AccountID).Return(category, nil).Once()

	_, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostExpense_WrongAccountType() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		AccountID:     suite.revenueAccount.AccountID,
		EntryDate:     "2024-05-12",
		Amount:        decimal.NewFromInt(10),
		Description:   "Misc",
		PaymentMethod: "cash",
		PaymentStatus: "full",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.revenueAccount.AccountID).Return(suite.revenueAccount, nil).Once()

	_, err := suite.service.PostExpense(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Payment posting ---

func (suite *LedgerServiceTestSuite) TestPostPayment_ChargedDefaultsToAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		AccountID:     suite.revenueAccount.AccountID,
		EntryDate:     "2024-05-03",
		Amount:        decimal.NewFromInt(300),
		Description:   "May rent",
		PaymentMethod: "bank_transfer",
		StudentID:     "STU-42",
		StudentName:   "T. Moyo",
	}

	suite.expectPostingTarget(suite.revenueAccount)
	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.LedgerEntry)
	}).Return(nil).Once()

	_, err := suite.service.PostPayment(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.KindPayment, saved.Kind)
	suite.Equal(domain.Credit, saved.Side)
	suite.Equal(domain.StatusFull, saved.PaymentStatus)
	// No explicit charged amount: the full payment is billed, no credit arises.
	suite.True(saved.PartialPaymentAmount.Equal(decimal.NewFromInt(300)))
}

func (suite *LedgerServiceTestSuite) TestPostPayment_SurplusBecomesCredit() {
	ctx := context.Background()
	charged := decimal.NewFromInt(250)
	req := dto.CreatePaymentRequest{
		AccountID:     suite.revenueAccount.AccountID,
		EntryDate:     "2024-05-03",
		Amount:        decimal.NewFromInt(300),
		Description:   "May rent plus advance",
		PaymentMethod: "cash",
		StudentID:     "STU-42",
		ChargedAmount: &charged,
	}

	suite.expectPostingTarget(suite.revenueAccount)
	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.LedgerEntry)
	}).Return(nil).Once()

	_, err := suite.service.PostPayment(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(saved.PartialPaymentAmount.Equal(decimal.NewFromInt(250)))
	suite.True(saved.Amount.Equal(decimal.NewFromInt(300)))
}

func (suite *LedgerServiceTestSuite) TestPostPayment_ChargedExceedsAmount() {
	ctx := context.Background()
	charged := decimal.NewFromInt(400)
	req := dto.CreatePaymentRequest{
		AccountID:     suite.revenueAccount.AccountID,
		EntryDate:     "2024-05-03",
		Amount:        decimal.NewFromInt(300),
		Description:   "May rent",
		PaymentMethod: "cash",
		ChargedAmount: &charged,
	}

	entry, err := suite.service.PostPayment(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostPayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		AccountID:     suite.revenueAccount.AccountID,
		EntryDate:     "2024-05-03",
		Amount:        decimal.Zero,
		Description:   "Nothing",
		PaymentMethod: "cash",
	}

	_, err := suite.service.PostPayment(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Petty cash movements ---

func (suite *LedgerServiceTestSuite) activePettyCashUser(balance, limit int64) *domain.PettyCashUser {
	return &domain.PettyCashUser{
		PettyCashUserID: uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Username:        "matron",
		FullName:        "House Matron",
		CurrentBalance:  decimal.NewFromInt(balance),
		MonthlyLimit:    decimal.NewFromInt(limit),
		Status:          domain.PettyCashActive,
	}
}

func (suite *LedgerServiceTestSuite) TestPostPettyCashIssuance_Success() {
	ctx := context.Background()
	pcUser := suite.activePettyCashUser(20, 200)
	req := dto.PettyCashMovementRequest{
		AccountID:   suite.floatAccount.AccountID,
		EntryDate:   "2024-05-06",
		Amount:      decimal.NewFromInt(80),
		Description: "Weekly float top-up",
	}

	suite.mockPettyCashRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	suite.expectPostingTarget(suite.floatAccount)
	var saved domain.LedgerEntry
	var delta decimal.Decimal
	suite.mockLedgerRepo.On("SavePettyCashEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("decimal.Decimal")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.LedgerEntry)
		delta = args.Get(2).(decimal.Decimal)
	}).Return(nil).Once()

	entry, err := suite.service.PostPettyCashIssuance(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.KindPettyCashIssuance, saved.Kind)
	suite.Equal(domain.Debit, saved.Side)
	suite.Equal(domain.MethodPettyCash, saved.PaymentMethod)
	suite.Equal(pcUser.PettyCashUserID, saved.PettyCashUserID)
	suite.True(delta.Equal(decimal.NewFromInt(80)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPettyCashRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostPettyCashIssuance_ExceedsMonthlyLimit() {
	ctx := context.Background()
	pcUser := suite.activePettyCashUser(150, 200)
	req := dto.PettyCashMovementRequest{
		AccountID:   suite.floatAccount.AccountID,
		EntryDate:   "2024-05-06",
		Amount:      decimal.NewFromInt(80),
		Description: "Too much",
	}

	suite.mockPettyCashRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	suite.expectPostingTarget(suite.floatAccount)

	entry, err := suite.service.PostPettyCashIssuance(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePettyCashEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostPettyCashIssuance_NoLimitConfigured() {
	ctx := context.Background()
	pcUser := suite.activePettyCashUser(500, 0) // zero limit means unlimited
	req := dto.PettyCashMovementRequest{
		AccountID:   suite.floatAccount.AccountID,
		EntryDate:   "2024-05-06",
		Amount:      decimal.NewFromInt(1000),
		Description: "Large top-up",
	}

	suite.mockPettyCashRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	suite.expectPostingTarget(suite.floatAccount)
	suite.mockLedgerRepo.On("SavePettyCashEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("decimal.Decimal")).Return(nil).Once()

	_, err := suite.service.PostPettyCashIssuance(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostPettyCashReduction_Success() {
	ctx := context.Background()
	pcUser := suite.activePettyCashUser(100, 200)
	req := dto.PettyCashMovementRequest{
		AccountID:   suite.floatAccount.AccountID,
		EntryDate:   "2024-05-20",
		Amount:      decimal.NewFromInt(60),
		Description: "Float returned",
	}

	suite.mockPettyCashRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	suite.expectPostingTarget(suite.floatAccount)
	var delta decimal.Decimal
	suite.mockLedgerRepo.On("SavePettyCashEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("decimal.Decimal")).Run(func(args mock.Arguments) {
		delta = args.Get(2).(decimal.Decimal)
	}).Return(nil).Once()

	entry, err := suite.service.PostPettyCashReduction(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Credit, entry.Side)
	suite.True(delta.Equal(decimal.NewFromInt(-60)))
}

func (suite *LedgerServiceTestSuite) TestPostPettyCashReduction_ExceedsFloat() {
	ctx := context.Background()
	pcUser := suite.activePettyCashUser(30, 200)
	req := dto.PettyCashMovementRequest{
		AccountID:   suite.floatAccount.AccountID,
		EntryDate:   "2024-05-20",
		Amount:      decimal.NewFromInt(60),
		Description: "Overdrawn return",
	}

	suite.mockPettyCashRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	suite.expectPostingTarget(suite.floatAccount)

	entry, err := suite.service.PostPettyCashReduction(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostPettyCashMovement_InactiveUser() {
	ctx := context.Background()
	pcUser := suite.activePettyCashUser(0, 200)
	pcUser.Status = domain.PettyCashSuspended
	req := dto.PettyCashMovementRequest{
		AccountID:   suite.floatAccount.AccountID,
		EntryDate:   "2024-05-06",
		Amount:      decimal.NewFromInt(10),
		Description: "Top-up",
	}

	suite.mockPettyCashRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()

	_, err := suite.service.PostPettyCashIssuance(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestPostPettyCashMovement_WrongBoardingHouse() {
	ctx := context.Background()
	pcUser := suite.activePettyCashUser(0, 200)
	pcUser.BoardingHouseID = uuid.NewString()
	req := dto.PettyCashMovementRequest{
		AccountID:   suite.floatAccount.AccountID,
		EntryDate:   "2024-05-06",
		Amount:      decimal.NewFromInt(10),
		Description: "Top-up",
	}

	suite.mockPettyCashRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()

	_, err := suite.service.PostPettyCashIssuance(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Listing and mutation ---

func (suite *LedgerServiceTestSuite) TestListEntries_UnknownKind() {
	ctx := context.Background()

	resp, err := suite.service.ListEntries(ctx, suite.boardingHouseID, domain.EntryKind("REFUND"), suite.userID, dto.ListEntriesParams{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ListEntries", ctx, suite.boardingHouseID, domain.KindExpense, 20, (*string)(nil)).Return([]domain.LedgerEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.boardingHouseID, domain.KindExpense, suite.userID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_ClosedPeriod() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.LedgerEntry{
		EntryID:         entryID,
		BoardingHouseID: suite.boardingHouseID,
		Kind:            domain.KindExpense,
		EntryDate:       time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromInt(45),
		AuditFields:     domain.AuditFields{CreatedBy: suite.userID},
	}
	closed := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-01",
		IsClosed:        true,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockPeriodSvc.On("GetOrCreatePeriod", ctx, suite.boardingHouseID, entry.EntryDate, suite.userID).Return(closed, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.boardingHouseID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_StatusToPartial() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.LedgerEntry{
		EntryID:          entryID,
		BoardingHouseID:  suite.boardingHouseID,
		Kind:             domain.KindExpense,
		EntryDate:        time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		Amount:           decimal.NewFromInt(200),
		PaymentStatus:    domain.StatusUnpaid,
		RemainingBalance: decimal.NewFromInt(200),
		AuditFields:      domain.AuditFields{CreatedBy: suite.userID},
	}
	status := "partial"
	partial := decimal.NewFromInt(50)
	req := dto.UpdateEntryRequest{
		PaymentStatus:        &status,
		PartialPaymentAmount: &partial,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockPeriodSvc.On("GetOrCreatePeriod", ctx, suite.boardingHouseID, entry.EntryDate, suite.userID).Return(suite.openPeriod, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, suite.boardingHouseID, entryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPartial, updated.PaymentStatus)
	suite.True(updated.PartialPaymentAmount.Equal(decimal.NewFromInt(50)))
	suite.True(updated.RemainingBalance.Equal(decimal.NewFromInt(150)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID_WrongBoardingHouse() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.LedgerEntry{
		EntryID:         entryID,
		BoardingHouseID: uuid.NewString(),
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	found, err := suite.service.GetEntryByID(ctx, suite.boardingHouseID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
