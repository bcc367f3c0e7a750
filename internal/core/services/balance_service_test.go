package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockBalanceRepository is a mock type for the BalanceRepositoryFacade interface
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetPeriodBalances(ctx context.Context, boardingHouseID string, periodID string) ([]domain.AccountPeriodBalance, error) {
	args := m.Called(ctx, boardingHouseID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountPeriodBalance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalanceRow(ctx context.Context, accountID string, periodID string) (*domain.AccountPeriodBalance, error) {
	args := m.Called(ctx, accountID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountPeriodBalance), args.Error(1)
}

func (m *MockBalanceRepository) UpsertBroughtDown(ctx context.Context, accountID string, periodID string, amount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, periodID, amount, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BalanceServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo *MockBalanceRepository
	mockPeriodRepo  *MockPeriodRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.BalanceSvcFacade
	boardingHouseID string
	userID          string
	openPeriod      *domain.Period
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewBalanceService(suite.mockBalanceRepo, suite.mockPeriodRepo, suite.mockAccountRepo, nil)
	suite.boardingHouseID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.openPeriod = &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-05",
	}
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestGetBalances_AppliesSignConventions() {
	ctx := context.Background()
	rows := []domain.AccountPeriodBalance{
		{
			AccountID:    uuid.NewString(),
			PeriodID:     suite.openPeriod.PeriodID,
			AccountType:  domain.Asset,
			AccountCode:  "100010",
			BroughtDown:  decimal.NewFromInt(100),
			TotalDebits:  decimal.NewFromInt(250),
			TotalCredits: decimal.NewFromInt(50),
		},
		{
			AccountID:    uuid.NewString(),
			PeriodID:     suite.openPeriod.PeriodID,
			AccountType:  domain.Revenue,
			AccountCode:  "400010",
			BroughtDown:  decimal.Zero,
			TotalDebits:  decimal.Zero,
			TotalCredits: decimal.NewFromInt(900),
		},
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(suite.openPeriod, nil).Once()
	suite.mockBalanceRepo.On("GetPeriodBalances", ctx, suite.boardingHouseID, suite.openPeriod.PeriodID).Return(rows, nil).Once()

	balances, err := suite.service.GetBalances(ctx, suite.boardingHouseID, suite.openPeriod.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	// Asset: 100 + 250 - 50; revenue: 0 - 0 + 900.
	suite.True(balances[0].CalculatedBalance.Equal(decimal.NewFromInt(300)))
	suite.True(balances[1].CalculatedBalance.Equal(decimal.NewFromInt(900)))

	suite.mockBalanceRepo.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalances_WrongBoardingHouse() {
	ctx := context.Background()
	period := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: uuid.NewString(),
		Name:            "2024-05",
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	balances, err := suite.service.GetBalances(ctx, suite.boardingHouseID, period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(balances)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "GetPeriodBalances", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetBalances_Empty() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(suite.openPeriod, nil).Once()
	suite.mockBalanceRepo.On("GetPeriodBalances", ctx, suite.boardingHouseID, suite.openPeriod.PeriodID).Return(nil, nil).Once()

	balances, err := suite.service.GetBalances(ctx, suite.boardingHouseID, suite.openPeriod.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(balances)
	suite.Empty(balances)
}

func (suite *BalanceServiceTestSuite) TestSetBroughtDown_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:       uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Code:            "100020",
		AccountType:     domain.Asset,
		IsActive:        true,
	}
	amount := decimal.NewFromInt(750)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(suite.openPeriod, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockBalanceRepo.On("UpsertBroughtDown", ctx, account.AccountID, suite.openPeriod.PeriodID, amount, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.SetBroughtDown(ctx, suite.boardingHouseID, account.AccountID, suite.openPeriod.PeriodID, amount, suite.userID)

	suite.Require().NoError(err)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestSetBroughtDown_ClosedPeriod() {
	ctx := context.Background()
	closed := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-01",
		IsClosed:        true,
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(closed, nil).Once()

	err := suite.service.SetBroughtDown(ctx, suite.boardingHouseID, uuid.NewString(), closed.PeriodID, decimal.NewFromInt(10), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "UpsertBroughtDown", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestSetBroughtDown_CategoryAccount() {
	ctx := context.Background()
	category := &domain.Account{
		AccountID:       uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Code:            "1000",
		AccountType:     domain.Asset,
		IsCategory:      true,
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(suite.openPeriod, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, category.AccountID).Return(category, nil).Once()

	err := suite.service.SetBroughtDown(ctx, suite.boardingHouseID, category.AccountID, suite.openPeriod.PeriodID, decimal.NewFromInt(10), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
