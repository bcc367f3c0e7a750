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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPeriodRepository is a mock type for the PeriodRepositoryFacade interface
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByDate(ctx context.Context, boardingHouseID string, date time.Time) (*domain.Period, error) {
	args := m.Called(ctx, boardingHouseID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindNextPeriod(ctx context.Context, period domain.Period) (*domain.Period, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, boardingHouseID string) ([]domain.Period, error) {
	args := m.Called(ctx, boardingHouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PeriodServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockPeriodRepository
	service         portssvc.PeriodSvcFacade
	boardingHouseID string
	userID          string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockRepo, nil)
	suite.boardingHouseID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *PeriodServiceTestSuite) TestGetOrCreatePeriod_ReturnsExisting() {
	ctx := context.Background()
	date := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	existing := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-03",
		StartDate:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindPeriodByDate", ctx, suite.boardingHouseID, date).Return(existing, nil).Once()

	period, err := suite.service.GetOrCreatePeriod(ctx, suite.boardingHouseID, date, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing, period)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestGetOrCreatePeriod_CreatesCalendarMonth() {
	ctx := context.Background()
	date := time.Date(2024, time.February, 10, 23, 59, 0, 0, time.UTC)

	suite.mockRepo.On("FindPeriodByDate", ctx, suite.boardingHouseID, date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(nil).Once()

	period, err := suite.service.GetOrCreatePeriod(ctx, suite.boardingHouseID, date, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.Equal("2024-02", period.Name)
	suite.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), period.StartDate)
	suite.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), period.EndDate) // leap year
	suite.False(period.IsClosed)
	suite.Equal(suite.userID, period.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestGetOrCreatePeriod_DuplicateRaceRereads() {
	ctx := context.Background()
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	winner := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-06",
	}

	suite.mockRepo.On("FindPeriodByDate", ctx, suite.boardingHouseID, date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindPeriodByDate", ctx, suite.boardingHouseID, date).Return(winner, nil).Once()

	period, err := suite.service.GetOrCreatePeriod(ctx, suite.boardingHouseID, date, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(winner.PeriodID, period.PeriodID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestListPeriods_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("ListPeriods", ctx, suite.boardingHouseID).Return(nil, nil).Once()

	periods, err := suite.service.ListPeriods(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(periods)
	suite.Empty(periods)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.Period{
		PeriodID:        periodID,
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-04",
		IsClosed:        false,
	}

	suite.mockRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()
	suite.mockRepo.On("FindNextPeriod", ctx, *period).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ClosePeriod", ctx, periodID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.boardingHouseID, periodID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_OpenFollowingPeriod() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.Period{
		PeriodID:        periodID,
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-04",
	}
	next := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-05",
		IsClosed:        false,
	}

	suite.mockRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()
	suite.mockRepo.On("FindNextPeriod", ctx, *period).Return(next, nil).Once()
	suite.mockRepo.On("ClosePeriod", ctx, periodID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.boardingHouseID, periodID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_FollowingPeriodAlreadyClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.Period{
		PeriodID:        periodID,
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-03",
	}
	next := &domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-04",
		IsClosed:        true,
	}

	suite.mockRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()
	suite.mockRepo.On("FindNextPeriod", ctx, *period).Return(next, nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.boardingHouseID, periodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.Period{
		PeriodID:        periodID,
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-04",
		IsClosed:        true,
	}

	suite.mockRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.boardingHouseID, periodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_WrongBoardingHouse() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.Period{
		PeriodID:        periodID,
		BoardingHouseID: uuid.NewString(),
		Name:            "2024-04",
	}

	suite.mockRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.boardingHouseID, periodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
