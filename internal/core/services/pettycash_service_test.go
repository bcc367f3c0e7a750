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

type PettyCashServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockPettyCashRepository
	service         portssvc.PettyCashSvcFacade
	boardingHouseID string
	userID          string
}

func (suite *PettyCashServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPettyCashRepository)
	suite.service = services.NewPettyCashService(suite.mockRepo, nil)
	suite.boardingHouseID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *PettyCashServiceTestSuite) existingUser() *domain.PettyCashUser {
	return &domain.PettyCashUser{
		PettyCashUserID: uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Username:        "matron",
		FullName:        "House Matron",
		CurrentBalance:  decimal.Zero,
		MonthlyLimit:    decimal.NewFromInt(200),
		Status:          domain.PettyCashActive,
	}
}

// --- Test Cases ---

func (suite *PettyCashServiceTestSuite) TestRegisterUser_Defaults() {
	ctx := context.Background()
	req := dto.CreatePettyCashUserRequest{
		Username: "caretaker",
		FullName: "The Caretaker",
	}

	var saved domain.PettyCashUser
	suite.mockRepo.On("SavePettyCashUser", ctx, mock.AnythingOfType("domain.PettyCashUser")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.PettyCashUser)
	}).Return(nil).Once()

	created, err := suite.service.RegisterUser(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.PettyCashUserID)
	suite.True(saved.CurrentBalance.IsZero())
	suite.True(saved.MonthlyLimit.IsZero())
	suite.Equal(domain.PettyCashActive, saved.Status)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.WithinDuration(time.Now(), saved.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PettyCashServiceTestSuite) TestRegisterUser_WithMonthlyLimit() {
	ctx := context.Background()
	limit := decimal.NewFromInt(150)
	req := dto.CreatePettyCashUserRequest{
		Username:     "caretaker",
		FullName:     "The Caretaker",
		MonthlyLimit: &limit,
	}

	var saved domain.PettyCashUser
	suite.mockRepo.On("SavePettyCashUser", ctx, mock.AnythingOfType("domain.PettyCashUser")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.PettyCashUser)
	}).Return(nil).Once()

	_, err := suite.service.RegisterUser(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(saved.MonthlyLimit.Equal(decimal.NewFromInt(150)))
}

func (suite *PettyCashServiceTestSuite) TestRegisterUser_NegativeLimit() {
	ctx := context.Background()
	limit := decimal.NewFromInt(-10)
	req := dto.CreatePettyCashUserRequest{
		Username:     "caretaker",
		FullName:     "The Caretaker",
		MonthlyLimit: &limit,
	}

	created, err := suite.service.RegisterUser(ctx, suite.boardingHouseID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePettyCashUser", mock.Anything, mock.Anything)
}

func (suite *PettyCashServiceTestSuite) TestGetUser_WrongBoardingHouse() {
	ctx := context.Background()
	pcUser := suite.existingUser()
	pcUser.BoardingHouseID = uuid.NewString()

	suite.mockRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()

	found, err := suite.service.GetUser(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PettyCashServiceTestSuite) TestUpdateUser_ChangesLimitAndStatus() {
	ctx := context.Background()
	pcUser := suite.existingUser()
	newLimit := decimal.NewFromInt(300)
	newStatus := "suspended"
	req := dto.UpdatePettyCashUserRequest{
		MonthlyLimit: &newLimit,
		Status:       &newStatus,
	}

	suite.mockRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	var saved domain.PettyCashUser
	suite.mockRepo.On("UpdatePettyCashUser", ctx, mock.AnythingOfType("domain.PettyCashUser")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.PettyCashUser)
	}).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.MonthlyLimit.Equal(decimal.NewFromInt(300)))
	suite.Equal(domain.PettyCashSuspended, saved.Status)
	suite.Equal(suite.userID, saved.LastUpdatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PettyCashServiceTestSuite) TestUpdateUser_UnknownStatus() {
	ctx := context.Background()
	pcUser := suite.existingUser()
	badStatus := "retired"
	req := dto.UpdatePettyCashUserRequest{Status: &badStatus}

	suite.mockRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()

	updated, err := suite.service.UpdateUser(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePettyCashUser", mock.Anything, mock.Anything)
}

func (suite *PettyCashServiceTestSuite) TestRemoveUser_HoldsFloat() {
	ctx := context.Background()
	pcUser := suite.existingUser()
	pcUser.CurrentBalance = decimal.NewFromInt(45)

	suite.mockRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()

	err := suite.service.RemoveUser(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "HasPettyCashHistory", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeletePettyCashUser", mock.Anything, mock.Anything)
}

func (suite *PettyCashServiceTestSuite) TestRemoveUser_WithHistoryDeactivates() {
	ctx := context.Background()
	pcUser := suite.existingUser()

	suite.mockRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	suite.mockRepo.On("HasPettyCashHistory", ctx, pcUser.PettyCashUserID).Return(true, nil).Once()
	var saved domain.PettyCashUser
	suite.mockRepo.On("UpdatePettyCashUser", ctx, mock.AnythingOfType("domain.PettyCashUser")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.PettyCashUser)
	}).Return(nil).Once()

	err := suite.service.RemoveUser(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PettyCashInactive, saved.Status)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeletePettyCashUser", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PettyCashServiceTestSuite) TestRemoveUser_NoHistoryDeletes() {
	ctx := context.Background()
	pcUser := suite.existingUser()

	suite.mockRepo.On("FindPettyCashUserByID", ctx, pcUser.PettyCashUserID).Return(pcUser, nil).Once()
	suite.mockRepo.On("HasPettyCashHistory", ctx, pcUser.PettyCashUserID).Return(false, nil).Once()
	suite.mockRepo.On("DeletePettyCashUser", ctx, pcUser.PettyCashUserID).Return(nil).Once()

	err := suite.service.RemoveUser(ctx, suite.boardingHouseID, pcUser.PettyCashUserID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePettyCashUser", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PettyCashServiceTestSuite) TestListUsers_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("ListPettyCashUsers", ctx, suite.boardingHouseID).Return(nil, nil).Once()

	users, err := suite.service.ListUsers(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(users)
	suite.Empty(users)
}

// --- Run Test Suite ---

func TestPettyCashService(t *testing.T) {
	suite.Run(t, new(PettyCashServiceTestSuite))
}
