package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetIncomeStatementData(ctx context.Context, boardingHouseID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	args := m.Called(ctx, boardingHouseID, from, to)
	var revenue, expenses []domain.AccountAmount
	if args.Get(0) != nil {
		revenue = args.Get(0).([]domain.AccountAmount)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.AccountAmount)
	}
	return revenue, expenses, args.Error(2)
}

func (m *MockReportingRepository) GetCreditorsData(ctx context.Context, boardingHouseID string) ([]domain.Creditor, error) {
	args := m.Called(ctx, boardingHouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Creditor), args.Error(1)
}

func (m *MockReportingRepository) GetPrepaymentsData(ctx context.Context, boardingHouseID string) ([]domain.StudentPrepayment, error) {
	args := m.Called(ctx, boardingHouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentPrepayment), args.Error(1)
}

func (m *MockReportingRepository) GetOverdueData(ctx context.Context, boardingHouseID string, asOf time.Time) ([]domain.OverduePayment, error) {
	args := m.Called(ctx, boardingHouseID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverduePayment), args.Error(1)
}

// --- Test Suite Setup ---

type PayablesServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockReportingRepository
	service         portssvc.PayablesSvcFacade
	boardingHouseID string
	userID          string
}

func (suite *PayablesServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	thresholds := domain.ReportThresholds{
		HighCreditThreshold: decimal.NewFromInt(500),
		InactiveAfterDays:   60,
	}
	suite.service = services.NewPayablesService(suite.mockRepo, thresholds, nil)
	suite.boardingHouseID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *PayablesServiceTestSuite) TestCreditorsReport_ClassifiesAndTotals() {
	ctx := context.Background()
	creditors := []domain.Creditor{
		{
			SupplierName:    "Settled Supplies",
			TotalBilled:     decimal.NewFromInt(400),
			TotalPaid:       decimal.NewFromInt(400),
			OutstandingDebt: decimal.Zero,
		},
		{
			SupplierName:    "Half Paid Hardware",
			TotalBilled:     decimal.NewFromInt(100),
			TotalPaid:       decimal.NewFromInt(50),
			OutstandingDebt: decimal.NewFromInt(50),
		},
		{
			SupplierName:    "Unpaid Utilities",
			TotalBilled:     decimal.NewFromInt(200),
			TotalPaid:       decimal.Zero,
			OutstandingDebt: decimal.NewFromInt(200),
		},
	}

	suite.mockRepo.On("GetCreditorsData", ctx, suite.boardingHouseID).Return(creditors, nil).Once()

	report, err := suite.service.CreditorsReport(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(3, report.CreditorCount)
	suite.True(report.TotalOutstanding.Equal(decimal.NewFromInt(250)))
	suite.Equal(domain.CreditorPaid, report.Creditors[0].Status)
	suite.Equal(domain.CreditorPartial, report.Creditors[1].Status)
	suite.Equal(domain.CreditorDebt, report.Creditors[2].Status)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayablesServiceTestSuite) TestCreditorsReport_Empty() {
	ctx := context.Background()

	suite.mockRepo.On("GetCreditorsData", ctx, suite.boardingHouseID).Return([]domain.Creditor{}, nil).Once()

	report, err := suite.service.CreditorsReport(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	suite.Zero(report.CreditorCount)
	suite.True(report.TotalOutstanding.IsZero())
	suite.NotNil(report.Creditors)
}

func (suite *PayablesServiceTestSuite) TestPrepaymentsReport_ClassifiesStudents() {
	ctx := context.Background()
	now := time.Now()
	students := []domain.StudentPrepayment{
		{
			StudentName:     "Big Saver",
			TotalPaid:       decimal.NewFromInt(1000),
			TotalCharged:    decimal.NewFromInt(400),
			CreditBalance:   decimal.NewFromInt(600),
			LastPaymentDate: now.AddDate(0, 0, -5),
		},
		{
			StudentName:     "Regular",
			TotalPaid:       decimal.NewFromInt(500),
			TotalCharged:    decimal.NewFromInt(400),
			CreditBalance:   decimal.NewFromInt(100),
			LastPaymentDate: now.AddDate(0, 0, -10),
		},
		{
			StudentName:     "Gone Quiet",
			TotalPaid:       decimal.NewFromInt(300),
			TotalCharged:    decimal.NewFromInt(250),
			CreditBalance:   decimal.NewFromInt(50),
			LastPaymentDate: now.AddDate(0, 0, -90),
		},
		{
			StudentName:     "Owes Money",
			TotalPaid:       decimal.NewFromInt(100),
			TotalCharged:    decimal.NewFromInt(400),
			CreditBalance:   decimal.NewFromInt(-300),
			LastPaymentDate: now,
		},
	}

	suite.mockRepo.On("GetPrepaymentsData", ctx, suite.boardingHouseID).Return(students, nil).Once()

	report, err := suite.service.PrepaymentsReport(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	// Students without a positive credit balance never appear.
	suite.Equal(3, report.StudentCount)
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(750)))
	suite.Equal(domain.PrepaymentHighCredit, report.Students[0].Class)
	suite.Equal(domain.PrepaymentCurrent, report.Students[1].Class)
	suite.Equal(domain.PrepaymentInactive, report.Students[2].Class)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayablesServiceTestSuite) TestPrepaymentsReport_CreditAtThresholdIsCurrent() {
	ctx := context.Background()
	students := []domain.StudentPrepayment{
		{
			StudentName:     "Exactly At Threshold",
			CreditBalance:   decimal.NewFromInt(500),
			LastPaymentDate: time.Now(),
		},
	}

	suite.mockRepo.On("GetPrepaymentsData", ctx, suite.boardingHouseID).Return(students, nil).Once()

	report, err := suite.service.PrepaymentsReport(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Students, 1)
	suite.Equal(domain.PrepaymentCurrent, report.Students[0].Class)
}

func (suite *PayablesServiceTestSuite) TestOverduePayments_DaysRoundUp() {
	ctx := context.Background()
	now := time.Now().UTC()
	rows := []domain.OverduePayment{
		{
			EntryID:          uuid.NewString(),
			SupplierName:     "FixIt Services",
			RemainingBalance: decimal.NewFromInt(120),
			DueDate:          now.Add(-2 * time.Hour),
		},
		{
			EntryID:          uuid.NewString(),
			SupplierName:     "Fresh Farm",
			RemainingBalance: decimal.NewFromInt(60),
			DueDate:          now.Add(-30 * time.Hour),
		},
		{
			EntryID:          uuid.NewString(),
			SupplierName:     "City Power",
			RemainingBalance: decimal.NewFromInt(300),
			DueDate:          now.Add(-49 * time.Hour),
		},
	}

	suite.mockRepo.On("GetOverdueData", ctx, suite.boardingHouseID, mock.AnythingOfType("time.Time")).Return(rows, nil).Once()

	overdue, err := suite.service.OverduePayments(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(overdue, 3)
	// Any fraction of a late day counts as a whole day.
	suite.Equal(1, overdue[0].DaysOverdue)
	suite.Equal(2, overdue[1].DaysOverdue)
	suite.Equal(3, overdue[2].DaysOverdue)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayablesServiceTestSuite) TestOverduePayments_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("GetOverdueData", ctx, suite.boardingHouseID, mock.AnythingOfType("time.Time")).Return(nil, nil).Once()

	overdue, err := suite.service.OverduePayments(ctx, suite.boardingHouseID, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(overdue)
	suite.Empty(overdue)
}

// --- Run Test Suite ---

func TestPayablesService(t *testing.T) {
	suite.Run(t, new(PayablesServiceTestSuite))
}
