package services

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
)

// IncomeStatementSvcFacade generates and persists income statements.
type IncomeStatementSvcFacade interface {
	// Generate computes a revenue/expense/net-income report for a date
	// range, either per boarding house or consolidated across all.
	Generate(ctx context.Context, params dto.GenerateStatementParams, userID string) (*domain.IncomeStatement, error)

	// Save persists an immutable snapshot of a generated statement.
	Save(ctx context.Context, boardingHouseID string, req dto.SaveStatementRequest, userID string) (*domain.SavedStatement, error)

	// ListSaved retrieves saved statements for a boarding house.
	ListSaved(ctx context.Context, boardingHouseID string, userID string) ([]domain.SavedStatement, error)

	// LoadSaved retrieves one saved statement snapshot without recomputation.
	LoadSaved(ctx context.Context, boardingHouseID string, statementID string, userID string) (*domain.SavedStatement, error)
}

// PayablesSvcFacade derives AP/AR reports from ledger history.
type PayablesSvcFacade interface {
	// CreditorsReport aggregates unpaid/partially-paid expenses per supplier.
	CreditorsReport(ctx context.Context, boardingHouseID string, userID string) (*domain.CreditorsReport, error)

	// PrepaymentsReport finds students whose cumulative payments exceed
	// cumulative charges.
	PrepaymentsReport(ctx context.Context, boardingHouseID string, userID string) (*domain.PrepaymentsReport, error)

	// OverduePayments lists outstanding charges past their due date.
	OverduePayments(ctx context.Context, boardingHouseID string, userID string) ([]domain.OverduePayment, error)
}
