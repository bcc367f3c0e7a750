package repositories

import (
	"context"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// ReportingRepository provides the aggregation queries behind financial
// reports. boardingHouseID == "" means consolidated across all tenants.
type ReportingRepository interface {
	// GetIncomeStatementData sums revenue and expense postings grouped by
	// account for the date range.
	GetIncomeStatementData(ctx context.Context, boardingHouseID string, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetCreditorsData aggregates expense entries per supplier.
	GetCreditorsData(ctx context.Context, boardingHouseID string) ([]domain.Creditor, error)

	// GetPrepaymentsData aggregates payment vs charge history per student.
	GetPrepaymentsData(ctx context.Context, boardingHouseID string) ([]domain.StudentPrepayment, error)

	// GetOverdueData lists entries past their due date with an outstanding
	// balance, as of the given time.
	GetOverdueData(ctx context.Context, boardingHouseID string, asOf time.Time) ([]domain.OverduePayment, error)
}

// StatementReader defines read operations for saved income statements
type StatementReader interface {
	// FindStatementByID retrieves a saved statement snapshot.
	FindStatementByID(ctx context.Context, statementID string) (*domain.SavedStatement, error)

	// ListStatements retrieves saved statements for a boarding house.
	ListStatements(ctx context.Context, boardingHouseID string) ([]domain.SavedStatement, error)
}

// StatementWriter defines write operations for saved income statements
type StatementWriter interface {
	// SaveStatement persists an immutable statement snapshot.
	SaveStatement(ctx context.Context, statement domain.SavedStatement) error
}

// StatementRepositoryFacade combines saved statement repository interfaces
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
