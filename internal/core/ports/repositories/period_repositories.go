package repositories

import (
	"context"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods
type PeriodReader interface {
	// FindPeriodByID retrieves a specific period by its ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)

	// FindPeriodByDate retrieves the calendar-month period containing the
	// given date for a boarding house, or apperrors.ErrNotFound.
	FindPeriodByDate(ctx context.Context, boardingHouseID string, date time.Time) (*domain.Period, error)

	// FindNextPeriod retrieves the period immediately following the given
	// one for the same boarding house, or apperrors.ErrNotFound.
	FindNextPeriod(ctx context.Context, period domain.Period) (*domain.Period, error)

	// ListPeriods retrieves all periods for a boarding house ordered by start date.
	ListPeriods(ctx context.Context, boardingHouseID string) ([]domain.Period, error)
}

// PeriodWriter defines write operations for accounting periods
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.Period) error

	// ClosePeriod performs the atomic close: locks the period, snapshots
	// every account's calculated balance as carried-down, rolls each one
	// forward as the next period's brought-down (creating the next period
	// if absent), and marks the period closed. All writes happen in one
	// database transaction. Returns apperrors.ErrConflict when the period
	// is already closed.
	ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
