package services

import (
	"context"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodSvcFacade defines operations on accounting periods.
type PeriodSvcFacade interface {
	// GetOrCreatePeriod looks up the calendar-month period containing the
	// date, creating an open one if absent.
	GetOrCreatePeriod(ctx context.Context, boardingHouseID string, date time.Time, userID string) (*domain.Period, error)

	// ListPeriods retrieves all periods for a boarding house.
	ListPeriods(ctx context.Context, boardingHouseID string, userID string) ([]domain.Period, error)

	// ClosePeriod transitions the period open -> closed, snapshotting
	// carried-down balances and rolling them forward atomically.
	ClosePeriod(ctx context.Context, boardingHouseID string, periodID string, userID string) error
}

// BalanceSvcFacade defines balance calculation operations.
type BalanceSvcFacade interface {
	// GetBalances computes the calculated balance of every account with
	// activity or a brought-down row in the period.
	GetBalances(ctx context.Context, boardingHouseID string, periodID string, userID string) ([]domain.AccountPeriodBalance, error)

	// SetBroughtDown overrides an account's opening balance while the
	// period is still open.
	SetBroughtDown(ctx context.Context, boardingHouseID string, accountID string, periodID string, amount decimal.Decimal, userID string) error
}
