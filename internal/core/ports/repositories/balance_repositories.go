package repositories

import (
	"context"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceReader defines read operations for account period balances.
// Totals are always produced by live aggregation over ledger entries.
type BalanceReader interface {
	// GetPeriodBalances returns a balance row for every account of the
	// boarding house that has ledger activity or an explicit brought-down
	// row in the period. TotalDebits/TotalCredits come from SUM queries.
	GetPeriodBalances(ctx context.Context, boardingHouseID string, periodID string) ([]domain.AccountPeriodBalance, error)

	// FindBalanceRow retrieves the persisted balance row for one
	// account/period pair, or apperrors.ErrNotFound.
	FindBalanceRow(ctx context.Context, accountID string, periodID string) (*domain.AccountPeriodBalance, error)
}

// BalanceWriter defines write operations for account period balances
type BalanceWriter interface {
	// UpsertBroughtDown sets the brought-down amount on the balance row
	// for an account/period, creating the row if absent.
	UpsertBroughtDown(ctx context.Context, accountID string, periodID string, amount decimal.Decimal, userID string, now time.Time) error
}

// BalanceRepositoryFacade combines balance repository interfaces
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
