package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService implements the BalanceSvcFacade interface
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, authorizer portssvc.BoardingHouseAuthorizerSvc) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService: BaseService{Authorizer: authorizer},
		balanceRepo: balanceRepo,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalances returns a balance row for every account of the boarding
// house with ledger activity or an explicit brought-down row in the
// period. Debit/credit totals come from live aggregation; the calculated
// balance applies the account type's sign convention.
func (s *balanceService) GetBalances(ctx context.Context, boardingHouseID string, periodID string, userID string) ([]domain.AccountPeriodBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.BoardingHouseID != boardingHouseID {
		return nil, apperrors.ErrNotFound
	}

	rows, err := s.balanceRepo.GetPeriodBalances(ctx, boardingHouseID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate period balances",
			slog.String("period_id", periodID),
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to get balances for period %s: %w", periodID, err)
	}

	for i := range rows {
		balance, err := accounting.CalculateBalance(rows[i].AccountType, rows[i].BroughtDown, rows[i].TotalDebits, rows[i].TotalCredits)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate balance for account %s: %w", rows[i].AccountID, err)
		}
		rows[i].CalculatedBalance = balance
	}

	if rows == nil {
		rows = []domain.AccountPeriodBalance{}
	}
	return rows, nil
}

// SetBroughtDown overrides an account's opening balance for a period that
// is still open.
func (s *balanceService) SetBroughtDown(ctx context.Context, boardingHouseID string, accountID string, periodID string, amount decimal.Decimal, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleAdmin); err != nil {
		return err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if period.BoardingHouseID != boardingHouseID {
		return apperrors.ErrNotFound
	}
	if period.IsClosed {
		return fmt.Errorf("%w: period %s is closed", apperrors.ErrConflict, period.Name)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for brought-down update",
				slog.String("account_id", accountID))
		}
		return err
	}
	if account.BoardingHouseID != boardingHouseID {
		return apperrors.ErrNotFound
	}
	if account.IsCategory {
		return fmt.Errorf("%w: category account %s cannot hold a balance", apperrors.ErrValidation, account.Code)
	}

	if err := s.balanceRepo.UpsertBroughtDown(ctx, accountID, periodID, amount, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to upsert brought-down balance",
			slog.String("account_id", accountID),
			slog.String("period_id", periodID))
		return fmt.Errorf("failed to set brought-down for account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Brought-down balance set",
		slog.String("account_id", accountID),
		slog.String("period_id", periodID),
		slog.String("amount", amount.String()))
	return nil
}
