package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for account period balances.
func newPgxBalanceRepository(pool *pgxpool.Pool) *PgxBalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// GetPeriodBalances returns one row per account with ledger activity or an
// explicit balance row in the period. Debit and credit totals come from a
// live SUM over ledger entries, never from stored counters, so concurrent
// postings cannot produce a lost update.
func (r *PgxBalanceRepository) GetPeriodBalances(ctx context.Context, boardingHouseID string, periodID string) ([]domain.AccountPeriodBalance, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
			COALESCE(b.balance_id, ''),
			COALESCE(b.brought_down, 0),
			b.carried_down,
			COALESCE(SUM(e.amount) FILTER (WHERE e.side = 'DEBIT'), 0) AS total_debits,
			COALESCE(SUM(e.amount) FILTER (WHERE e.side = 'CREDIT'), 0) AS total_credits
		FROM accounts a
		LEFT JOIN account_period_balances b ON b.account_id = a.account_id AND b.period_id = $2
		LEFT JOIN ledger_entries e ON e.account_id = a.account_id AND e.period_id = $2
		WHERE a.boarding_house_id = $1
			AND (b.balance_id IS NOT NULL OR e.entry_id IS NOT NULL)
		GROUP BY a.account_id, a.code, a.name, a.account_type, b.balance_id, b.brought_down, b.carried_down
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, boardingHouseID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances for period %s: %w", periodID, err)
	}
	defer rows.Close()

	var balances []domain.AccountPeriodBalance
	for rows.Next() {
		var bal domain.AccountPeriodBalance
		var carriedDown decimal.NullDecimal
		err := rows.Scan(
			&bal.AccountID,
			&bal.AccountCode,
			&bal.AccountName,
			&bal.AccountType,
			&bal.BalanceID,
			&bal.BroughtDown,
			&carriedDown,
			&bal.TotalDebits,
			&bal.TotalCredits,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		bal.PeriodID = periodID
		if carriedDown.Valid {
			cd := carriedDown.Decimal
			bal.CarriedDown = &cd
		}
		balances = append(balances, bal)
	}
	return balances, rows.Err()
}

// FindBalanceRow retrieves the persisted balance row for one account/period pair.
func (r *PgxBalanceRepository) FindBalanceRow(ctx context.Context, accountID string, periodID string) (*domain.AccountPeriodBalance, error) {
	query := `
		SELECT balance_id, account_id, period_id, brought_down, carried_down, created_at, created_by, last_updated_at, last_updated_by
		FROM account_period_balances
		WHERE account_id = $1 AND period_id = $2;
	`
	var bal domain.AccountPeriodBalance
	var carriedDown decimal.NullDecimal
	err := r.Pool.QueryRow(ctx, query, accountID, periodID).Scan(
		&bal.BalanceID,
		&bal.AccountID,
		&bal.PeriodID,
		&bal.BroughtDown,
		&carriedDown,
		&bal.CreatedAt,
		&bal.CreatedBy,
		&bal.LastUpdatedAt,
		&bal.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance row for account %s: %w", accountID, err)
	}
	if carriedDown.Valid {
		cd := carriedDown.Decimal
		bal.CarriedDown = &cd
	}
	return &bal, nil
}

// UpsertBroughtDown sets the brought-down amount on an account/period
// balance row, creating the row when absent.
func (r *PgxBalanceRepository) UpsertBroughtDown(ctx context.Context, accountID string, periodID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		INSERT INTO account_period_balances (balance_id, account_id, period_id, brought_down, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $5, $6)
		ON CONFLICT (account_id, period_id)
		DO UPDATE SET brought_down = EXCLUDED.brought_down, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, uuid.NewString(), accountID, periodID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to upsert brought down for account %s: %w", accountID, err)
	}
	return nil
}
