package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	"github.com/KudaNhari/boarding_house_mgmt/internal/models"
	"github.com/KudaNhari/boarding_house_mgmt/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, boarding_house_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

func toDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:        m.PeriodID,
		BoardingHouseID: m.BoardingHouseID,
		Name:            m.Name,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		IsClosed:        m.IsClosed,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanPeriod(row pgx.Row) (models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.BoardingHouseID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod persists a new period. The unique (boarding_house_id, name)
// constraint turns concurrent creations of the same month into ErrDuplicate.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.PeriodID,
		period.BoardingHouseID,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.IsClosed,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: period %s already exists", apperrors.ErrDuplicate, period.Name)
		}
		return fmt.Errorf("failed to save period %s: %w", period.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a specific period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	p := toDomainPeriod(m)
	return &p, nil
}

// FindPeriodByDate retrieves the period whose month contains the given date.
func (r *PgxPeriodRepository) FindPeriodByDate(ctx context.Context, boardingHouseID string, date time.Time) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE boarding_house_id = $1 AND start_date <= $2 AND end_date >= $2;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, boardingHouseID, date.UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period for date %s: %w", date.Format("2006-01-02"), err)
	}
	p := toDomainPeriod(m)
	return &p, nil
}

// FindNextPeriod retrieves the period immediately following the given one.
func (r *PgxPeriodRepository) FindNextPeriod(ctx context.Context, period domain.Period) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + ` FROM periods
		WHERE boarding_house_id = $1 AND start_date > $2
		ORDER BY start_date ASC
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, period.BoardingHouseID, period.EndDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period after %s: %w", period.Name, err)
	}
	p := toDomainPeriod(m)
	return &p, nil
}

// ListPeriods retrieves all periods for a boarding house ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, boardingHouseID string) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE boarding_house_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, boardingHouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.Period
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, toDomainPeriod(m))
	}
	return periods, rows.Err()
}

// periodActivity is one account's aggregated movement within a period,
// read under the close lock.
type periodActivity struct {
	AccountID    string
	AccountType  domain.AccountType
	BroughtDown  decimal.Decimal
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// ClosePeriod performs the atomic month-end close in one transaction:
// lock the period row, aggregate every account's activity, snapshot the
// calculated balance as carried-down, roll it forward as the following
// period's brought-down (creating that period if needed), and mark the
// period closed.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1 FOR UPDATE;`
	m, err := scanPeriod(tx.QueryRow(ctx, lockQuery, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}
	period := toDomainPeriod(m)
	if period.IsClosed {
		return fmt.Errorf("%w: period %s is already closed", apperrors.ErrConflict, period.Name)
	}

	activity, err := r.aggregateActivity(ctx, tx, period)
	if err != nil {
		return err
	}

	nextPeriodID, err := r.ensureNextPeriod(ctx, tx, period, userID, now)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	snapshotQuery := `
		INSERT INTO account_period_balances (balance_id, account_id, period_id, brought_down, carried_down, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $7)
		ON CONFLICT (account_id, period_id)
		DO UPDATE SET carried_down = EXCLUDED.carried_down, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	rolloverQuery := `
		INSERT INTO account_period_balances (balance_id, account_id, period_id, brought_down, carried_down, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULL, $5, $6, $5, $6)
		ON CONFLICT (account_id, period_id)
		DO UPDATE SET brought_down = EXCLUDED.brought_down, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	for _, act := range activity {
		carriedDown, err := accounting.CalculateBalance(act.AccountType, act.BroughtDown, act.TotalDebits, act.TotalCredits)
		if err != nil {
			return fmt.Errorf("failed to compute carried down for account %s: %w", act.AccountID, err)
		}
		batch.Queue(snapshotQuery, uuid.NewString(), act.AccountID, period.PeriodID, act.BroughtDown, carriedDown, now, userID)
		batch.Queue(rolloverQuery, uuid.NewString(), act.AccountID, nextPeriodID, carriedDown, now, userID)
	}
	batch.Queue(`UPDATE periods SET is_closed = TRUE, last_updated_at = $2, last_updated_by = $3 WHERE period_id = $1;`, period.PeriodID, now, userID)

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to close period %s: %w", period.Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close period %s: %w", period.Name, err)
	}

	return r.Commit(ctx, tx)
}

// aggregateActivity reads, inside the close transaction, every account of
// the boarding house that has ledger entries or a balance row in the period.
func (r *PgxPeriodRepository) aggregateActivity(ctx context.Context, tx pgx.Tx, period domain.Period) ([]periodActivity, error) {
	query := `
		SELECT a.account_id, a.account_type,
			COALESCE(b.brought_down, 0),
			COALESCE(SUM(e.amount) FILTER (WHERE e.side = 'DEBIT'), 0),
			COALESCE(SUM(e.amount) FILTER (WHERE e.side = 'CREDIT'), 0)
		FROM accounts a
		LEFT JOIN account_period_balances b ON b.account_id = a.account_id AND b.period_id = $1
		LEFT JOIN ledger_entries e ON e.account_id = a.account_id AND e.period_id = $1
		WHERE a.boarding_house_id = $2
			AND (b.balance_id IS NOT NULL OR e.entry_id IS NOT NULL)
		GROUP BY a.account_id, a.account_type, b.brought_down;
	`
	rows, err := tx.Query(ctx, query, period.PeriodID, period.BoardingHouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity for period %s: %w", period.Name, err)
	}
	defer rows.Close()

	var activity []periodActivity
	for rows.Next() {
		var act periodActivity
		if err := rows.Scan(&act.AccountID, &act.AccountType, &act.BroughtDown, &act.TotalDebits, &act.TotalCredits); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activity = append(activity, act)
	}
	return activity, rows.Err()
}

// ensureNextPeriod finds or creates the following calendar-month period
// inside the close transaction and returns its ID. The row is locked and
// must still be open: once a period is closed its brought-down rows are
// immutable, so an earlier period can no longer be closed into it.
func (r *PgxPeriodRepository) ensureNextPeriod(ctx context.Context, tx pgx.Tx, period domain.Period, userID string, now time.Time) (string, error) {
	nextStart := period.StartDate.AddDate(0, 1, 0)
	nextEnd := nextStart.AddDate(0, 1, -1)
	nextName := nextStart.Format("2006-01")

	insertQuery := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7, $6, $7)
		ON CONFLICT (boarding_house_id, name) DO NOTHING;
	`
	_, err := tx.Exec(ctx, insertQuery, uuid.NewString(), period.BoardingHouseID, nextName, nextStart, nextEnd, now, userID)
	if err != nil {
		return "", fmt.Errorf("failed to create period %s: %w", nextName, err)
	}

	var nextPeriodID string
	var nextClosed bool
	selectQuery := `SELECT period_id, is_closed FROM periods WHERE boarding_house_id = $1 AND name = $2 FOR UPDATE;`
	if err := tx.QueryRow(ctx, selectQuery, period.BoardingHouseID, nextName).Scan(&nextPeriodID, &nextClosed); err != nil {
		return "", fmt.Errorf("failed to find period %s: %w", nextName, err)
	}
	if nextClosed {
		return "", fmt.Errorf("%w: following period %s is already closed", apperrors.ErrConflict, nextName)
	}
	return nextPeriodID, nil
}
