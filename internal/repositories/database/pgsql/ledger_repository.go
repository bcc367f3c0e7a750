package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	"github.com/KudaNhari/boarding_house_mgmt/internal/models"
	"github.com/KudaNhari/boarding_house_mgmt/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `entry_id, boarding_house_id, kind, side, account_id, period_id, entry_date, amount, description, reference_number, payment_method, payment_status, partial_payment_amount, remaining_balance, due_date, supplier_id, supplier_name, student_id, student_name, petty_cash_user_id, created_at, created_by, last_updated_at, last_updated_by`

func toModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:              d.EntryID,
		BoardingHouseID:      d.BoardingHouseID,
		Kind:                 models.EntryKind(d.Kind),
		Side:                 models.EntrySide(d.Side),
		AccountID:            d.AccountID,
		PeriodID:             d.PeriodID,
		EntryDate:            d.EntryDate,
		Amount:               d.Amount,
		Description:          d.Description,
		ReferenceNumber:      d.ReferenceNumber,
		PaymentMethod:        string(d.PaymentMethod),
		PaymentStatus:        string(d.PaymentStatus),
		PartialPaymentAmount: d.PartialPaymentAmount,
		RemainingBalance:     d.RemainingBalance,
		DueDate:              d.DueDate,
		SupplierID:           d.SupplierID,
		SupplierName:         d.SupplierName,
		StudentID:            d.StudentID,
		StudentName:          d.StudentName,
		PettyCashUserID:      d.PettyCashUserID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:              m.EntryID,
		BoardingHouseID:      m.BoardingHouseID,
		Kind:                 domain.EntryKind(m.Kind),
		Side:                 domain.EntrySide(m.Side),
		AccountID:            m.AccountID,
		PeriodID:             m.PeriodID,
		EntryDate:            m.EntryDate,
		Amount:               m.Amount,
		Description:          m.Description,
		ReferenceNumber:      m.ReferenceNumber,
		PaymentMethod:        domain.PaymentMethod(m.PaymentMethod),
		PaymentStatus:        domain.PaymentStatus(m.PaymentStatus),
		PartialPaymentAmount: m.PartialPaymentAmount,
		RemainingBalance:     m.RemainingBalance,
		DueDate:              m.DueDate,
		SupplierID:           m.SupplierID,
		SupplierName:         m.SupplierName,
		StudentID:            m.StudentID,
		StudentName:          m.StudentName,
		PettyCashUserID:      m.PettyCashUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var dueDate sql.NullTime
	var pettyCashUserID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.BoardingHouseID,
		&m.Kind,
		&m.Side,
		&m.AccountID,
		&m.PeriodID,
		&m.EntryDate,
		&m.Amount,
		&m.Description,
		&m.ReferenceNumber,
		&m.PaymentMethod,
		&m.PaymentStatus,
		&m.PartialPaymentAmount,
		&m.RemainingBalance,
		&dueDate,
		&m.SupplierID,
		&m.SupplierName,
		&m.StudentID,
		&m.StudentName,
		&pettyCashUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		m.DueDate = &d
	}
	m.PettyCashUserID = pettyCashUserID.String
	return m, nil
}

// insertEntry writes one ledger entry row inside the given transaction.
func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := toModelLedgerEntry(entry)

	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	var dueDate sql.NullTime
	if m.DueDate != nil {
		dueDate = sql.NullTime{Time: *m.DueDate, Valid: true}
	}
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.BoardingHouseID,
		m.Kind,
		m.Side,
		m.AccountID,
		m.PeriodID,
		m.EntryDate,
		m.Amount,
		m.Description,
		m.ReferenceNumber,
		m.PaymentMethod,
		m.PaymentStatus,
		m.PartialPaymentAmount,
		m.RemainingBalance,
		dueDate,
		m.SupplierID,
		m.SupplierName,
		m.StudentID,
		m.StudentName,
		nullableID(m.PettyCashUserID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// ensureBalanceRow lazily creates the account/period balance row for a
// posting. The brought-down amount defaults to the account's carried-down
// from the most recent earlier period, or zero when no close has happened.
func ensureBalanceRow(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	query := `
		INSERT INTO account_period_balances (balance_id, account_id, period_id, brought_down, created_at, created_by, last_updated_at, last_updated_by)
		SELECT $1, $2, $3,
			COALESCE((
				SELECT pb.carried_down
				FROM account_period_balances pb
				JOIN periods prev ON prev.period_id = pb.period_id
				JOIN periods cur ON cur.period_id = $3
				WHERE pb.account_id = $2
					AND prev.boarding_house_id = cur.boarding_house_id
					AND prev.end_date < cur.start_date
					AND pb.carried_down IS NOT NULL
				ORDER BY prev.end_date DESC
				LIMIT 1
			), 0),
			$4, $5, $4, $5
		ON CONFLICT (account_id, period_id) DO NOTHING;
	`
	_, err := tx.Exec(ctx, query, uuid.NewString(), entry.AccountID, entry.PeriodID, entry.CreatedAt, entry.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to ensure balance row for account %s: %w", entry.AccountID, err)
	}
	return nil
}

// SaveEntry inserts a ledger entry and its account's balance row for the
// period in one transaction.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := ensureBalanceRow(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SavePettyCashEntry inserts an issuance/reduction entry and moves the
// petty cash user's float by balanceDelta in the same transaction. The
// guard in the UPDATE keeps the float from ever going negative even under
// concurrent movements.
func (r *PgxLedgerRepository) SavePettyCashEntry(ctx context.Context, entry domain.LedgerEntry, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := ensureBalanceRow(ctx, tx, entry); err != nil {
		return err
	}
	if err := applyFloatDelta(ctx, tx, entry.PettyCashUserID, balanceDelta, entry.LastUpdatedAt, entry.LastUpdatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// applyFloatDelta adjusts a petty cash user's current balance inside a
// transaction, refusing any adjustment that would make it negative.
func applyFloatDelta(ctx context.Context, tx pgx.Tx, pettyCashUserID string, delta decimal.Decimal, now time.Time, userID string) error {
	query := `
		UPDATE petty_cash_users
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE petty_cash_user_id = $1 AND current_balance + $2 >= 0;
	`
	tag, err := tx.Exec(ctx, query, pettyCashUserID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust petty cash float for user %s: %w", pettyCashUserID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: petty cash float for user %s cannot go negative", apperrors.ErrConflict, pettyCashUserID)
	}
	return nil
}

// FindEntryByID retrieves a specific ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	entry := toDomainLedgerEntry(m)
	return &entry, nil
}

// ListEntries retrieves ledger entries for a boarding house newest first,
// optionally filtered by kind, using token pagination. One extra row is
// fetched to decide whether a next token is needed.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, boardingHouseID string, kind domain.EntryKind, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	fetchLimit := limit + 1

	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE boarding_house_id = $1`
	args := []interface{}{boardingHouseID}

	if kind != "" {
		args = append(args, string(kind))
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, entryDate, createdAt)
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(entries) == fetchLimit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}

// UpdateEntry rewrites an entry's mutable fields. Amount, account, kind and
// period are immutable once posted.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := toModelLedgerEntry(entry)

	query := `
		UPDATE ledger_entries
		SET description = $2, reference_number = $3, payment_status = $4, partial_payment_amount = $5, remaining_balance = $6, due_date = $7, supplier_name = $8, student_name = $9, last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1;
	`
	var dueDate sql.NullTime
	if m.DueDate != nil {
		dueDate = sql.NullTime{Time: *m.DueDate, Valid: true}
	}
	tag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.Description,
		m.ReferenceNumber,
		m.PaymentStatus,
		m.PartialPaymentAmount,
		m.RemainingBalance,
		dueDate,
		m.SupplierName,
		m.StudentName,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry. A petty cash entry's float movement is
// reversed on the user in the same transaction.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT kind, amount, petty_cash_user_id, last_updated_by FROM ledger_entries WHERE entry_id = $1 FOR UPDATE;`
	var kind string
	var amount decimal.Decimal
	var pettyCashUserID sql.NullString
	var lastUpdatedBy string
	err = tx.QueryRow(ctx, lockQuery, entryID).Scan(&kind, &amount, &pettyCashUserID, &lastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock ledger entry %s: %w", entryID, err)
	}

	if pettyCashUserID.Valid && pettyCashUserID.String != "" {
		// Issuance raised the float, so deleting it lowers the float back,
		// and the other way round for a reduction.
		reversal := amount
		if domain.EntryKind(kind) == domain.KindPettyCashIssuance {
			reversal = amount.Neg()
		}
		if err := applyFloatDelta(ctx, tx, pettyCashUserID.String, reversal, time.Now(), lastUpdatedBy); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
