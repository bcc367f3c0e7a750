package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a repository for report aggregation
// queries. An empty boardingHouseID consolidates across all tenants.
func newPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetIncomeStatementData sums revenue and expense postings grouped by
// account over the date range. Revenue accounts net credits minus debits,
// expense accounts net debits minus credits, so both report positive
// amounts in the normal case.
func (r *PgxReportingRepository) GetIncomeStatementData(ctx context.Context, boardingHouseID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	revenue, err := r.sumByAccountType(ctx, boardingHouseID, domain.Revenue, from, to)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := r.sumByAccountType(ctx, boardingHouseID, domain.Expense, from, to)
	if err != nil {
		return nil, nil, err
	}
	return revenue, expenses, nil
}

func (r *PgxReportingRepository) sumByAccountType(ctx context.Context, boardingHouseID string, accountType domain.AccountType, from, to time.Time) ([]domain.AccountAmount, error) {
	// Positive side depends on the account type's normal balance.
	positiveSide := "CREDIT"
	if accountType.DebitNormal() {
		positiveSide = "DEBIT"
	}

	query := `
		SELECT a.account_id, a.code, a.name,
			COALESCE(SUM(CASE WHEN e.side = $1 THEN e.amount ELSE -e.amount END), 0) AS net_amount
		FROM ledger_entries e
		JOIN accounts a ON a.account_id = e.account_id
		WHERE a.account_type = $2 AND e.entry_date >= $3 AND e.entry_date <= $4
	`
	args := []interface{}{positiveSide, string(accountType), from, to}
	if boardingHouseID != "" {
		args = append(args, boardingHouseID)
		query += fmt.Sprintf(" AND e.boarding_house_id = $%d", len(args))
	}
	query += `
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum %s postings: %w", accountType, err)
	}
	defer rows.Close()

	var amounts []domain.AccountAmount
	for rows.Next() {
		var aa domain.AccountAmount
		if err := rows.Scan(&aa.AccountID, &aa.AccountCode, &aa.Name, &aa.NetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", accountType, err)
		}
		amounts = append(amounts, aa)
	}
	return amounts, rows.Err()
}

// GetCreditorsData aggregates expense entries per supplier. Suppliers are
// keyed by ID when present, falling back to name for free-form entries.
func (r *PgxReportingRepository) GetCreditorsData(ctx context.Context, boardingHouseID string) ([]domain.Creditor, error) {
	query := `
		SELECT COALESCE(NULLIF(supplier_id, ''), supplier_name) AS supplier_key,
			MAX(supplier_id),
			MAX(supplier_name),
			COALESCE(SUM(amount), 0) AS total_billed,
			COALESCE(SUM(CASE payment_status
				WHEN 'full' THEN amount
				WHEN 'partial' THEN partial_payment_amount
				ELSE 0 END), 0) AS total_paid,
			COALESCE(SUM(remaining_balance), 0) AS outstanding_debt,
			COUNT(*) AS expense_count,
			MAX(entry_date) AS last_expense_date
		FROM ledger_entries
		WHERE kind = 'EXPENSE' AND supplier_name <> ''
	`
	args := []interface{}{}
	if boardingHouseID != "" {
		args = append(args, boardingHouseID)
		query += fmt.Sprintf(" AND boarding_house_id = $%d", len(args))
	}
	query += `
		GROUP BY COALESCE(NULLIF(supplier_id, ''), supplier_name)
		ORDER BY outstanding_debt DESC, supplier_key;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate creditors: %w", err)
	}
	defer rows.Close()

	var creditors []domain.Creditor
	for rows.Next() {
		var c domain.Creditor
		var supplierKey string
		err := rows.Scan(
			&supplierKey,
			&c.SupplierID,
			&c.SupplierName,
			&c.TotalBilled,
			&c.TotalPaid,
			&c.OutstandingDebt,
			&c.ExpenseCount,
			&c.LastExpenseDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creditor row: %w", err)
		}
		creditors = append(creditors, c)
	}
	return creditors, rows.Err()
}

// GetPrepaymentsData aggregates payment history per student. The charged
// portion of each payment is stored alongside the amount at posting time,
// so the student's credit is the sum of amounts minus the sum of charges.
func (r *PgxReportingRepository) GetPrepaymentsData(ctx context.Context, boardingHouseID string) ([]domain.StudentPrepayment, error) {
	query := `
		SELECT COALESCE(NULLIF(student_id, ''), student_name) AS student_key,
			MAX(student_id),
			MAX(student_name),
			COALESCE(SUM(amount), 0) AS total_paid,
			COALESCE(SUM(partial_payment_amount), 0) AS total_charged,
			MAX(entry_date) AS last_payment_date
		FROM ledger_entries
		WHERE kind = 'PAYMENT' AND student_name <> ''
	`
	args := []interface{}{}
	if boardingHouseID != "" {
		args = append(args, boardingHouseID)
		query += fmt.Sprintf(" AND boarding_house_id = $%d", len(args))
	}
	query += `
		GROUP BY COALESCE(NULLIF(student_id, ''), student_name)
		ORDER BY student_key;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate prepayments: %w", err)
	}
	defer rows.Close()

	var students []domain.StudentPrepayment
	for rows.Next() {
		var sp domain.StudentPrepayment
		var studentKey string
		err := rows.Scan(
			&studentKey,
			&sp.StudentID,
			&sp.StudentName,
			&sp.TotalPaid,
			&sp.TotalCharged,
			&sp.LastPaymentDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prepayment row: %w", err)
		}
		sp.CreditBalance = sp.TotalPaid.Sub(sp.TotalCharged)
		students = append(students, sp)
	}
	return students, rows.Err()
}

// GetOverdueData lists expense entries past their due date that still
// carry an outstanding balance as of the given time.
func (r *PgxReportingRepository) GetOverdueData(ctx context.Context, boardingHouseID string, asOf time.Time) ([]domain.OverduePayment, error) {
	query := `
		SELECT entry_id, supplier_id, supplier_name, description, amount, remaining_balance, due_date
		FROM ledger_entries
		WHERE kind = 'EXPENSE' AND due_date IS NOT NULL AND due_date < $1 AND remaining_balance > 0
	`
	args := []interface{}{asOf}
	if boardingHouseID != "" {
		args = append(args, boardingHouseID)
		query += fmt.Sprintf(" AND boarding_house_id = $%d", len(args))
	}
	query += ` ORDER BY due_date;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue entries: %w", err)
	}
	defer rows.Close()

	var overdue []domain.OverduePayment
	for rows.Next() {
		var op domain.OverduePayment
		err := rows.Scan(
			&op.EntryID,
			&op.SupplierID,
			&op.SupplierName,
			&op.Description,
			&op.Amount,
			&op.RemainingBalance,
			&op.DueDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overdue row: %w", err)
		}
		overdue = append(overdue, op)
	}
	return overdue, rows.Err()
}
