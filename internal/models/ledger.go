package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry by business event.
type EntryKind string

const (
	KindExpense            EntryKind = "EXPENSE"
	KindPayment            EntryKind = "PAYMENT"
	KindPettyCashIssuance  EntryKind = "PETTY_CASH_ISSUANCE"
	KindPettyCashReduction EntryKind = "PETTY_CASH_REDUCTION"
)

// EntrySide is the debit/credit side of a ledger entry.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// LedgerEntry represents a single posted row in the transaction ledger.
type LedgerEntry struct {
	EntryID              string           `db:"entry_id"`
	BoardingHouseID      string           `db:"boarding_house_id"`
	Kind                 EntryKind        `db:"kind"`
	Side                 EntrySide        `db:"side"`
	AccountID            string           `db:"account_id"`
	PeriodID             string           `db:"period_id"`
	EntryDate            time.Time        `db:"entry_date"`
	Amount               decimal.Decimal  `db:"amount"`
	Description          string           `db:"description"`
	ReferenceNumber      string           `db:"reference_number"`
	PaymentMethod        string           `db:"payment_method"`
	PaymentStatus        string           `db:"payment_status"`
	PartialPaymentAmount decimal.Decimal  `db:"partial_payment_amount"`
	RemainingBalance     decimal.Decimal  `db:"remaining_balance"`
	DueDate              *time.Time       `db:"due_date"` // Nullable
	SupplierID           string           `db:"supplier_id"`
	SupplierName         string           `db:"supplier_name"`
	StudentID            string           `db:"student_id"`
	StudentName          string           `db:"student_name"`
	PettyCashUserID      string           `db:"petty_cash_user_id"` // Nullable
	AuditFields
}
