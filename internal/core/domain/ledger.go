package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies the kind of event a ledger entry records.
type EntryKind string

const (
	KindExpense            EntryKind = "EXPENSE"
	KindPayment            EntryKind = "PAYMENT"
	KindPettyCashIssuance  EntryKind = "PETTY_CASH_ISSUANCE"
	KindPettyCashReduction EntryKind = "PETTY_CASH_REDUCTION"
)

// EntrySide indicates whether a ledger entry debits or credits its account.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Side returns the ledger side an entry of this kind posts to its account.
// Expenses and petty cash issuances debit; payments and reductions credit.
func (k EntryKind) Side() EntrySide {
	switch k {
	case KindExpense, KindPettyCashIssuance:
		return Debit
	default:
		return Credit
	}
}

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case KindExpense, KindPayment, KindPettyCashIssuance, KindPettyCashReduction:
		return true
	}
	return false
}

// PaymentMethod is the closed set of settlement methods a posting may carry.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodPettyCash    PaymentMethod = "petty_cash"
	MethodCredit       PaymentMethod = "credit"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck, MethodPettyCash, MethodCredit:
		return true
	}
	return false
}

// PaymentStatus tracks settlement progress of an expense.
type PaymentStatus string

const (
	StatusFull    PaymentStatus = "full"
	StatusPartial PaymentStatus = "partial"
	StatusUnpaid  PaymentStatus = "unpaid"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusFull, StatusPartial, StatusUnpaid:
		return true
	}
	return false
}

// LedgerEntry is an append-only posting against one account within one
// open period. Entries in a closed period are frozen.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	BoardingHouseID string          `json:"boardingHouseID"`
	Kind            EntryKind       `json:"kind"`
	Side            EntrySide       `json:"side"` // Derived from Kind at posting time
	AccountID       string          `json:"accountID"`
	PeriodID        string          `json:"periodID"` // Resolved from EntryDate
	EntryDate       time.Time       `json:"entryDate"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`

	// Expense settlement tracking. RemainingBalance = Amount - PartialPaymentAmount.
	PaymentStatus        PaymentStatus   `json:"paymentStatus,omitempty"`
	PartialPaymentAmount decimal.Decimal `json:"partialPaymentAmount"`
	RemainingBalance     decimal.Decimal `json:"remainingBalance"`
	DueDate              *time.Time      `json:"dueDate,omitempty"`

	// Counterparty identity; free-form, reports group by these.
	SupplierID   string `json:"supplierID,omitempty"`
	SupplierName string `json:"supplierName,omitempty"`
	StudentID    string `json:"studentID,omitempty"`
	StudentName  string `json:"studentName,omitempty"`

	// Set for petty cash issuance/reduction entries.
	PettyCashUserID string `json:"pettyCashUserID,omitempty"`

	AuditFields
}
