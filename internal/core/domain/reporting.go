package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// IncomeStatement is the revenue/expense/net-income report for a date
// range, for one boarding house or consolidated across all of them.
type IncomeStatement struct {
	BoardingHouseID string          `json:"boardingHouseID"` // Empty when consolidated
	Consolidated    bool            `json:"consolidated"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	Revenue         []AccountAmount `json:"revenue"`
	Expenses        []AccountAmount `json:"expenses"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	NetIncome       decimal.Decimal `json:"netIncome"` // TotalRevenue - TotalExpenses
}

// SavedStatement is an immutable persisted snapshot of a generated
// income statement. Loading one never triggers recomputation.
type SavedStatement struct {
	StatementID     string          `json:"statementID"` // Primary Key (UUID)
	BoardingHouseID string          `json:"boardingHouseID"`
	Name            string          `json:"name"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	Snapshot        IncomeStatement `json:"snapshot"`
	AuditFields
}

// CreditorStatus classifies a supplier's settlement state.
type CreditorStatus string

const (
	CreditorPaid    CreditorStatus = "paid"
	CreditorPartial CreditorStatus = "partial"
	CreditorDebt    CreditorStatus = "debt"
)

// Creditor aggregates a supplier's expense history into an accounts
// payable position.
type Creditor struct {
	SupplierID       string          `json:"supplierID"`
	SupplierName     string          `json:"supplierName"`
	TotalBilled      decimal.Decimal `json:"totalBilled"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	OutstandingDebt  decimal.Decimal `json:"outstandingDebt"`
	ExpenseCount     int             `json:"expenseCount"`
	LastExpenseDate  time.Time       `json:"lastExpenseDate"`
	Status           CreditorStatus  `json:"status"`
}

// CreditorsReport is the accounts payable report across suppliers.
type CreditorsReport struct {
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	CreditorCount    int             `json:"creditorCount"`
	Creditors        []Creditor      `json:"creditors"`
}

// PrepaymentClass buckets a student's credit position by size and recency.
type PrepaymentClass string

const (
	PrepaymentCurrent    PrepaymentClass = "current"
	PrepaymentHighCredit PrepaymentClass = "high_credit"
	PrepaymentInactive   PrepaymentClass = "inactive"
)

// StudentPrepayment aggregates a student's payment history into a
// receivable credit position (payments in excess of charges).
type StudentPrepayment struct {
	StudentID       string          `json:"studentID"`
	StudentName     string          `json:"studentName"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalCharged    decimal.Decimal `json:"totalCharged"`
	CreditBalance   decimal.Decimal `json:"creditBalance"` // TotalPaid - TotalCharged, > 0
	LastPaymentDate time.Time       `json:"lastPaymentDate"`
	Class           PrepaymentClass `json:"class"`
}

// PrepaymentsReport is the student credit/overpayment report.
type PrepaymentsReport struct {
	TotalCredit  decimal.Decimal     `json:"totalCredit"`
	StudentCount int                 `json:"studentCount"`
	Students     []StudentPrepayment `json:"students"`
}

// OverduePayment is one expected charge past its due date with an
// outstanding balance.
type OverduePayment struct {
	EntryID          string          `json:"entryID"`
	SupplierID       string          `json:"supplierID,omitempty"`
	SupplierName     string          `json:"supplierName,omitempty"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	DueDate          time.Time       `json:"dueDate"`
	DaysOverdue      int             `json:"daysOverdue"`
}

// ReportThresholds holds the tunable classification constants used by the
// AP/AR reports. Values come from configuration, not hard-coded magic.
type ReportThresholds struct {
	HighCreditThreshold decimal.Decimal
	InactiveAfterDays   int
}
