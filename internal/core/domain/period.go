package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is one calendar month of accounting activity for a boarding house.
// Periods move through a single irreversible transition: open -> closed.
type Period struct {
	PeriodID        string    `json:"periodID"`        // Primary Key (UUID)
	BoardingHouseID string    `json:"boardingHouseID"` // FK -> boarding_houses
	Name            string    `json:"name"`            // e.g. "2024-03"
	StartDate       time.Time `json:"startDate"`       // First day of the month (UTC midnight)
	EndDate         time.Time `json:"endDate"`         // Last day of the month (UTC midnight)
	IsClosed        bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether d falls within the period's calendar month.
func (p Period) Contains(d time.Time) bool {
	d = d.UTC()
	return !d.Before(p.StartDate) && d.Before(p.EndDate.AddDate(0, 0, 1))
}

// AccountPeriodBalance is the balance record for one account within one
// period. TotalDebits and TotalCredits are always derived from a live
// aggregation over ledger entries, never maintained as counters.
type AccountPeriodBalance struct {
	BalanceID    string           `json:"balanceID"` // Primary Key (UUID)
	AccountID    string           `json:"accountID"`
	PeriodID     string           `json:"periodID"`
	BroughtDown  decimal.Decimal  `json:"broughtDown"`  // Opening balance (prior period's CD, or 0)
	TotalDebits  decimal.Decimal  `json:"totalDebits"`  // Derived
	TotalCredits decimal.Decimal  `json:"totalCredits"` // Derived
	CarriedDown  *decimal.Decimal `json:"carriedDown"`  // Set once at period close, nil while open
	AuditFields

	// CalculatedBalance applies the account type's sign convention; it is
	// computed at read time and never persisted.
	CalculatedBalance decimal.Decimal `json:"calculatedBalance"`

	// Denormalised account fields for report rows.
	AccountCode string      `json:"accountCode,omitempty"`
	AccountName string      `json:"accountName,omitempty"`
	AccountType AccountType `json:"accountType,omitempty"`
}
