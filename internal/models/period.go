package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period represents a monthly accounting period row.
type Period struct {
	PeriodID        string    `db:"period_id"`
	BoardingHouseID string    `db:"boarding_house_id"`
	Name            string    `db:"name"` // e.g. "2024-03"
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	IsClosed        bool      `db:"is_closed"`
	AuditFields
}

// AccountPeriodBalance represents one account's balance row within a period.
// TotalDebits/TotalCredits are aggregated from the ledger at read time and
// are not stored columns.
type AccountPeriodBalance struct {
	BalanceID   string           `db:"balance_id"`
	AccountID   string           `db:"account_id"`
	PeriodID    string           `db:"period_id"`
	BroughtDown decimal.Decimal  `db:"brought_down"`
	CarriedDown *decimal.Decimal `db:"carried_down"` // Nullable until the period closes
	AuditFields
}
