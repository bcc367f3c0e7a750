package domain

import "github.com/shopspring/decimal"

// PettyCashStatus is the lifecycle state of a petty cash user.
type PettyCashStatus string

const (
	PettyCashActive    PettyCashStatus = "active"
	PettyCashInactive  PettyCashStatus = "inactive"
	PettyCashSuspended PettyCashStatus = "suspended"
)

// Valid reports whether s is a known petty cash user status.
func (s PettyCashStatus) Valid() bool {
	switch s {
	case PettyCashActive, PettyCashInactive, PettyCashSuspended:
		return true
	}
	return false
}

// PettyCashUser is an actor holding a cash float for a boarding house.
// CurrentBalance changes only through issuance/reduction ledger entries
// tied to this user, applied in the same database transaction.
type PettyCashUser struct {
	PettyCashUserID string          `json:"pettyCashUserID"` // Primary Key (UUID)
	BoardingHouseID string          `json:"boardingHouseID"`
	Username        string          `json:"username"`
	FullName        string          `json:"fullName"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	MonthlyLimit    decimal.Decimal `json:"monthlyLimit"`
	Status          PettyCashStatus `json:"status"`
	AuditFields
}
