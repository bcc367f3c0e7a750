package models

import "github.com/shopspring/decimal"

// PettyCashUser represents a petty cash custodian row.
type PettyCashUser struct {
	PettyCashUserID string          `db:"petty_cash_user_id"`
	BoardingHouseID string          `db:"boarding_house_id"`
	Username        string          `db:"username"`
	FullName        string          `db:"full_name"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	MonthlyLimit    decimal.Decimal `db:"monthly_limit"`
	Status          string          `db:"status"`
	AuditFields
}
