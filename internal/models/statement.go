package models

import "time"

// SavedStatement represents a stored income statement snapshot row. The
// statement body is persisted as a JSONB document.
type SavedStatement struct {
	StatementID     string    `db:"statement_id"`
	BoardingHouseID string    `db:"boarding_house_id"` // Empty when consolidated
	Name            string    `db:"name"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	Snapshot        []byte    `db:"snapshot"`
	AuditFields
}
