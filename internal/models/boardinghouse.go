package models

import "time"

// BoardingHouse represents a boarding house row.
type BoardingHouse struct {
	BoardingHouseID string `db:"boarding_house_id"`
	Name            string `db:"name"`
	Address         string `db:"address"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}

// UserBoardingHouse represents a user's membership row in a boarding house.
type UserBoardingHouse struct {
	UserID          string    `db:"user_id"`
	BoardingHouseID string    `db:"boarding_house_id"`
	Role            string    `db:"role"`
	JoinedAt        time.Time `db:"joined_at"`
}
