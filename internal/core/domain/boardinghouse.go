package domain

import "time"

// BoardingHouse is the tenancy boundary: accounts, periods and ledger
// entries are always scoped to exactly one boarding house.
type BoardingHouse struct {
	BoardingHouseID string `json:"boardingHouseID"` // Primary Key (UUID)
	Name            string `json:"name"`
	Address         string `json:"address"`
	IsActive        bool   `json:"isActive"`
	AuditFields
}

// UserBoardingHouseRole defines the possible roles a user can have within a boarding house.
type UserBoardingHouseRole string

const (
	RoleAdmin    UserBoardingHouseRole = "ADMIN"
	RoleMember   UserBoardingHouseRole = "MEMBER"
	RoleReadOnly UserBoardingHouseRole = "READONLY"
	RoleRemoved  UserBoardingHouseRole = "REMOVED"
)

// Satisfies reports whether this role meets or exceeds the required role.
func (r UserBoardingHouseRole) Satisfies(required UserBoardingHouseRole) bool {
	rank := map[UserBoardingHouseRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	return rank[r] >= rank[required] && rank[r] > 0
}

// UserBoardingHouse represents the membership of a User in a BoardingHouse.
type UserBoardingHouse struct {
	UserID          string                `json:"userID"`
	UserName        string                `json:"userName"`
	BoardingHouseID string                `json:"boardingHouseID"`
	Role            UserBoardingHouseRole `json:"role"`
	JoinedAt        time.Time             `json:"joinedAt"`
}
