package dto

import (
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePettyCashUserRequest registers a new petty cash custodian.
type CreatePettyCashUserRequest struct {
	Username     string           `json:"username" binding:"required,min=3,max=100"`
	FullName     string           `json:"fullName" binding:"required,max=255"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
}

// UpdatePettyCashUserRequest amends a petty cash custodian's profile.
type UpdatePettyCashUserRequest struct {
	FullName     *string          `json:"fullName,omitempty" binding:"omitempty,max=255"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Status       *string          `json:"status,omitempty" binding:"omitempty,oneof=active inactive suspended"`
}

// PettyCashUserResponse defines the data returned for a petty cash custodian.
type PettyCashUserResponse struct {
	PettyCashUserID string                 `json:"pettyCashUserID"`
	BoardingHouseID string                 `json:"boardingHouseID"`
	Username        string                 `json:"username"`
	FullName        string                 `json:"fullName"`
	CurrentBalance  decimal.Decimal        `json:"currentBalance"`
	MonthlyLimit    decimal.Decimal        `json:"monthlyLimit"`
	Status          domain.PettyCashStatus `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ToPettyCashUserResponse converts a domain.PettyCashUser to a DTO.
func ToPettyCashUserResponse(u *domain.PettyCashUser) PettyCashUserResponse {
	return PettyCashUserResponse{
		PettyCashUserID: u.PettyCashUserID,
		BoardingHouseID: u.BoardingHouseID,
		Username:        u.Username,
		FullName:        u.FullName,
		CurrentBalance:  u.CurrentBalance,
		MonthlyLimit:    u.MonthlyLimit,
		Status:          u.Status,
		CreatedAt:       u.CreatedAt,
		LastUpdatedAt:   u.LastUpdatedAt,
	}
}

// ListPettyCashUsersResponse wraps the list of petty cash custodians.
type ListPettyCashUsersResponse struct {
	Users []PettyCashUserResponse `json:"users"`
}

// ToListPettyCashUsersResponse converts domain custodians to the response DTO.
func ToListPettyCashUsersResponse(users []domain.PettyCashUser) ListPettyCashUsersResponse {
	resp := ListPettyCashUsersResponse{Users: make([]PettyCashUserResponse, len(users))}
	for i := range users {
		resp.Users[i] = ToPettyCashUserResponse(&users[i])
	}
	return resp
}
