package dto

import (
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// CreateBoardingHouseRequest defines data for registering a new boarding house.
type CreateBoardingHouseRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// UpdateBoardingHouseRequest amends a boarding house's profile.
type UpdateBoardingHouseRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Address  *string `json:"address,omitempty" binding:"omitempty,max=500"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// BoardingHouseResponse defines data returned for a boarding house.
type BoardingHouseResponse struct {
	BoardingHouseID string    `json:"boardingHouseID"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"` // UserID
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy   string    `json:"lastUpdatedBy"` // UserID
}

// ToBoardingHouseResponse converts domain.BoardingHouse to DTO.
func ToBoardingHouseResponse(bh *domain.BoardingHouse) BoardingHouseResponse {
	return BoardingHouseResponse{
		BoardingHouseID: bh.BoardingHouseID,
		Name:            bh.Name,
		Address:         bh.Address,
		IsActive:        bh.IsActive,
		CreatedAt:       bh.CreatedAt,
		CreatedBy:       bh.CreatedBy,
		LastUpdatedAt:   bh.LastUpdatedAt,
		LastUpdatedBy:   bh.LastUpdatedBy,
	}
}

// ListBoardingHousesResponse wraps a list of boarding houses.
type ListBoardingHousesResponse struct {
	BoardingHouses []BoardingHouseResponse `json:"boardingHouses"`
}

// ToListBoardingHousesResponse converts a slice of domain.BoardingHouse to DTO.
func ToListBoardingHousesResponse(bhs []domain.BoardingHouse) ListBoardingHousesResponse {
	list := make([]BoardingHouseResponse, len(bhs))
	for i := range bhs {
		list[i] = ToBoardingHouseResponse(&bhs[i])
	}
	return ListBoardingHousesResponse{BoardingHouses: list}
}

// AddUserToBoardingHouseRequest defines data for granting a user membership.
type AddUserToBoardingHouseRequest struct {
	UserID string                       `json:"userID" binding:"required"`
	Role   domain.UserBoardingHouseRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UserBoardingHouseResponse defines data returned about a user's membership.
type UserBoardingHouseResponse struct {
	UserID          string                       `json:"userID"`
	UserName        string                       `json:"userName,omitempty"`
	BoardingHouseID string                       `json:"boardingHouseID"`
	Role            domain.UserBoardingHouseRole `json:"role"`
	JoinedAt        time.Time                    `json:"joinedAt"`
}

// ToUserBoardingHouseResponse converts domain.UserBoardingHouse to DTO.
func ToUserBoardingHouseResponse(m *domain.UserBoardingHouse) UserBoardingHouseResponse {
	return UserBoardingHouseResponse{
		UserID:          m.UserID,
		UserName:        m.UserName,
		BoardingHouseID: m.BoardingHouseID,
		Role:            m.Role,
		JoinedAt:        m.JoinedAt,
	}
}

// ListBoardingHouseUsersResponse wraps the memberships of a boarding house.
type ListBoardingHouseUsersResponse struct {
	Users []UserBoardingHouseResponse `json:"users"`
}

// ToListBoardingHouseUsersResponse converts memberships to the response DTO.
func ToListBoardingHouseUsersResponse(ms []domain.UserBoardingHouse) ListBoardingHouseUsersResponse {
	list := make([]UserBoardingHouseResponse, len(ms))
	for i := range ms {
		list[i] = ToUserBoardingHouseResponse(&ms[i])
	}
	return ListBoardingHouseUsersResponse{Users: list}
}
