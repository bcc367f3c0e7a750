package dto

import (
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsCategory      bool               `json:"isCategory"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Account type and boarding house are immutable and deliberately absent.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ParentAccountID *string `json:"parentAccountID"` // Re-parent; only allowed without postings
	IsActive        *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	BoardingHouseID string             `json:"boardingHouseID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	IsCategory      bool               `json:"isCategory"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if root
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	Children        []AccountResponse  `json:"children,omitempty"`
}

// ToAccountResponse converts a domain.Account (including children) to a DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:       acc.AccountID,
		BoardingHouseID: acc.BoardingHouseID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		IsCategory:      acc.IsCategory,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
	for i := range acc.Children {
		resp.Children = append(resp.Children, ToAccountResponse(&acc.Children[i]))
	}
	return resp
}

// ListAccountsResponse wraps the account tree.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a tree of domain accounts to the response DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
