package services

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
)

// PettyCashSvcFacade manages petty cash users. Float movements go through
// the ledger service, never directly through this facade.
type PettyCashSvcFacade interface {
	// RegisterUser creates a petty cash user with a zero balance.
	RegisterUser(ctx context.Context, boardingHouseID string, req dto.CreatePettyCashUserRequest, userID string) (*domain.PettyCashUser, error)

	// GetUser retrieves a petty cash user scoped to a boarding house.
	GetUser(ctx context.Context, boardingHouseID string, pettyCashUserID string, userID string) (*domain.PettyCashUser, error)

	// ListUsers retrieves all petty cash users of a boarding house.
	ListUsers(ctx context.Context, boardingHouseID string, userID string) ([]domain.PettyCashUser, error)

	// UpdateUser updates profile fields, limit and status.
	UpdateUser(ctx context.Context, boardingHouseID string, pettyCashUserID string, req dto.UpdatePettyCashUserRequest, userID string) (*domain.PettyCashUser, error)

	// RemoveUser deletes a user without history, or deactivates one with
	// history instead of purging it.
	RemoveUser(ctx context.Context, boardingHouseID string, pettyCashUserID string, userID string) error
}
