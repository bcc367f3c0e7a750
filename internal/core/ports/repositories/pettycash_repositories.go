package repositories

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// PettyCashReader defines read operations for petty cash users
type PettyCashReader interface {
	// FindPettyCashUserByID retrieves a specific petty cash user.
	FindPettyCashUserByID(ctx context.Context, pettyCashUserID string) (*domain.PettyCashUser, error)

	// ListPettyCashUsers retrieves all petty cash users for a boarding house.
	ListPettyCashUsers(ctx context.Context, boardingHouseID string) ([]domain.PettyCashUser, error)

	// HasPettyCashHistory reports whether any ledger entry references the user.
	HasPettyCashHistory(ctx context.Context, pettyCashUserID string) (bool, error)
}

// PettyCashWriter defines write operations for petty cash users
type PettyCashWriter interface {
	// SavePettyCashUser persists a new petty cash user.
	SavePettyCashUser(ctx context.Context, user domain.PettyCashUser) error

	// UpdatePettyCashUser updates profile fields and status. Balances are
	// never written through this method; they move only with issuance and
	// reduction ledger entries.
	UpdatePettyCashUser(ctx context.Context, user domain.PettyCashUser) error

	// DeletePettyCashUser removes a user without transaction history.
	DeletePettyCashUser(ctx context.Context, pettyCashUserID string) error
}

// PettyCashRepositoryFacade combines petty cash repository interfaces
type PettyCashRepositoryFacade interface {
	PettyCashReader
	PettyCashWriter
}
