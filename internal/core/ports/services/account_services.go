package services

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account scoped to a boarding house.
	GetAccountByID(ctx context.Context, boardingHouseID string, accountID string) (*domain.Account, error)

	// ListAccountTree returns the boarding house's accounts as a
	// parent-indexed tree: categories carry their children.
	ListAccountTree(ctx context.Context, boardingHouseID string, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount creates an account with a generated ledger code.
	CreateAccount(ctx context.Context, boardingHouseID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount renames/re-parents an account. Type and boarding house
	// are immutable; re-parenting requires the account to have no postings.
	UpdateAccount(ctx context.Context, boardingHouseID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account with no postings and no children.
	DeleteAccount(ctx context.Context, boardingHouseID string, accountID string, userID string) error

	// GenerateStandardChartOfAccounts idempotently seeds the canonical
	// chart of accounts, returning the number of accounts created.
	GenerateStandardChartOfAccounts(ctx context.Context, boardingHouseID string, userID string) (int, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
