package repositories

import (
	"context"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// AccountReader defines read operations for chart of accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its ledger code within a boarding house.
	FindAccountByCode(ctx context.Context, boardingHouseID string, code string) (*domain.Account, error)

	// ListAccounts retrieves all active accounts for a boarding house, ordered by code.
	ListAccounts(ctx context.Context, boardingHouseID string) ([]domain.Account, error)

	// ListAllAccounts retrieves every account for a boarding house,
	// active or not, ordered by code. Used where deactivated accounts
	// still matter, such as the standard chart seeding skip-check.
	ListAllAccounts(ctx context.Context, boardingHouseID string) ([]domain.Account, error)

	// ListSiblingCodes returns the codes of existing root accounts of the
	// given type (parentAccountID empty) or of the children of a parent
	// account (parentAccountID set), used for code generation.
	ListSiblingCodes(ctx context.Context, boardingHouseID string, accountType domain.AccountType, parentAccountID string) ([]string, error)

	// HasPostings reports whether any ledger entry references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)

	// HasChildren reports whether any account references this one as parent.
	HasChildren(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart of accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists a batch of accounts atomically (standard COA seeding).
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Callers must first verify it has
	// neither postings nor children.
	DeleteAccount(ctx context.Context, accountID string) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
