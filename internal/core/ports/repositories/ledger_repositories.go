package repositories

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves entries of a kind for a boarding house with
	// token pagination, newest first. An empty nextToken starts at the top.
	ListEntries(ctx context.Context, boardingHouseID string, kind domain.EntryKind, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// SaveEntry inserts a ledger entry and lazily creates the balance row
	// for its account/period (brought-down defaulted from the prior
	// period's carried-down) in one database transaction.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// SavePettyCashEntry inserts an issuance/reduction entry and applies
	// balanceDelta to the petty cash user's current balance in the same
	// database transaction.
	SavePettyCashEntry(ctx context.Context, entry domain.LedgerEntry, balanceDelta decimal.Decimal) error

	// UpdateEntry rewrites an entry's mutable fields.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteEntry removes an entry. For petty cash entries the user's
	// balance is adjusted back in the same transaction.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
