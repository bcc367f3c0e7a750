package services

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
)

// LedgerReaderSvc defines read operations on the transaction ledger
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a ledger entry scoped to a boarding house.
	GetEntryByID(ctx context.Context, boardingHouseID string, entryID string, userID string) (*domain.LedgerEntry, error)

	// ListEntries lists entries of one kind with token pagination.
	ListEntries(ctx context.Context, boardingHouseID string, kind domain.EntryKind, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerWriterSvc defines posting operations against the ledger
type LedgerWriterSvc interface {
	// PostExpense records an expense debit against an expense account.
	PostExpense(ctx context.Context, boardingHouseID string, req dto.CreateExpenseRequest, userID string) (*domain.LedgerEntry, error)

	// PostPayment records a payment credit against a revenue account.
	PostPayment(ctx context.Context, boardingHouseID string, req dto.CreatePaymentRequest, userID string) (*domain.LedgerEntry, error)

	// PostPettyCashIssuance increases a petty cash user's float and
	// records the funding entry atomically.
	PostPettyCashIssuance(ctx context.Context, boardingHouseID string, pettyCashUserID string, req dto.PettyCashMovementRequest, userID string) (*domain.LedgerEntry, error)

	// PostPettyCashReduction decreases a petty cash user's float.
	PostPettyCashReduction(ctx context.Context, boardingHouseID string, pettyCashUserID string, req dto.PettyCashMovementRequest, userID string) (*domain.LedgerEntry, error)

	// UpdateEntry edits an entry whose owning period is still open.
	UpdateEntry(ctx context.Context, boardingHouseID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.LedgerEntry, error)

	// DeleteEntry removes an entry whose owning period is still open.
	DeleteEntry(ctx context.Context, boardingHouseID string, entryID string, userID string) error
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
