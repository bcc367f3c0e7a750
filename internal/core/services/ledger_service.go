package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultEntryPageSize = 20

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	pettyCashRepo portsrepo.PettyCashRepositoryFacade
	periodSvc     portssvc.PeriodSvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	pettyCashRepo portsrepo.PettyCashRepositoryFacade,
	periodSvc portssvc.PeriodSvcFacade,
	authorizer portssvc.BoardingHouseAuthorizerSvc,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:   BaseService{Authorizer: authorizer},
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
		pettyCashRepo: pettyCashRepo,
		periodSvc:     periodSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func parseEntryDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, value)
	}
	return d.UTC(), nil
}

// resolvePostingTarget validates the account and resolves the open period
// an entry dated entryDate belongs to. Postings are rejected when the
// account is a category, inactive, of the wrong type, or when the owning
// period has been closed.
func (s *ledgerService) resolvePostingTarget(ctx context.Context, boardingHouseID, accountID string, wantType domain.AccountType, entryDate time.Time, userID string) (*domain.Account, *domain.Period, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for posting",
				slog.String("account_id", accountID))
		}
		return nil, nil, err
	}
	if account.BoardingHouseID != boardingHouseID {
		return nil, nil, apperrors.ErrNotFound
	}
	if account.IsCategory {
		return nil, nil, fmt.Errorf("%w: account %s is a category and cannot receive postings", apperrors.ErrValidation, account.Code)
	}
	if !account.IsActive {
		return nil, nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
	}
	if account.AccountType != wantType {
		return nil, nil, fmt.Errorf("%w: account %s is %s, expected %s", apperrors.ErrValidation, account.Code, account.AccountType, wantType)
	}

	period, err := s.periodSvc.GetOrCreatePeriod(ctx, boardingHouseID, entryDate, userID)
	if err != nil {
		return nil, nil, err
	}
	if period.IsClosed {
		return nil, nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrConflict, period.Name)
	}
	return account, period, nil
}

// PostExpense records an expense debit against an expense account.
func (s *ledgerService) PostExpense(ctx context.Context, boardingHouseID string, req dto.CreateExpenseRequest, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	account, period, err := s.resolvePostingTarget(ctx, boardingHouseID, req.AccountID, domain.Expense, entryDate, userID)
	if err != nil {
		return nil, err
	}

	status := domain.PaymentStatus(req.PaymentStatus)
	partial := decimal.Zero
	remaining := decimal.Zero
	switch status {
	case domain.StatusFull:
		// Fully settled at posting time.
	case domain.StatusPartial:
		if req.PartialPaymentAmount == nil {
			return nil, fmt.Errorf("%w: partialPaymentAmount is required for partial status", apperrors.ErrValidation)
		}
		partial = *req.PartialPaymentAmount
		if !partial.IsPositive() || partial.GreaterThan(req.Amount) {
			return nil, fmt.Errorf("%w: partial payment must be positive and not exceed the amount", apperrors.ErrValidation)
		}
		remaining = req.Amount.Sub(partial)
	case domain.StatusUnpaid:
		remaining = req.Amount
	default:
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, req.PaymentStatus)
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, *req.DueDate)
		}
		d = d.UTC()
		dueDate = &d
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:              uuid.NewString(),
		BoardingHouseID:      boardingHouseID,
		Kind:                 domain.KindExpense,
		Side:                 domain.KindExpense.Side(),
		AccountID:            account.AccountID,
		PeriodID:             period.PeriodID,
		EntryDate:            entryDate,
		Amount:               req.Amount,
		Description:          req.Description,
		ReferenceNumber:      req.ReferenceNumber,
		PaymentMethod:        domain.PaymentMethod(req.PaymentMethod),
		PaymentStatus:        status,
		PartialPaymentAmount: partial,
		RemainingBalance:     remaining,
		DueDate:              dueDate,
		SupplierID:           req.SupplierID,
		SupplierName:         req.SupplierName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save expense entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("boarding_house_id", boardingHouseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_code", account.Code),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// PostPayment records a payment credit against a revenue account.
func (s *ledgerService) PostPayment(ctx context.Context, boardingHouseID string, req dto.CreatePaymentRequest, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	// The charged (billed) portion defaults to the full amount; a payment
	// above it leaves the student holding the surplus as credit.
	charged := req.Amount
	if req.ChargedAmount != nil {
		charged = *req.ChargedAmount
		if !charged.IsPositive() || charged.GreaterThan(req.Amount) {
			return nil, fmt.Errorf("%w: charged amount must be positive and at most the payment amount", apperrors.ErrValidation)
		}
	}

	account, period, err := s.resolvePostingTarget(ctx, boardingHouseID, req.AccountID, domain.Revenue, entryDate, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		BoardingHouseID: boardingHouseID,
		Kind:            domain.KindPayment,
		Side:            domain.KindPayment.Side(),
		AccountID:       account.AccountID,
		PeriodID:        period.PeriodID,
		EntryDate:       entryDate,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		PaymentStatus:   domain.StatusFull,
		// For payments the partial column records the charged portion.
		PartialPaymentAmount: charged,
		StudentID:            req.StudentID,
		StudentName:          req.StudentName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save payment entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("boarding_house_id", boardingHouseID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_code", account.Code),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// postPettyCashMovement posts an issuance or reduction entry and applies
// the float delta to the petty cash user in one repository transaction.
func (s *ledgerService) postPettyCashMovement(ctx context.Context, boardingHouseID, pettyCashUserID string, kind domain.EntryKind, req dto.PettyCashMovementRequest, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	pcUser, err := s.pettyCashRepo.FindPettyCashUserByID(ctx, pettyCashUserID)
	if err != nil {
		return nil, err
	}
	if pcUser.BoardingHouseID != boardingHouseID {
		return nil, apperrors.ErrNotFound
	}
	if pcUser.Status != domain.PettyCashActive {
		return nil, fmt.Errorf("%w: petty cash user %s is %s", apperrors.ErrConflict, pcUser.Username, pcUser.Status)
	}

	// Issuance funds move through an asset account (the float); the
	// movement debits it on issuance and credits it on reduction.
	account, period, err := s.resolvePostingTarget(ctx, boardingHouseID, req.AccountID, domain.Asset, entryDate, userID)
	if err != nil {
		return nil, err
	}

	balanceDelta := req.Amount
	if kind == domain.KindPettyCashReduction {
		balanceDelta = req.Amount.Neg()
		if pcUser.CurrentBalance.LessThan(req.Amount) {
			return nil, fmt.Errorf("%w: reduction %s exceeds current float %s", apperrors.ErrValidation, req.Amount, pcUser.CurrentBalance)
		}
	} else if pcUser.MonthlyLimit.IsPositive() && pcUser.CurrentBalance.Add(req.Amount).GreaterThan(pcUser.MonthlyLimit) {
		return nil, fmt.Errorf("%w: issuance would exceed monthly limit %s", apperrors.ErrConflict, pcUser.MonthlyLimit)
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		BoardingHouseID: boardingHouseID,
		Kind:            kind,
		Side:            kind.Side(),
		AccountID:       account.AccountID,
		PeriodID:        period.PeriodID,
		EntryDate:       entryDate,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		PaymentMethod:   domain.MethodPettyCash,
		PaymentStatus:   domain.StatusFull,
		PettyCashUserID: pettyCashUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ledgerRepo.SavePettyCashEntry(ctx, entry, balanceDelta); err != nil {
		s.LogError(ctx, err, "Failed to save petty cash entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("petty_cash_user_id", pettyCashUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Petty cash movement posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("kind", string(kind)),
		slog.String("petty_cash_user_id", pettyCashUserID),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// PostPettyCashIssuance increases a petty cash user's float.
func (s *ledgerService) PostPettyCashIssuance(ctx context.Context, boardingHouseID string, pettyCashUserID string, req dto.PettyCashMovementRequest, userID string) (*domain.LedgerEntry, error) {
	return s.postPettyCashMovement(ctx, boardingHouseID, pettyCashUserID, domain.KindPettyCashIssuance, req, userID)
}

// PostPettyCashReduction decreases a petty cash user's float.
func (s *ledgerService) PostPettyCashReduction(ctx context.Context, boardingHouseID string, pettyCashUserID string, req dto.PettyCashMovementRequest, userID string) (*domain.LedgerEntry, error) {
	return s.postPettyCashMovement(ctx, boardingHouseID, pettyCashUserID, domain.KindPettyCashReduction, req, userID)
}

func (s *ledgerService) GetEntryByID(ctx context.Context, boardingHouseID string, entryID string, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger entry",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.BoardingHouseID != boardingHouseID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, boardingHouseID string, kind domain.EntryKind, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, kind)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, newToken, err := s.ledgerRepo.ListEntries(ctx, boardingHouseID, kind, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries",
			slog.String("boarding_house_id", boardingHouseID),
			slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := dto.ToListEntriesResponse(entries, newToken)
	return &resp, nil
}

// entryPeriodOpen loads the entry's owning period and rejects mutation
// when it has been closed.
func (s *ledgerService) entryPeriodOpen(ctx context.Context, entry *domain.LedgerEntry) error {
	period, err := s.periodSvc.GetOrCreatePeriod(ctx, entry.BoardingHouseID, entry.EntryDate, entry.CreatedBy)
	if err != nil {
		return err
	}
	if period.IsClosed {
		return fmt.Errorf("%w: period %s is closed", apperrors.ErrConflict, period.Name)
	}
	return nil
}

// UpdateEntry amends descriptive and settlement fields of an entry whose
// owning period is still open. Amount, account and kind are immutable.
func (s *ledgerService) UpdateEntry(ctx context.Context, boardingHouseID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.GetEntryByID(ctx, boardingHouseID, entryID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.entryPeriodOpen(ctx, entry); err != nil {
		return nil, err
	}

	updated := false
	if req.Description != nil {
		entry.Description = *req.Description
		updated = true
	}
	if req.ReferenceNumber != nil {
		entry.ReferenceNumber = *req.ReferenceNumber
		updated = true
	}
	if req.SupplierName != nil {
		entry.SupplierName = *req.SupplierName
		updated = true
	}
	if req.StudentName != nil {
		entry.StudentName = *req.StudentName
		updated = true
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			entry.DueDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, *req.DueDate)
			}
			d = d.UTC()
			entry.DueDate = &d
		}
		updated = true
	}
	if req.PaymentStatus != nil {
		status := domain.PaymentStatus(*req.PaymentStatus)
		switch status {
		case domain.StatusFull:
			entry.PartialPaymentAmount = decimal.Zero
			entry.RemainingBalance = decimal.Zero
		case domain.StatusPartial:
			if req.PartialPaymentAmount == nil {
				return nil, fmt.Errorf("%w: partialPaymentAmount is required for partial status", apperrors.ErrValidation)
			}
			partial := *req.PartialPaymentAmount
			if !partial.IsPositive() || partial.GreaterThan(entry.Amount) {
				return nil, fmt.Errorf("%w: partial payment must be positive and not exceed the amount", apperrors.ErrValidation)
			}
			entry.PartialPaymentAmount = partial
			entry.RemainingBalance = entry.Amount.Sub(partial)
		case domain.StatusUnpaid:
			entry.PartialPaymentAmount = decimal.Zero
			entry.RemainingBalance = entry.Amount
		default:
			return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, *req.PaymentStatus)
		}
		entry.PaymentStatus = status
		updated = true
	}
	if !updated {
		return entry, nil
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry",
			slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry updated",
		slog.String("entry_id", entryID),
		slog.String("boarding_house_id", boardingHouseID))
	return entry, nil
}

// DeleteEntry removes an entry whose owning period is still open. Petty
// cash entries have their float adjustment reversed in the same database
// transaction by the repository.
func (s *ledgerService) DeleteEntry(ctx context.Context, boardingHouseID string, entryID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		return err
	}

	entry, err := s.GetEntryByID(ctx, boardingHouseID, entryID, userID)
	if err != nil {
		return err
	}
	if err := s.entryPeriodOpen(ctx, entry); err != nil {
		return err
	}

	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete ledger entry",
			slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Ledger entry deleted",
		slog.String("entry_id", entryID),
		slog.String("boarding_house_id", boardingHouseID))
	return nil
}
