package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithBoardingHouseAuthorizer adds the tenant authorizer dependency
func WithBoardingHouseAuthorizer(authorizer portssvc.BoardingHouseAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// nextRootCode derives the next root account code for a type: the type
// prefix digit followed by a counter that starts at 000 and steps by 10
// ("1000", "1010", ...).
func nextRootCode(accountType domain.AccountType, siblingCodes []string) string {
	next := accountType.CodePrefix() * 1000
	for _, code := range siblingCodes {
		n, err := strconv.Atoi(code)
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 10
		}
	}
	return strconv.Itoa(next)
}

// nextChildCode derives the next child code under a parent: the parent's
// code plus a two-digit suffix starting at 10 and stepping by 10.
func nextChildCode(parentCode string, siblingCodes []string) string {
	nextSuffix := 10
	for _, code := range siblingCodes {
		if !strings.HasPrefix(code, parentCode) {
			continue
		}
		suffix, err := strconv.Atoi(code[len(parentCode):])
		if err != nil {
			continue
		}
		if suffix >= nextSuffix {
			nextSuffix = suffix + 10
		}
	}
	return fmt.Sprintf("%s%02d", parentCode, nextSuffix)
}

func (s *accountService) CreateAccount(ctx context.Context, boardingHouseID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", userID),
			slog.String("boarding_house_id", boardingHouseID))
		return nil, err
	}

	accountType := domain.AccountType(req.AccountType)
	if !accountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}

	parentID := ""
	parentCode := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_id", parentID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if parent.BoardingHouseID != boardingHouseID {
			// Obscure existence of accounts in other boarding houses
			return nil, apperrors.ErrNotFound
		}
		if !parent.IsCategory {
			return nil, fmt.Errorf("%w: parent account %s is not a category", apperrors.ErrValidation, parentID)
		}
		if parent.AccountType != accountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, accountType)
		}
		parentCode = parent.Code
	}

	siblingCodes, err := s.accountRepo.ListSiblingCodes(ctx, boardingHouseID, accountType, parentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sibling codes for code generation",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to generate account code: %w", err)
	}

	var code string
	if parentID == "" {
		code = nextRootCode(accountType, siblingCodes)
	} else {
		code = nextChildCode(parentCode, siblingCodes)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		BoardingHouseID: boardingHouseID,
		Code:            code,
		Name:            req.Name,
		AccountType:     accountType,
		IsCategory:      req.IsCategory,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("boarding_house_id", boardingHouseID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("boarding_house_id", boardingHouseID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, boardingHouseID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}

	if account.BoardingHouseID != boardingHouseID {
		s.LogDebug(ctx, "Account found but belongs to different boarding house",
			slog.String("account_id", accountID),
			slog.String("account_boarding_house", account.BoardingHouseID),
			slog.String("requested_boarding_house", boardingHouseID))
		// Return NotFound to obscure existence from other tenants
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

// ListAccountTree returns the boarding house's accounts as a tree:
// root accounts at the top level, categories carrying their children,
// all ordered by code.
func (s *accountService) ListAccountTree(ctx context.Context, boardingHouseID string, userID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, boardingHouseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to list accounts for boarding house %s: %w", boardingHouseID, err)
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for i := range accounts {
		accounts[i].Children = nil
		byID[accounts[i].AccountID] = &accounts[i]
	}

	// Group children by parent first and materialize depth-first, so a
	// nested category is only copied into its parent after its own
	// children are in place. An account whose parent is absent from the
	// listing (parent deactivated) surfaces at the top level instead of
	// vanishing. Accounts arrive ordered by code, so each level of the
	// tree stays code-ordered.
	childrenOf := make(map[string][]*domain.Account)
	var rootPtrs []*domain.Account
	for i := range accounts {
		acc := &accounts[i]
		if acc.ParentAccountID != "" {
			if _, ok := byID[acc.ParentAccountID]; ok {
				childrenOf[acc.ParentAccountID] = append(childrenOf[acc.ParentAccountID], acc)
				continue
			}
		}
		rootPtrs = append(rootPtrs, acc)
	}
	sort.Slice(rootPtrs, func(i, j int) bool { return rootPtrs[i].Code < rootPtrs[j].Code })

	var build func(acc *domain.Account) domain.Account
	build = func(acc *domain.Account) domain.Account {
		node := *acc
		for _, child := range childrenOf[acc.AccountID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	roots := make([]domain.Account, 0, len(rootPtrs))
	for _, acc := range rootPtrs {
		roots = append(roots, build(acc))
	}
	return roots, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, boardingHouseID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, boardingHouseID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		if err := s.reparentAccount(ctx, boardingHouseID, account, *req.ParentAccountID); err != nil {
			return nil, err
		}
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID),
		slog.String("boarding_house_id", account.BoardingHouseID))
	return account, nil
}

// reparentAccount validates and applies a parent change on the account in
// place. The account keeps its type; it gets a fresh code under its new
// parent so the code hierarchy stays coherent.
func (s *accountService) reparentAccount(ctx context.Context, boardingHouseID string, account *domain.Account, newParentID string) error {
	hasPostings, err := s.accountRepo.HasPostings(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to check postings for account %s: %w", account.AccountID, err)
	}
	if hasPostings {
		return fmt.Errorf("%w: account %s has postings and cannot be re-parented", apperrors.ErrConflict, account.AccountID)
	}

	parentCode := ""
	if newParentID != "" {
		parent, err := s.GetAccountByID(ctx, boardingHouseID, newParentID)
		if err != nil {
			return fmt.Errorf("invalid parent account: %w", err)
		}
		if !parent.IsCategory {
			return fmt.Errorf("%w: parent account %s is not a category", apperrors.ErrValidation, newParentID)
		}
		if parent.AccountType != account.AccountType {
			return fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, account.AccountType)
		}
		// Walk the proposed ancestor chain to reject cycles.
		ancestorID := newParentID
		for ancestorID != "" {
			if ancestorID == account.AccountID {
				return fmt.Errorf("%w: re-parenting account %s under its own descendant", apperrors.ErrConflict, account.AccountID)
			}
			ancestor, err := s.accountRepo.FindAccountByID(ctx, ancestorID)
			if err != nil {
				return fmt.Errorf("failed to walk ancestor chain: %w", err)
			}
			ancestorID = ancestor.ParentAccountID
		}
		parentCode = parent.Code
	}

	siblingCodes, err := s.accountRepo.ListSiblingCodes(ctx, boardingHouseID, account.AccountType, newParentID)
	if err != nil {
		return fmt.Errorf("failed to generate account code: %w", err)
	}
	if newParentID == "" {
		account.Code = nextRootCode(account.AccountType, siblingCodes)
	} else {
		account.Code = nextChildCode(parentCode, siblingCodes)
	}
	account.ParentAccountID = newParentID
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, boardingHouseID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.GetAccountByID(ctx, boardingHouseID, accountID); err != nil {
		return err
	}

	hasPostings, err := s.accountRepo.HasPostings(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check postings for account %s: %w", accountID, err)
	}
	if hasPostings {
		return fmt.Errorf("%w: account %s has postings", apperrors.ErrConflict, accountID)
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check children for account %s: %w", accountID, err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has child accounts", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.String("boarding_house_id", boardingHouseID))
	return nil
}

// standardAccountSpec is one row of the canonical chart of accounts.
type standardAccountSpec struct {
	code       string
	name       string
	accType    domain.AccountType
	isCategory bool
	parentCode string
}

// standardChartOfAccounts is the canonical chart seeded for a new
// boarding house. Codes are fixed so repeated seeding is idempotent.
var standardChartOfAccounts = []standardAccountSpec{
	{"1000", "Current Assets", domain.Asset, true, ""},
	{"100010", "Cash on Hand", domain.Asset, false, "1000"},
	{"100020", "Bank Account", domain.Asset, false, "1000"},
	{"100030", "Petty Cash Float", domain.Asset, false, "1000"},
	{"100040", "Accounts Receivable", domain.Asset, false, "1000"},
	{"2000", "Current Liabilities", domain.Liability, true, ""},
	{"200010", "Accounts Payable", domain.Liability, false, "2000"},
	{"200020", "Student Deposits", domain.Liability, false, "2000"},
	{"3000", "Owner's Equity", domain.Equity, true, ""},
	{"300010", "Owner's Capital", domain.Equity, false, "3000"},
	{"300020", "Retained Earnings", domain.Equity, false, "3000"},
	{"4000", "Rental Income", domain.Revenue, true, ""},
	{"400010", "Room Rent", domain.Revenue, false, "4000"},
	{"400020", "Meal Fees", domain.Revenue, false, "4000"},
	{"400030", "Other Income", domain.Revenue, false, "4000"},
	{"5000", "Operating Expenses", domain.Expense, true, ""},
	{"500010", "Utilities", domain.Expense, false, "5000"},
	{"500020", "Groceries and Supplies", domain.Expense, false, "5000"},
	{"500030", "Repairs and Maintenance", domain.Expense, false, "5000"},
	{"500040", "Wages", domain.Expense, false, "5000"},
	{"500050", "Miscellaneous Expense", domain.Expense, false, "5000"},
}

// GenerateStandardChartOfAccounts seeds the canonical chart of accounts
// for a boarding house. Accounts whose code already exists are skipped,
// so repeated invocations create nothing new. The skip-check covers
// deactivated accounts too; their codes stay taken.
func (s *accountService) GenerateStandardChartOfAccounts(ctx context.Context, boardingHouseID string, userID string) (int, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleAdmin); err != nil {
		return 0, err
	}

	existing, err := s.accountRepo.ListAllAccounts(ctx, boardingHouseID)
	if err != nil {
		return 0, fmt.Errorf("failed to list existing accounts: %w", err)
	}
	idByCode := make(map[string]string, len(existing))
	for _, acc := range existing {
		idByCode[acc.Code] = acc.AccountID
	}

	now := time.Now()
	var toCreate []domain.Account
	for _, spec := range standardChartOfAccounts {
		if _, exists := idByCode[spec.code]; exists {
			continue
		}
		parentID := ""
		if spec.parentCode != "" {
			var ok bool
			parentID, ok = idByCode[spec.parentCode]
			if !ok {
				// Seed rows are ordered parent-first, so this only
				// happens on a malformed chart definition.
				return 0, fmt.Errorf("%w: missing parent %s for standard account %s", apperrors.ErrInternal, spec.parentCode, spec.code)
			}
		}
		account := domain.Account{
			AccountID:       uuid.NewString(),
			BoardingHouseID: boardingHouseID,
			Code:            spec.code,
			Name:            spec.name,
			AccountType:     spec.accType,
			IsCategory:      spec.isCategory,
			ParentAccountID: parentID,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		idByCode[spec.code] = account.AccountID
		toCreate = append(toCreate, account)
	}

	if len(toCreate) == 0 {
		s.LogDebug(ctx, "Standard chart of accounts already seeded",
			slog.String("boarding_house_id", boardingHouseID))
		return 0, nil
	}

	if err := s.accountRepo.SaveAccounts(ctx, toCreate); err != nil {
		s.LogError(ctx, err, "Failed to seed standard chart of accounts",
			slog.String("boarding_house_id", boardingHouseID))
		return 0, err
	}

	s.LogInfo(ctx, "Standard chart of accounts seeded",
		slog.String("boarding_house_id", boardingHouseID),
		slog.Int("created", len(toCreate)))
	return len(toCreate), nil
}
