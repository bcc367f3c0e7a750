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

// incomeStatementService implements the IncomeStatementSvcFacade interface
type incomeStatementService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	statementRepo portsrepo.StatementRepositoryFacade
}

// NewIncomeStatementService creates a new income statement service.
func NewIncomeStatementService(reportingRepo portsrepo.ReportingRepository, statementRepo portsrepo.StatementRepositoryFacade, authorizer portssvc.BoardingHouseAuthorizerSvc) portssvc.IncomeStatementSvcFacade {
	return &incomeStatementService{
		BaseService:   BaseService{Authorizer: authorizer},
		reportingRepo: reportingRepo,
		statementRepo: statementRepo,
	}
}

var _ portssvc.IncomeStatementSvcFacade = (*incomeStatementService)(nil)

// Generate computes the revenue/expense/net-income report for a date
// range. The result is a pure function of ledger state: regenerating with
// the same parameters yields identical totals.
func (s *incomeStatementService) Generate(ctx context.Context, params dto.GenerateStatementParams, userID string) (*domain.IncomeStatement, error) {
	if params.EndDate.Before(params.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", apperrors.ErrValidation)
	}

	boardingHouseID := params.BoardingHouseID
	if params.Consolidated {
		boardingHouseID = ""
	} else {
		if boardingHouseID == "" {
			return nil, fmt.Errorf("%w: boarding house is required for a non-consolidated statement", apperrors.ErrValidation)
		}
		if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
			return nil, err
		}
	}

	revenue, expenses, err := s.reportingRepo.GetIncomeStatementData(ctx, boardingHouseID, params.StartDate, params.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate income statement data",
			slog.String("boarding_house_id", boardingHouseID),
			slog.Time("start_date", params.StartDate),
			slog.Time("end_date", params.EndDate))
		return nil, fmt.Errorf("failed to generate income statement: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, line := range revenue {
		totalRevenue = totalRevenue.Add(line.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, line := range expenses {
		totalExpenses = totalExpenses.Add(line.NetAmount)
	}
	if revenue == nil {
		revenue = []domain.AccountAmount{}
	}
	if expenses == nil {
		expenses = []domain.AccountAmount{}
	}

	statement := &domain.IncomeStatement{
		BoardingHouseID: boardingHouseID,
		Consolidated:    params.Consolidated,
		StartDate:       params.StartDate,
		EndDate:         params.EndDate,
		Revenue:         revenue,
		Expenses:        expenses,
		TotalRevenue:    totalRevenue,
		TotalExpenses:   totalExpenses,
		NetIncome:       totalRevenue.Sub(totalExpenses),
	}

	s.LogDebug(ctx, "Income statement generated",
		slog.String("boarding_house_id", boardingHouseID),
		slog.Bool("consolidated", params.Consolidated),
		slog.String("net_income", statement.NetIncome.String()))
	return statement, nil
}

// Save generates the statement for the requested range and persists it as
// an immutable snapshot.
func (s *incomeStatementService) Save(ctx context.Context, boardingHouseID string, req dto.SaveStatementRequest, userID string) (*domain.SavedStatement, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, req.StartDate)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, req.EndDate)
	}

	if !req.Consolidated {
		if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
			return nil, err
		}
	}

	statement, err := s.Generate(ctx, dto.GenerateStatementParams{
		BoardingHouseID: boardingHouseID,
		Consolidated:    req.Consolidated,
		StartDate:       startDate.UTC(),
		EndDate:         endDate.UTC(),
	}, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	saved := domain.SavedStatement{
		StatementID:     uuid.NewString(),
		BoardingHouseID: statement.BoardingHouseID,
		Name:            req.Name,
		StartDate:       statement.StartDate,
		EndDate:         statement.EndDate,
		Snapshot:        *statement,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.statementRepo.SaveStatement(ctx, saved); err != nil {
		s.LogError(ctx, err, "Failed to save income statement snapshot",
			slog.String("statement_id", saved.StatementID))
		return nil, err
	}

	s.LogInfo(ctx, "Income statement saved",
		slog.String("statement_id", saved.StatementID),
		slog.String("name", saved.Name),
		slog.String("boarding_house_id", saved.BoardingHouseID))
	return &saved, nil
}

func (s *incomeStatementService) ListSaved(ctx context.Context, boardingHouseID string, userID string) ([]domain.SavedStatement, error) {
	if boardingHouseID != "" {
		if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
			return nil, err
		}
	}

	statements, err := s.statementRepo.ListStatements(ctx, boardingHouseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list saved statements",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to list saved statements: %w", err)
	}

	if statements == nil {
		return []domain.SavedStatement{}, nil
	}
	return statements, nil
}

// LoadSaved retrieves one stored snapshot. It never recomputes.
func (s *incomeStatementService) LoadSaved(ctx context.Context, boardingHouseID string, statementID string, userID string) (*domain.SavedStatement, error) {
	statement, err := s.statementRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find saved statement",
				slog.String("statement_id", statementID))
		}
		return nil, err
	}

	if statement.BoardingHouseID != "" {
		if statement.BoardingHouseID != boardingHouseID {
			return nil, apperrors.ErrNotFound
		}
		if err := s.AuthorizeUser(ctx, userID, statement.BoardingHouseID, domain.RoleReadOnly); err != nil {
			return nil, err
		}
	}
	return statement, nil
}
