package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// payablesService implements the PayablesSvcFacade interface. It derives
// AP/AR positions from ledger history; nothing here writes state.
type payablesService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	thresholds    domain.ReportThresholds
}

// NewPayablesService creates a new payables/receivables reporting service.
func NewPayablesService(reportingRepo portsrepo.ReportingRepository, thresholds domain.ReportThresholds, authorizer portssvc.BoardingHouseAuthorizerSvc) portssvc.PayablesSvcFacade {
	return &payablesService{
		BaseService:   BaseService{Authorizer: authorizer},
		reportingRepo: reportingRepo,
		thresholds:    thresholds,
	}
}

var _ portssvc.PayablesSvcFacade = (*payablesService)(nil)

// classifyCreditor buckets a supplier by settlement progress.
func classifyCreditor(c domain.Creditor) domain.CreditorStatus {
	switch {
	case c.OutstandingDebt.IsZero() || c.OutstandingDebt.IsNegative():
		return domain.CreditorPaid
	case c.TotalPaid.IsPositive():
		return domain.CreditorPartial
	default:
		return domain.CreditorDebt
	}
}

// CreditorsReport aggregates unpaid and partially paid expenses per supplier.
func (s *payablesService) CreditorsReport(ctx context.Context, boardingHouseID string, userID string) (*domain.CreditorsReport, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	creditors, err := s.reportingRepo.GetCreditorsData(ctx, boardingHouseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate creditors data",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to build creditors report: %w", err)
	}

	report := &domain.CreditorsReport{
		TotalOutstanding: decimal.Zero,
		Creditors:        make([]domain.Creditor, 0, len(creditors)),
	}
	for _, c := range creditors {
		c.Status = classifyCreditor(c)
		if c.OutstandingDebt.IsPositive() {
			report.TotalOutstanding = report.TotalOutstanding.Add(c.OutstandingDebt)
		}
		report.Creditors = append(report.Creditors, c)
	}
	report.CreditorCount = len(report.Creditors)

	s.LogDebug(ctx, "Creditors report built",
		slog.String("boarding_house_id", boardingHouseID),
		slog.Int("creditor_count", report.CreditorCount),
		slog.String("total_outstanding", report.TotalOutstanding.String()))
	return report, nil
}

// classifyPrepayment buckets a student's credit position: above the high
// credit threshold, inactive when the last payment is too old, otherwise
// current.
func (s *payablesService) classifyPrepayment(p domain.StudentPrepayment, now time.Time) domain.PrepaymentClass {
	if p.CreditBalance.GreaterThan(s.thresholds.HighCreditThreshold) {
		return domain.PrepaymentHighCredit
	}
	inactiveCutoff := now.AddDate(0, 0, -s.thresholds.InactiveAfterDays)
	if p.LastPaymentDate.Before(inactiveCutoff) {
		return domain.PrepaymentInactive
	}
	return domain.PrepaymentCurrent
}

// PrepaymentsReport finds students whose cumulative payments exceed their
// cumulative charges.
func (s *payablesService) PrepaymentsReport(ctx context.Context, boardingHouseID string, userID string) (*domain.PrepaymentsReport, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	students, err := s.reportingRepo.GetPrepaymentsData(ctx, boardingHouseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate prepayments data",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to build prepayments report: %w", err)
	}

	now := time.Now()
	report := &domain.PrepaymentsReport{
		TotalCredit: decimal.Zero,
		Students:    make([]domain.StudentPrepayment, 0, len(students)),
	}
	for _, p := range students {
		if !p.CreditBalance.IsPositive() {
			continue
		}
		p.Class = s.classifyPrepayment(p, now)
		report.TotalCredit = report.TotalCredit.Add(p.CreditBalance)
		report.Students = append(report.Students, p)
	}
	report.StudentCount = len(report.Students)

	s.LogDebug(ctx, "Prepayments report built",
		slog.String("boarding_house_id", boardingHouseID),
		slog.Int("student_count", report.StudentCount),
		slog.String("total_credit", report.TotalCredit.String()))
	return report, nil
}

// OverduePayments lists outstanding charges past their due date, oldest
// first. Days overdue round up: any part of a day late counts as a day.
func (s *payablesService) OverduePayments(ctx context.Context, boardingHouseID string, userID string) ([]domain.OverduePayment, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows, err := s.reportingRepo.GetOverdueData(ctx, boardingHouseID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate overdue payments",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to build overdue payments report: %w", err)
	}

	for i := range rows {
		overdueFor := now.Sub(rows[i].DueDate)
		days := int(overdueFor.Hours() / 24)
		if overdueFor > time.Duration(days)*24*time.Hour {
			days++
		}
		rows[i].DaysOverdue = days
	}

	if rows == nil {
		rows = []domain.OverduePayment{}
	}
	return rows, nil
}
