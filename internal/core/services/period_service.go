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
	"github.com/google/uuid"
)

// periodService implements the PeriodSvcFacade interface
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new period service.
func NewPeriodService(repo portsrepo.PeriodRepositoryFacade, authorizer portssvc.BoardingHouseAuthorizerSvc) portssvc.PeriodSvcFacade {
	return &periodService{
		BaseService: BaseService{Authorizer: authorizer},
		periodRepo:  repo,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// monthBounds returns the UTC-midnight first and last day of the calendar
// month containing d.
func monthBounds(d time.Time) (time.Time, time.Time) {
	d = d.UTC()
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// GetOrCreatePeriod looks up the calendar-month period containing the date,
// creating an open one when absent. Creation races resolve through the
// unique (boarding_house_id, name) constraint: on a duplicate we re-read.
func (s *periodService) GetOrCreatePeriod(ctx context.Context, boardingHouseID string, date time.Time, userID string) (*domain.Period, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleMember); err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByDate(ctx, boardingHouseID, date)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up period by date",
			slog.String("boarding_house_id", boardingHouseID),
			slog.Time("date", date))
		return nil, fmt.Errorf("failed to find period: %w", err)
	}

	start, end := monthBounds(date)
	now := time.Now()
	newPeriod := domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: boardingHouseID,
		Name:            start.Format("2006-01"),
		StartDate:       start,
		EndDate:         end,
		IsClosed:        false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, newPeriod); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a creation race; the winner's row is what we want.
			return s.periodRepo.FindPeriodByDate(ctx, boardingHouseID, date)
		}
		s.LogError(ctx, err, "Failed to create period",
			slog.String("boarding_house_id", boardingHouseID),
			slog.String("period_name", newPeriod.Name))
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	s.LogInfo(ctx, "Period created",
		slog.String("period_id", newPeriod.PeriodID),
		slog.String("period_name", newPeriod.Name),
		slog.String("boarding_house_id", boardingHouseID))
	return &newPeriod, nil
}

func (s *periodService) ListPeriods(ctx context.Context, boardingHouseID string, userID string) ([]domain.Period, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListPeriods(ctx, boardingHouseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to list periods for boarding house %s: %w", boardingHouseID, err)
	}

	if periods == nil {
		return []domain.Period{}, nil
	}
	return periods, nil
}

// ClosePeriod performs the open -> closed transition. The repository runs
// the whole close (snapshot carried-down balances, roll them into the next
// period's brought-down rows, flag the period closed) in one database
// transaction; a failure leaves the period untouched and retryable.
func (s *periodService) ClosePeriod(ctx context.Context, boardingHouseID string, periodID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleAdmin); err != nil {
		return err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for close",
				slog.String("period_id", periodID))
		}
		return err
	}
	if period.BoardingHouseID != boardingHouseID {
		return apperrors.ErrNotFound
	}
	if period.IsClosed {
		return fmt.Errorf("%w: period %s is already closed", apperrors.ErrConflict, period.Name)
	}

	// Closing out of order would rewrite the following period's
	// brought-down rows after that period was itself closed.
	next, err := s.periodRepo.FindNextPeriod(ctx, *period)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up following period",
			slog.String("period_id", periodID))
		return fmt.Errorf("failed to find following period: %w", err)
	}
	if next != nil && next.IsClosed {
		return fmt.Errorf("%w: following period %s is already closed", apperrors.ErrConflict, next.Name)
	}

	if err := s.periodRepo.ClosePeriod(ctx, periodID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to close period",
			slog.String("period_id", periodID),
			slog.String("boarding_house_id", boardingHouseID))
		return err
	}

	s.LogInfo(ctx, "Period closed",
		slog.String("period_id", periodID),
		slog.String("period_name", period.Name),
		slog.String("boarding_house_id", boardingHouseID))
	return nil
}
