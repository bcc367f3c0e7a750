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

// pettyCashService implements the PettyCashSvcFacade interface
type pettyCashService struct {
	BaseService
	pettyCashRepo portsrepo.PettyCashRepositoryFacade
}

// NewPettyCashService creates a new petty cash service.
func NewPettyCashService(repo portsrepo.PettyCashRepositoryFacade, authorizer portssvc.BoardingHouseAuthorizerSvc) portssvc.PettyCashSvcFacade {
	return &pettyCashService{
		BaseService:   BaseService{Authorizer: authorizer},
		pettyCashRepo: repo,
	}
}

var _ portssvc.PettyCashSvcFacade = (*pettyCashService)(nil)

// RegisterUser creates a petty cash custodian with a zero float.
func (s *pettyCashService) RegisterUser(ctx context.Context, boardingHouseID string, req dto.CreatePettyCashUserRequest, userID string) (*domain.PettyCashUser, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	limit := decimal.Zero
	if req.MonthlyLimit != nil {
		if req.MonthlyLimit.IsNegative() {
			return nil, fmt.Errorf("%w: monthly limit must not be negative", apperrors.ErrValidation)
		}
		limit = *req.MonthlyLimit
	}

	now := time.Now()
	pcUser := domain.PettyCashUser{
		PettyCashUserID: uuid.NewString(),
		BoardingHouseID: boardingHouseID,
		Username:        req.Username,
		FullName:        req.FullName,
		CurrentBalance:  decimal.Zero,
		MonthlyLimit:    limit,
		Status:          domain.PettyCashActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.pettyCashRepo.SavePettyCashUser(ctx, pcUser); err != nil {
		s.LogError(ctx, err, "Failed to save petty cash user",
			slog.String("username", req.Username),
			slog.String("boarding_house_id", boardingHouseID))
		return nil, err
	}

	s.LogInfo(ctx, "Petty cash user registered",
		slog.String("petty_cash_user_id", pcUser.PettyCashUserID),
		slog.String("username", pcUser.Username),
		slog.String("boarding_house_id", boardingHouseID))
	return &pcUser, nil
}

func (s *pettyCashService) GetUser(ctx context.Context, boardingHouseID string, pettyCashUserID string, userID string) (*domain.PettyCashUser, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	pcUser, err := s.pettyCashRepo.FindPettyCashUserByID(ctx, pettyCashUserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find petty cash user",
				slog.String("petty_cash_user_id", pettyCashUserID))
		}
		return nil, err
	}
	if pcUser.BoardingHouseID != boardingHouseID {
		return nil, apperrors.ErrNotFound
	}
	return pcUser, nil
}

func (s *pettyCashService) ListUsers(ctx context.Context, boardingHouseID string, userID string) ([]domain.PettyCashUser, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	users, err := s.pettyCashRepo.ListPettyCashUsers(ctx, boardingHouseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list petty cash users",
			slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to list petty cash users for boarding house %s: %w", boardingHouseID, err)
	}

	if users == nil {
		return []domain.PettyCashUser{}, nil
	}
	return users, nil
}

// UpdateUser amends profile fields, the monthly limit and the status.
// The float itself never moves through this method.
func (s *pettyCashService) UpdateUser(ctx context.Context, boardingHouseID string, pettyCashUserID string, req dto.UpdatePettyCashUserRequest, userID string) (*domain.PettyCashUser, error) {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	pcUser, err := s.GetUser(ctx, boardingHouseID, pettyCashUserID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.FullName != nil {
		pcUser.FullName = *req.FullName
		updated = true
	}
	if req.MonthlyLimit != nil {
		if req.MonthlyLimit.IsNegative() {
			return nil, fmt.Errorf("%w: monthly limit must not be negative", apperrors.ErrValidation)
		}
		pcUser.MonthlyLimit = *req.MonthlyLimit
		updated = true
	}
	if req.Status != nil {
		status := domain.PettyCashStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown petty cash status %q", apperrors.ErrValidation, *req.Status)
		}
		pcUser.Status = status
		updated = true
	}
	if !updated {
		return pcUser, nil
	}

	pcUser.LastUpdatedAt = time.Now()
	pcUser.LastUpdatedBy = userID

	if err := s.pettyCashRepo.UpdatePettyCashUser(ctx, *pcUser); err != nil {
		s.LogError(ctx, err, "Failed to update petty cash user",
			slog.String("petty_cash_user_id", pettyCashUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Petty cash user updated",
		slog.String("petty_cash_user_id", pettyCashUserID),
		slog.String("boarding_house_id", boardingHouseID))
	return pcUser, nil
}

// RemoveUser deletes a custodian without ledger history; a custodian with
// history is deactivated instead so their entries keep a valid reference.
func (s *pettyCashService) RemoveUser(ctx context.Context, boardingHouseID string, pettyCashUserID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, boardingHouseID, domain.RoleAdmin); err != nil {
		return err
	}

	pcUser, err := s.GetUser(ctx, boardingHouseID, pettyCashUserID, userID)
	if err != nil {
		return err
	}

	if !pcUser.CurrentBalance.IsZero() {
		return fmt.Errorf("%w: petty cash user %s still holds a float of %s", apperrors.ErrConflict, pcUser.Username, pcUser.CurrentBalance)
	}

	hasHistory, err := s.pettyCashRepo.HasPettyCashHistory(ctx, pettyCashUserID)
	if err != nil {
		return fmt.Errorf("failed to check petty cash history: %w", err)
	}

	if hasHistory {
		pcUser.Status = domain.PettyCashInactive
		pcUser.LastUpdatedAt = time.Now()
		pcUser.LastUpdatedBy = userID
		if err := s.pettyCashRepo.UpdatePettyCashUser(ctx, *pcUser); err != nil {
			s.LogError(ctx, err, "Failed to deactivate petty cash user",
				slog.String("petty_cash_user_id", pettyCashUserID))
			return err
		}
		s.LogInfo(ctx, "Petty cash user deactivated (has ledger history)",
			slog.String("petty_cash_user_id", pettyCashUserID))
		return nil
	}

	if err := s.pettyCashRepo.DeletePettyCashUser(ctx, pettyCashUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete petty cash user",
			slog.String("petty_cash_user_id", pettyCashUserID))
		return err
	}

	s.LogInfo(ctx, "Petty cash user deleted",
		slog.String("petty_cash_user_id", pettyCashUserID),
		slog.String("boarding_house_id", boardingHouseID))
	return nil
}
