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
	"github.com/KudaNhari/boarding_house_mgmt/internal/middleware"
	"github.com/google/uuid"
)

// BoardingHouseService handles business logic related to boarding houses
// and memberships.
type BoardingHouseService struct {
	bhRepo portsrepo.BoardingHouseRepositoryFacade
}

// NewBoardingHouseService creates a new BoardingHouseService.
func NewBoardingHouseService(bhRepo portsrepo.BoardingHouseRepositoryFacade) portssvc.BoardingHouseSvcFacade {
	return &BoardingHouseService{bhRepo: bhRepo}
}

var _ portssvc.BoardingHouseSvcFacade = (*BoardingHouseService)(nil)

// CreateBoardingHouse creates a new boarding house and makes the creator the initial admin.
func (s *BoardingHouseService) CreateBoardingHouse(ctx context.Context, name, address, creatorUserID string) (*domain.BoardingHouse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	newBoardingHouseID := uuid.NewString()

	bh := domain.BoardingHouse{
		BoardingHouseID: newBoardingHouseID,
		Name:            name,
		Address:         address,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bhRepo.SaveBoardingHouse(ctx, bh); err != nil {
		logger.Error("Failed to save boarding house in repository", slog.String("error", err.Error()), slog.String("name", name))
		return nil, fmt.Errorf("failed to create boarding house: %w", err)
	}

	membership := domain.UserBoardingHouse{
		UserID:          creatorUserID,
		BoardingHouseID: newBoardingHouseID,
		Role:            domain.RoleAdmin, // Creator is Admin
		JoinedAt:        now,
	}
	if err := s.bhRepo.AddUserToBoardingHouse(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new boarding house", slog.String("error", err.Error()), slog.String("boarding_house_id", newBoardingHouseID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	logger.Info("Boarding house created successfully", slog.String("boarding_house_id", newBoardingHouseID), slog.String("creator_user_id", creatorUserID))
	return &bh, nil
}

// AddUserToBoardingHouse adds a user to a boarding house with a specific role.
func (s *BoardingHouseService) AddUserToBoardingHouse(ctx context.Context, addingUserID, targetUserID, boardingHouseID string, role domain.UserBoardingHouseRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, boardingHouseID, domain.RoleAdmin); err != nil {
		return err // Return auth error (NotFound or Forbidden)
	}

	now := time.Now()
	membership := domain.UserBoardingHouse{
		UserID:          targetUserID,
		BoardingHouseID: boardingHouseID,
		Role:            role,
		JoinedAt:        now,
	}

	if err := s.bhRepo.AddUserToBoardingHouse(ctx, membership); err != nil {
		logger.Error("Failed to add user to boarding house in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("boarding_house_id", boardingHouseID))
		return fmt.Errorf("failed to add user %s to boarding house %s: %w", targetUserID, boardingHouseID, err)
	}

	logger.Info("User added to boarding house successfully", slog.String("target_user_id", targetUserID), slog.String("boarding_house_id", boardingHouseID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// ListUserBoardingHouses retrieves the boarding houses a given user belongs to.
func (s *BoardingHouseService) ListUserBoardingHouses(ctx context.Context, userID string) ([]domain.BoardingHouse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bhs, err := s.bhRepo.ListBoardingHousesByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list boarding houses for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list boarding houses for user %s: %w", userID, err)
	}

	if bhs == nil {
		return []domain.BoardingHouse{}, nil // Return empty slice, not nil
	}

	logger.Debug("Boarding houses listed successfully for user", slog.String("user_id", userID), slog.Int("count", len(bhs)))
	return bhs, nil
}

// ListBoardingHouseUsers retrieves the memberships of a boarding house.
// Any member may see who else belongs to the house.
func (s *BoardingHouseService) ListBoardingHouseUsers(ctx context.Context, boardingHouseID string, requestingUserID string) ([]domain.UserBoardingHouse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, boardingHouseID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	members, err := s.bhRepo.ListBoardingHouseUsers(ctx, boardingHouseID)
	if err != nil {
		logger.Error("Failed to list boarding house users from repository", slog.String("error", err.Error()), slog.String("boarding_house_id", boardingHouseID))
		return nil, fmt.Errorf("failed to list users for boarding house %s: %w", boardingHouseID, err)
	}

	if members == nil {
		return []domain.UserBoardingHouse{}, nil
	}
	return members, nil
}

// FindBoardingHouseByID retrieves a boarding house by its ID.
func (s *BoardingHouseService) FindBoardingHouseByID(ctx context.Context, boardingHouseID string) (*domain.BoardingHouse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	bh, err := s.bhRepo.FindBoardingHouseByID(ctx, boardingHouseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find boarding house by ID in repository", slog.String("error", err.Error()), slog.String("boarding_house_id", boardingHouseID))
		}
		return nil, err // Propagate error (including NotFound)
	}
	logger.Debug("Boarding house found by ID", slog.String("boarding_house_id", boardingHouseID))
	return bh, nil
}

// DeactivateBoardingHouse marks a boarding house as inactive. Admin only.
func (s *BoardingHouseService) DeactivateBoardingHouse(ctx context.Context, boardingHouseID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, boardingHouseID, domain.RoleAdmin); err != nil {
		return err
	}

	bh, err := s.bhRepo.FindBoardingHouseByID(ctx, boardingHouseID)
	if err != nil {
		return err
	}

	bh.IsActive = false
	bh.LastUpdatedAt = time.Now()
	bh.LastUpdatedBy = requestingUserID

	if err := s.bhRepo.UpdateBoardingHouse(ctx, *bh); err != nil {
		logger.Error("Failed to deactivate boarding house", slog.String("error", err.Error()), slog.String("boarding_house_id", boardingHouseID))
		return fmt.Errorf("failed to deactivate boarding house %s: %w", boardingHouseID, err)
	}

	logger.Info("Boarding house deactivated", slog.String("boarding_house_id", boardingHouseID), slog.String("user_id", requestingUserID))
	return nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within a boarding house.
// Returns apperrors.ErrNotFound if the user is not a member (also hides house existence).
// Returns apperrors.ErrForbidden if the user is a member but lacks the required role.
func (s *BoardingHouseService) AuthorizeUserAction(ctx context.Context, userID, boardingHouseID string, requiredRole domain.UserBoardingHouseRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.bhRepo.FindUserBoardingHouseRole(ctx, userID, boardingHouseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not a member of boarding house", slog.String("user_id", userID), slog.String("boarding_house_id", boardingHouseID))
			// Return NotFound to avoid revealing boarding house existence
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user boarding house role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("boarding_house_id", boardingHouseID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role.Satisfies(requiredRole) {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("boarding_house_id", boardingHouseID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
