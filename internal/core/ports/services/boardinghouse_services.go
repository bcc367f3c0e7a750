package services

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// BoardingHouseReaderSvc defines read operations for boarding house data
type BoardingHouseReaderSvc interface {
	// FindBoardingHouseByID retrieves a specific boarding house by its ID.
	FindBoardingHouseByID(ctx context.Context, boardingHouseID string) (*domain.BoardingHouse, error)

	// ListUserBoardingHouses retrieves boarding houses a user belongs to.
	ListUserBoardingHouses(ctx context.Context, userID string) ([]domain.BoardingHouse, error)

	// ListBoardingHouseUsers retrieves all users and their roles for a
	// boarding house. Only members may access this data.
	ListBoardingHouseUsers(ctx context.Context, boardingHouseID string, requestingUserID string) ([]domain.UserBoardingHouse, error)
}

// BoardingHouseWriterSvc defines write operations for boarding house data
type BoardingHouseWriterSvc interface {
	// CreateBoardingHouse persists a new boarding house; the creator
	// becomes its admin.
	CreateBoardingHouse(ctx context.Context, name, address, creatorUserID string) (*domain.BoardingHouse, error)

	// DeactivateBoardingHouse marks a boarding house as inactive.
	DeactivateBoardingHouse(ctx context.Context, boardingHouseID string, requestingUserID string) error
}

// BoardingHouseMembershipSvc defines operations for managing membership
type BoardingHouseMembershipSvc interface {
	// AddUserToBoardingHouse adds a user with a specific role. Admin only.
	AddUserToBoardingHouse(ctx context.Context, addingUserID, targetUserID, boardingHouseID string, role domain.UserBoardingHouseRole) error
}

// BoardingHouseAuthorizerSvc defines operations for tenant authorization
type BoardingHouseAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has the required role for a
	// boarding house. Returns apperrors.ErrForbidden on insufficient role
	// and apperrors.ErrNotFound when the user is not a member at all.
	AuthorizeUserAction(ctx context.Context, userID, boardingHouseID string, requiredRole domain.UserBoardingHouseRole) error
}

// BoardingHouseSvcFacade combines all boarding-house service interfaces
type BoardingHouseSvcFacade interface {
	BoardingHouseReaderSvc
	BoardingHouseWriterSvc
	BoardingHouseMembershipSvc
	BoardingHouseAuthorizerSvc
}
