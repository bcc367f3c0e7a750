package repositories

import (
	"context"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
)

// BoardingHouseReader defines read operations for boarding house data
type BoardingHouseReader interface {
	// FindBoardingHouseByID retrieves a specific boarding house by its ID.
	FindBoardingHouseByID(ctx context.Context, boardingHouseID string) (*domain.BoardingHouse, error)

	// ListBoardingHousesByUserID retrieves all boarding houses a user belongs to.
	ListBoardingHousesByUserID(ctx context.Context, userID string) ([]domain.BoardingHouse, error)

	// ListBoardingHouses retrieves every active boarding house (consolidated reports).
	ListBoardingHouses(ctx context.Context) ([]domain.BoardingHouse, error)
}

// BoardingHouseWriter defines write operations for boarding house data
type BoardingHouseWriter interface {
	// SaveBoardingHouse persists a new boarding house.
	SaveBoardingHouse(ctx context.Context, bh domain.BoardingHouse) error

	// UpdateBoardingHouse updates name/address/active state.
	UpdateBoardingHouse(ctx context.Context, bh domain.BoardingHouse) error
}

// BoardingHouseMembershipManager defines operations for managing memberships
type BoardingHouseMembershipManager interface {
	// AddUserToBoardingHouse adds a user with a specific role.
	AddUserToBoardingHouse(ctx context.Context, membership domain.UserBoardingHouse) error

	// FindUserBoardingHouseRole retrieves the role of a user in a boarding house.
	FindUserBoardingHouseRole(ctx context.Context, userID, boardingHouseID string) (*domain.UserBoardingHouse, error)

	// ListBoardingHouseUsers retrieves all memberships of a boarding house.
	ListBoardingHouseUsers(ctx context.Context, boardingHouseID string) ([]domain.UserBoardingHouse, error)
}

// BoardingHouseRepositoryFacade combines all boarding-house repository interfaces
type BoardingHouseRepositoryFacade interface {
	BoardingHouseReader
	BoardingHouseWriter
	BoardingHouseMembershipManager
}
