package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	"github.com/KudaNhari/boarding_house_mgmt/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBoardingHouseRepository struct {
	BaseRepository
}

// newPgxBoardingHouseRepository creates a new repository for boarding houses.
func newPgxBoardingHouseRepository(pool *pgxpool.Pool) *PgxBoardingHouseRepository {
	return &PgxBoardingHouseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BoardingHouseRepositoryFacade = (*PgxBoardingHouseRepository)(nil)

const boardingHouseColumns = `boarding_house_id, name, address, is_active, created_at, created_by, last_updated_at, last_updated_by`

func toDomainBoardingHouse(m models.BoardingHouse) domain.BoardingHouse {
	return domain.BoardingHouse{
		BoardingHouseID: m.BoardingHouseID,
		Name:            m.Name,
		Address:         m.Address,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanBoardingHouse(row pgx.Row) (models.BoardingHouse, error) {
	var m models.BoardingHouse
	err := row.Scan(
		&m.BoardingHouseID,
		&m.Name,
		&m.Address,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBoardingHouse persists a new boarding house.
func (r *PgxBoardingHouseRepository) SaveBoardingHouse(ctx context.Context, bh domain.BoardingHouse) error {
	query := `
		INSERT INTO boarding_houses (` + boardingHouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		bh.BoardingHouseID,
		bh.Name,
		bh.Address,
		bh.IsActive,
		bh.CreatedAt,
		bh.CreatedBy,
		bh.LastUpdatedAt,
		bh.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: boarding house %s already exists", apperrors.ErrDuplicate, bh.BoardingHouseID)
		}
		return fmt.Errorf("failed to save boarding house %s: %w", bh.BoardingHouseID, err)
	}
	return nil
}

// FindBoardingHouseByID retrieves a specific boarding house by its ID.
func (r *PgxBoardingHouseRepository) FindBoardingHouseByID(ctx context.Context, boardingHouseID string) (*domain.BoardingHouse, error) {
	query := `SELECT ` + boardingHouseColumns + ` FROM boarding_houses WHERE boarding_house_id = $1;`

	m, err := scanBoardingHouse(r.Pool.QueryRow(ctx, query, boardingHouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find boarding house %s: %w", boardingHouseID, err)
	}
	bh := toDomainBoardingHouse(m)
	return &bh, nil
}

// ListBoardingHousesByUserID retrieves all active boarding houses a user belongs to.
func (r *PgxBoardingHouseRepository) ListBoardingHousesByUserID(ctx context.Context, userID string) ([]domain.BoardingHouse, error) {
	query := `
		SELECT b.boarding_house_id, b.name, b.address, b.is_active, b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
		FROM boarding_houses b
		JOIN user_boarding_houses ub ON ub.boarding_house_id = b.boarding_house_id
		WHERE ub.user_id = $1 AND ub.role <> 'REMOVED' AND b.is_active = TRUE
		ORDER BY b.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boarding houses for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectBoardingHouses(rows)
}

// ListBoardingHouses retrieves every active boarding house.
func (r *PgxBoardingHouseRepository) ListBoardingHouses(ctx context.Context) ([]domain.BoardingHouse, error) {
	query := `SELECT ` + boardingHouseColumns + ` FROM boarding_houses WHERE is_active = TRUE ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list boarding houses: %w", err)
	}
	defer rows.Close()

	return collectBoardingHouses(rows)
}

func collectBoardingHouses(rows pgx.Rows) ([]domain.BoardingHouse, error) {
	var houses []domain.BoardingHouse
	for rows.Next() {
		m, err := scanBoardingHouse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan boarding house row: %w", err)
		}
		houses = append(houses, toDomainBoardingHouse(m))
	}
	return houses, rows.Err()
}

// UpdateBoardingHouse updates name, address and active state.
func (r *PgxBoardingHouseRepository) UpdateBoardingHouse(ctx context.Context, bh domain.BoardingHouse) error {
	query := `
		UPDATE boarding_houses
		SET name = $2, address = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE boarding_house_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		bh.BoardingHouseID,
		bh.Name,
		bh.Address,
		bh.IsActive,
		bh.LastUpdatedAt,
		bh.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update boarding house %s: %w", bh.BoardingHouseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddUserToBoardingHouse adds a user with a specific role, updating the
// role when a membership row already exists.
func (r *PgxBoardingHouseRepository) AddUserToBoardingHouse(ctx context.Context, membership domain.UserBoardingHouse) error {
	query := `
		INSERT INTO user_boarding_houses (user_id, boarding_house_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, boarding_house_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.BoardingHouseID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add user %s to boarding house %s: %w", membership.UserID, membership.BoardingHouseID, err)
	}
	return nil
}

// FindUserBoardingHouseRole retrieves the membership of a user in a boarding house.
func (r *PgxBoardingHouseRepository) FindUserBoardingHouseRole(ctx context.Context, userID, boardingHouseID string) (*domain.UserBoardingHouse, error) {
	query := `
		SELECT ub.user_id, u.name, ub.boarding_house_id, ub.role, ub.joined_at
		FROM user_boarding_houses ub
		JOIN users u ON u.user_id = ub.user_id
		WHERE ub.user_id = $1 AND ub.boarding_house_id = $2;
	`
	var membership domain.UserBoardingHouse
	var role string
	err := r.Pool.QueryRow(ctx, query, userID, boardingHouseID).Scan(
		&membership.UserID,
		&membership.UserName,
		&membership.BoardingHouseID,
		&role,
		&membership.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership for user %s: %w", userID, err)
	}
	membership.Role = domain.UserBoardingHouseRole(role)
	return &membership, nil
}

// ListBoardingHouseUsers retrieves all memberships of a boarding house.
func (r *PgxBoardingHouseRepository) ListBoardingHouseUsers(ctx context.Context, boardingHouseID string) ([]domain.UserBoardingHouse, error) {
	query := `
		SELECT ub.user_id, u.name, ub.boarding_house_id, ub.role, ub.joined_at
		FROM user_boarding_houses ub
		JOIN users u ON u.user_id = ub.user_id
		WHERE ub.boarding_house_id = $1 AND ub.role <> 'REMOVED'
		ORDER BY u.name;
	`
	rows, err := r.Pool.Query(ctx, query, boardingHouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boarding house users: %w", err)
	}
	defer rows.Close()

	var memberships []domain.UserBoardingHouse
	for rows.Next() {
		var membership domain.UserBoardingHouse
		var role string
		err := rows.Scan(
			&membership.UserID,
			&membership.UserName,
			&membership.BoardingHouseID,
			&role,
			&membership.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		membership.Role = domain.UserBoardingHouseRole(role)
		memberships = append(memberships, membership)
	}
	return memberships, rows.Err()
}
