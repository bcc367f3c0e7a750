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

type PgxPettyCashRepository struct {
	BaseRepository
}

// newPgxPettyCashRepository creates a new repository for petty cash users.
func newPgxPettyCashRepository(pool *pgxpool.Pool) *PgxPettyCashRepository {
	return &PgxPettyCashRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PettyCashRepositoryFacade = (*PgxPettyCashRepository)(nil)

const pettyCashColumns = `petty_cash_user_id, boarding_house_id, username, full_name, current_balance, monthly_limit, status, created_at, created_by, last_updated_at, last_updated_by`

func toDomainPettyCashUser(m models.PettyCashUser) domain.PettyCashUser {
	return domain.PettyCashUser{
		PettyCashUserID: m.PettyCashUserID,
		BoardingHouseID: m.BoardingHouseID,
		Username:        m.Username,
		FullName:        m.FullName,
		CurrentBalance:  m.CurrentBalance,
		MonthlyLimit:    m.MonthlyLimit,
		Status:          domain.PettyCashStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanPettyCashUser(row pgx.Row) (models.PettyCashUser, error) {
	var m models.PettyCashUser
	err := row.Scan(
		&m.PettyCashUserID,
		&m.BoardingHouseID,
		&m.Username,
		&m.FullName,
		&m.CurrentBalance,
		&m.MonthlyLimit,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePettyCashUser persists a new petty cash user.
func (r *PgxPettyCashRepository) SavePettyCashUser(ctx context.Context, user domain.PettyCashUser) error {
	query := `
		INSERT INTO petty_cash_users (` + pettyCashColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.PettyCashUserID,
		user.BoardingHouseID,
		user.Username,
		user.FullName,
		user.CurrentBalance,
		user.MonthlyLimit,
		string(user.Status),
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: petty cash username %s already exists", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to save petty cash user %s: %w", user.PettyCashUserID, err)
	}
	return nil
}

// FindPettyCashUserByID retrieves a specific petty cash user.
func (r *PgxPettyCashRepository) FindPettyCashUserByID(ctx context.Context, pettyCashUserID string) (*domain.PettyCashUser, error) {
	query := `SELECT ` + pettyCashColumns + ` FROM petty_cash_users WHERE petty_cash_user_id = $1;`

	m, err := scanPettyCashUser(r.Pool.QueryRow(ctx, query, pettyCashUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find petty cash user %s: %w", pettyCashUserID, err)
	}
	user := toDomainPettyCashUser(m)
	return &user, nil
}

// ListPettyCashUsers retrieves all petty cash users for a boarding house.
func (r *PgxPettyCashRepository) ListPettyCashUsers(ctx context.Context, boardingHouseID string) ([]domain.PettyCashUser, error) {
	query := `SELECT ` + pettyCashColumns + ` FROM petty_cash_users WHERE boarding_house_id = $1 ORDER BY username;`

	rows, err := r.Pool.Query(ctx, query, boardingHouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list petty cash users: %w", err)
	}
	defer rows.Close()

	var users []domain.PettyCashUser
	for rows.Next() {
		m, err := scanPettyCashUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan petty cash user row: %w", err)
		}
		users = append(users, toDomainPettyCashUser(m))
	}
	return users, rows.Err()
}

// HasPettyCashHistory reports whether any ledger entry references the user.
func (r *PgxPettyCashRepository) HasPettyCashHistory(ctx context.Context, pettyCashUserID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE petty_cash_user_id = $1);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, pettyCashUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check petty cash history for user %s: %w", pettyCashUserID, err)
	}
	return exists, nil
}

// UpdatePettyCashUser updates profile fields and status. The current
// balance is deliberately not in the SET list; it moves only through
// issuance and reduction ledger entries.
func (r *PgxPettyCashRepository) UpdatePettyCashUser(ctx context.Context, user domain.PettyCashUser) error {
	query := `
		UPDATE petty_cash_users
		SET full_name = $2, monthly_limit = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE petty_cash_user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.PettyCashUserID,
		user.FullName,
		user.MonthlyLimit,
		string(user.Status),
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update petty cash user %s: %w", user.PettyCashUserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePettyCashUser removes a user without transaction history.
func (r *PgxPettyCashRepository) DeletePettyCashUser(ctx context.Context, pettyCashUserID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM petty_cash_users WHERE petty_cash_user_id = $1;`, pettyCashUserID)
	if err != nil {
		return fmt.Errorf("failed to delete petty cash user %s: %w", pettyCashUserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
