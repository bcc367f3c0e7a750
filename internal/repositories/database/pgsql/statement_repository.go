package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	"github.com/KudaNhari/boarding_house_mgmt/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a repository for saved income statements.
func newPgxStatementRepository(pool *pgxpool.Pool) *PgxStatementRepository {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

const statementColumns = `statement_id, boarding_house_id, name, start_date, end_date, snapshot, created_at, created_by, last_updated_at, last_updated_by`

func toDomainStatement(m models.SavedStatement) (domain.SavedStatement, error) {
	var snapshot domain.IncomeStatement
	if err := json.Unmarshal(m.Snapshot, &snapshot); err != nil {
		return domain.SavedStatement{}, fmt.Errorf("failed to decode statement snapshot %s: %w", m.StatementID, err)
	}
	return domain.SavedStatement{
		StatementID:     m.StatementID,
		BoardingHouseID: m.BoardingHouseID,
		Name:            m.Name,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Snapshot:        snapshot,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

func scanStatement(row pgx.Row) (models.SavedStatement, error) {
	var m models.SavedStatement
	var boardingHouseID sql.NullString
	err := row.Scan(
		&m.StatementID,
		&boardingHouseID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Snapshot,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.SavedStatement{}, err
	}
	m.BoardingHouseID = boardingHouseID.String
	return m, nil
}

// SaveStatement persists an immutable statement snapshot as JSONB. A NULL
// boarding house marks a consolidated statement.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.SavedStatement) error {
	snapshot, err := json.Marshal(statement.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode statement snapshot %s: %w", statement.StatementID, err)
	}

	query := `
		INSERT INTO saved_statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = r.Pool.Exec(ctx, query,
		statement.StatementID,
		nullableID(statement.BoardingHouseID),
		statement.Name,
		statement.StartDate,
		statement.EndDate,
		snapshot,
		statement.CreatedAt,
		statement.CreatedBy,
		statement.LastUpdatedAt,
		statement.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: statement %s already exists", apperrors.ErrDuplicate, statement.StatementID)
		}
		return fmt.Errorf("failed to save statement %s: %w", statement.StatementID, err)
	}
	return nil
}

// FindStatementByID retrieves a saved statement snapshot.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.SavedStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM saved_statements WHERE statement_id = $1;`

	m, err := scanStatement(r.Pool.QueryRow(ctx, query, statementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}
	stmt, err := toDomainStatement(m)
	if err != nil {
		return nil, err
	}
	return &stmt, nil
}

// ListStatements retrieves saved statements for a boarding house newest
// first. An empty boardingHouseID lists the consolidated statements.
func (r *PgxStatementRepository) ListStatements(ctx context.Context, boardingHouseID string) ([]domain.SavedStatement, error) {
	var rows pgx.Rows
	var err error
	if boardingHouseID == "" {
		query := `SELECT ` + statementColumns + ` FROM saved_statements WHERE boarding_house_id IS NULL ORDER BY created_at DESC;`
		rows, err = r.Pool.Query(ctx, query)
	} else {
		query := `SELECT ` + statementColumns + ` FROM saved_statements WHERE boarding_house_id = $1 ORDER BY created_at DESC;`
		rows, err = r.Pool.Query(ctx, query, boardingHouseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	var statements []domain.SavedStatement
	for rows.Next() {
		m, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		stmt, err := toDomainStatement(m)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, rows.Err()
}
