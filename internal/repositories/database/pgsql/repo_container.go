package pgsql

import (
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres-backed repository against one
// shared connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:       newPgxAccountRepository(dbPool),
		PeriodRepo:        newPgxPeriodRepository(dbPool),
		BalanceRepo:       newPgxBalanceRepository(dbPool),
		LedgerRepo:        newPgxLedgerRepository(dbPool),
		PettyCashRepo:     newPgxPettyCashRepository(dbPool),
		ReportingRepo:     newPgxReportingRepository(dbPool),
		StatementRepo:     newPgxStatementRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
		BoardingHouseRepo: newPgxBoardingHouseRepository(dbPool),
	}
}
