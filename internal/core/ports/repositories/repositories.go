package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryFacade
	PeriodRepo        PeriodRepositoryFacade
	BalanceRepo       BalanceRepositoryFacade
	LedgerRepo        LedgerRepositoryFacade
	PettyCashRepo     PettyCashRepositoryFacade
	ReportingRepo     ReportingRepository
	StatementRepo     StatementRepositoryFacade
	UserRepo          UserRepositoryFacade
	BoardingHouseRepo BoardingHouseRepositoryFacade
}
