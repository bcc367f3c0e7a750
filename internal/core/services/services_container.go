package services

import (
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portsrepo "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/repositories"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize the boarding house service first since every other
	// service authorizes through it.
	container.BoardingHouse = NewBoardingHouseService(repos.BoardingHouseRepo)
	authorizer := container.BoardingHouse.(portssvc.BoardingHouseAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithBoardingHouseAuthorizer(authorizer),
	)
	container.Period = NewPeriodService(repos.PeriodRepo, authorizer)
	container.Balance = NewBalanceService(repos.BalanceRepo, repos.PeriodRepo, repos.AccountRepo, authorizer)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo, repos.PettyCashRepo, container.Period, authorizer)
	container.PettyCash = NewPettyCashService(repos.PettyCashRepo, authorizer)
	container.IncomeStatement = NewIncomeStatementService(repos.ReportingRepo, repos.StatementRepo, authorizer)
	container.Payables = NewPayablesService(repos.ReportingRepo, domain.ReportThresholds{
		HighCreditThreshold: cfg.HighCreditThreshold,
		InactiveAfterDays:   cfg.InactiveAfterDays,
	}, authorizer)

	container.User = NewUserService(repos.UserRepo, cfg.RefreshTokenExpiryDuration)
	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time checks that each implementation satisfies its facade.
var (
	_ portssvc.AccountSvcFacade         = (*accountService)(nil)
	_ portssvc.PeriodSvcFacade          = (*periodService)(nil)
	_ portssvc.BalanceSvcFacade         = (*balanceService)(nil)
	_ portssvc.LedgerSvcFacade          = (*ledgerService)(nil)
	_ portssvc.PettyCashSvcFacade       = (*pettyCashService)(nil)
	_ portssvc.IncomeStatementSvcFacade = (*incomeStatementService)(nil)
	_ portssvc.PayablesSvcFacade        = (*payablesService)(nil)
	_ portssvc.UserSvcFacade            = (*userService)(nil)
	_ portssvc.BoardingHouseSvcFacade   = (*BoardingHouseService)(nil)
)
