package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account         AccountSvcFacade
	Period          PeriodSvcFacade
	Balance         BalanceSvcFacade
	Ledger          LedgerSvcFacade
	PettyCash       PettyCashSvcFacade
	IncomeStatement IncomeStatementSvcFacade
	Payables        PayablesSvcFacade
	User            UserSvcFacade
	BoardingHouse   BoardingHouseSvcFacade

	// TokenService handles JWT access/refresh token generation and validation.
	TokenService TokenSvcFacade

	// GoogleOAuthHandler handles Google OAuth specific logic.
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
