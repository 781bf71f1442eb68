package services

import (
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All ledger services share the session store, so one user's operations are serialized
// across services.
func NewServiceContainer(cfg *config.Config, sessions *SessionStore, assistant gateways.AssistantGateway, opts ...ServiceOption) *portssvc.ServiceContainer {
	if cfg.Location != nil {
		opts = append([]ServiceOption{WithClock(ClockIn(cfg.Location))}, opts...)
	}

	return &portssvc.ServiceContainer{
		Ledger:             NewLedgerService(sessions, opts...),
		Transfer:           NewTransferService(sessions, opts...),
		Loan:               NewLoanService(sessions, opts...),
		Recurring:          NewRecurringService(sessions, opts...),
		Group:              NewGroupService(sessions, opts...),
		Stats:              NewStatsService(sessions, opts...),
		Settings:           NewSettingsService(sessions, opts...),
		Assistant:          NewAssistantService(sessions, assistant, opts...),
		Export:             NewExportService(sessions, opts...),
		TokenService:       NewTokenService(cfg),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
)
