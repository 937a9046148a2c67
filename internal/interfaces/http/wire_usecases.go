package http

import (
	"fmt"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/usecases"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	sharedConfig "github.com/HIMU202508/TicketingSystem/internal/shared/config"
)

// allUseCases holds the use case instances used by the handlers.
type allUseCases struct {
	createTicketUC       *usecases.CreateTicketUseCase
	generateNumberUC     *usecases.GenerateTicketNumberUseCase
	getTicketUC          *usecases.GetTicketUseCase
	listTicketsUC        *usecases.ListTicketsUseCase
	updateTicketUC       *usecases.UpdateTicketUseCase
	deleteTicketUC       *usecases.DeleteTicketUseCase
	listDeclineRecordsUC *usecases.ListDeclineRecordsUseCase
	getDeclineStatsUC    *usecases.GetDeclineStatsUseCase
}

func ticketPageLimits(cfg *sharedConfig.TicketConfig) usecases.PageLimits {
	return usecases.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}
}

func declinePageLimits(cfg *sharedConfig.TicketConfig) usecases.PageLimits {
	return usecases.PageLimits{Default: cfg.DeclineDefaultPageSize, Max: cfg.DeclineMaxPageSize}
}

// lifecyclePolicy builds the engine policy from ticket.terminal_statuses.
func lifecyclePolicy(cfg *sharedConfig.TicketConfig) (ticket.Policy, error) {
	var policy ticket.Policy
	for _, raw := range cfg.TerminalStatuses {
		status, err := vo.NewTicketStatus(raw)
		if err != nil {
			return ticket.Policy{}, fmt.Errorf("ticket.terminal_statuses: %w", err)
		}
		policy.TerminalStatuses = append(policy.TerminalStatuses, status)
	}
	return policy, nil
}
