package usecases

import (
	"context"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type GenerateTicketNumberExecutor interface {
	Execute(ctx context.Context, query GenerateTicketNumberQuery) (*dto.TicketNumberDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type ListDeclineRecordsExecutor interface {
	Execute(ctx context.Context, query ListDeclineRecordsQuery) (*ListDeclineRecordsResult, error)
}

type GetDeclineStatsExecutor interface {
	Execute(ctx context.Context) (*dto.DeclineStatsDTO, error)
}

// TransactionRunner runs fn in a single database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeclineLogFailureRecorder counts decline log writes that failed after the ticket update succeeded.
type DeclineLogFailureRecorder interface {
	RecordDeclineLogFailure()
}
