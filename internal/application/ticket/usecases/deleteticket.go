package usecases

import (
	"context"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
}

// DeleteTicketUseCase hard-deletes a ticket. Decline records of the ticket are kept.
type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID)

	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}

	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		}
		return err
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_id", cmd.TicketID)
	return nil
}
