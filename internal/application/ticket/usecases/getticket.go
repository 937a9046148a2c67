package usecases

import (
	"context"
	"strings"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

// GetTicketQuery looks a ticket up by ID, or by exact ticket number when Number is set.
type GetTicketQuery struct {
	TicketID uint
	Number   string
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	number := strings.TrimSpace(query.Number)
	if number == "" && query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID or ticket number is required")
	}

	var (
		t   *ticket.Ticket
		err error
	)
	if number != "" {
		t, err = uc.ticketRepo.GetByNumber(ctx, number)
	} else {
		t, err = uc.ticketRepo.GetByID(ctx, query.TicketID)
	}
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "ticket_number", number, "error", err)
		}
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgTicketNotFound)
	}

	return dto.ToTicketDTO(t), nil
}
