package usecases

import (
	"context"
	"time"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/shared/biztime"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
	"github.com/HIMU202508/TicketingSystem/internal/shared/sanitize"
)

type CreateTicketCommand struct {
	TicketNumber string
	DeviceType   string
	RepairReason string
	OwnerName    string
	Facility     string
	SerialNumber string
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
	now        func() time.Time
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	cmd, err := sanitizeCreateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("create ticket command rejected", "error", err)
		return nil, err
	}
	uc.logger.Infow("executing create ticket use case",
		"device_type", cmd.DeviceType,
		"facility", cmd.Facility,
	)

	now := uc.now()
	newTicket, err := ticket.NewTicket(ticket.NewTicketParams{
		Number:       cmd.TicketNumber,
		DeviceType:   cmd.DeviceType,
		RepairReason: cmd.RepairReason,
		OwnerName:    cmd.OwnerName,
		Facility:     cmd.Facility,
		SerialNumber: cmd.SerialNumber,
	}, now)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, err
	}

	if err := uc.ticketRepo.Create(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "ticket_number", newTicket.Number())

	return dto.ToTicketDTO(newTicket), nil
}

func sanitizeCreateCommand(cmd CreateTicketCommand) (CreateTicketCommand, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"ticketNumber", &cmd.TicketNumber},
		{"device", &cmd.DeviceType},
		{"repairReason", &cmd.RepairReason},
		{"ownerName", &cmd.OwnerName},
		{"facility", &cmd.Facility},
		{"serialNumber", &cmd.SerialNumber},
	}
	for _, f := range fields {
		clean, err := sanitize.Text(f.name, *f.value)
		if err != nil {
			return CreateTicketCommand{}, err
		}
		*f.value = clean
	}
	return cmd, nil
}
