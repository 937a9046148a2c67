package usecases

import (
	"context"
	"time"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/shared/biztime"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
	"github.com/HIMU202508/TicketingSystem/internal/shared/optional"
	"github.com/HIMU202508/TicketingSystem/internal/shared/sanitize"
)

type UpdateTicketCommand struct {
	TicketID     uint
	Status       optional.Field[string]
	AssignedTo   optional.Field[string]
	RepairReason optional.Field[string]
	Facility     optional.Field[string]
	Remarks      optional.Field[string]
	DeclinedBy   string
}

type UpdateTicketResult struct {
	Ticket *dto.TicketDTO
	// DeclineLogged is true when a decline record was written by this update.
	DeclineLogged bool
}

type UpdateTicketOptions struct {
	Policy ticket.Policy
	// TransactionalDeclineLog writes the ticket and its decline record in one transaction
	// and fails the update when the decline record cannot be written.
	TransactionalDeclineLog bool
}

type UpdateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	declineRepo ticket.DeclineRecordRepository
	txRunner    TransactionRunner
	failures    DeclineLogFailureRecorder
	opts        UpdateTicketOptions
	logger      logger.Interface
	now         func() time.Time
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	declineRepo ticket.DeclineRecordRepository,
	txRunner TransactionRunner,
	failures DeclineLogFailureRecorder,
	opts UpdateTicketOptions,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:  ticketRepo,
		declineRepo: declineRepo,
		txRunner:    txRunner,
		failures:    failures,
		opts:        opts,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	current, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		}
		return nil, err
	}

	changes, err := toChanges(cmd)
	if err != nil {
		uc.logger.Warnw("ticket update rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	outcome, err := ticket.ApplyUpdate(current, changes, uc.opts.Policy, uc.now())
	if err != nil {
		uc.logger.Warnw("ticket update rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if !outcome.Changed {
		uc.logger.Debugw("ticket update is a no-op", "ticket_id", cmd.TicketID)
		return &UpdateTicketResult{Ticket: dto.ToTicketDTO(current)}, nil
	}

	declineLogged := false
	if uc.opts.TransactionalDeclineLog && uc.txRunner != nil {
		err = uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := uc.ticketRepo.Update(ctx, outcome.Ticket, current.Version()); err != nil {
				return err
			}
			if outcome.Decline != nil {
				return uc.declineRepo.Create(ctx, outcome.Decline)
			}
			return nil
		})
		if err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}
		declineLogged = outcome.Decline != nil
	} else {
		if err := uc.ticketRepo.Update(ctx, outcome.Ticket, current.Version()); err != nil {
			if !errors.IsConflictError(err) {
				uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			}
			return nil, err
		}
		if outcome.Decline != nil {
			declineLogged = uc.logDecline(ctx, outcome.Decline)
		}
	}

	uc.logger.Infow("ticket updated successfully",
		"ticket_id", cmd.TicketID,
		"status", outcome.Ticket.Status(),
		"version", outcome.Ticket.Version(),
		"decline_logged", declineLogged,
	)

	return &UpdateTicketResult{
		Ticket:        dto.ToTicketDTO(outcome.Ticket),
		DeclineLogged: declineLogged,
	}, nil
}

// logDecline writes the decline record after the ticket update has been stored.
// A failure here does not fail the update.
func (uc *UpdateTicketUseCase) logDecline(ctx context.Context, record *ticket.DeclineRecord) bool {
	if err := uc.declineRepo.Create(ctx, record); err != nil {
		uc.logger.Warnw("failed to write decline record",
			"ticket_id", record.TicketID(),
			"ticket_number", record.TicketNumber(),
			"error", err,
		)
		if uc.failures != nil {
			uc.failures.RecordDeclineLogFailure()
		}
		return false
	}
	return true
}

func toChanges(cmd UpdateTicketCommand) (ticket.Changes, error) {
	changes := ticket.Changes{Status: cmd.Status}
	var err error
	if changes.AssignedTo, err = sanitizeField("assigned_to", cmd.AssignedTo); err != nil {
		return ticket.Changes{}, err
	}
	if changes.RepairReason, err = sanitizeField("repair_reason", cmd.RepairReason); err != nil {
		return ticket.Changes{}, err
	}
	if changes.Facility, err = sanitizeField("facility", cmd.Facility); err != nil {
		return ticket.Changes{}, err
	}
	if changes.Remarks, err = sanitizeField("remarks", cmd.Remarks); err != nil {
		return ticket.Changes{}, err
	}
	if changes.DeclinedBy, err = sanitize.Text("declined_by", cmd.DeclinedBy); err != nil {
		return ticket.Changes{}, err
	}
	return changes, nil
}

func sanitizeField(name string, f optional.Field[string]) (optional.Field[string], error) {
	v, ok := f.Get()
	if !ok {
		return f, nil
	}
	clean, err := sanitize.Text(name, v)
	if err != nil {
		return optional.Field[string]{}, err
	}
	return optional.Of(clean), nil
}
