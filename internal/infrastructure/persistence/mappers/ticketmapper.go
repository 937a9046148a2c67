package mappers

import (
	"fmt"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(models []models.TicketModel) ([]*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID(),
		TicketNumber: t.Number(),
		DeviceType:   t.DeviceType(),
		Description:  t.RepairReason(),
		OwnerName:    t.OwnerName(),
		Facility:     t.Facility(),
		SerialNumber: t.SerialNumber(),
		Status:       t.Status().String(),
		AssignedTo:   t.AssignedTo(),
		Remarks:      t.Remarks(),
		Version:      t.Version(),
		CreatedAt:    t.CreatedAt().UTC(),
		UpdatedAt:    t.UpdatedAt().UTC(),
		CompletedAt:  t.CompletedAt(),
	}
}

// ToDomain rebuilds a ticket. Rows with a status outside the known set are reported as
// errors rather than silently coerced.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	t, err := ticket.ReconstructTicket(
		model.ID,
		model.TicketNumber,
		model.DeviceType,
		model.Description,
		model.OwnerName,
		model.Facility,
		model.SerialNumber,
		vo.TicketStatus(model.Status),
		model.AssignedTo,
		model.Remarks,
		model.Version,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
		utcPtr(model.CompletedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket (id=%d): %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) ToDomainList(rows []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := m.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
