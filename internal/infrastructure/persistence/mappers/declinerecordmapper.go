package mappers

import (
	"fmt"
	"time"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/persistence/models"
)

// DeclineRecordMapper handles the conversion between DeclineRecord entities and persistence models.
type DeclineRecordMapper interface {
	ToModel(r *ticket.DeclineRecord) *models.DeclineRecordModel
	ToDomain(model *models.DeclineRecordModel) (*ticket.DeclineRecord, error)
	ToDomainList(models []models.DeclineRecordModel) ([]*ticket.DeclineRecord, error)
}

type DeclineRecordMapperImpl struct{}

func NewDeclineRecordMapper() DeclineRecordMapper {
	return &DeclineRecordMapperImpl{}
}

func (m *DeclineRecordMapperImpl) ToModel(r *ticket.DeclineRecord) *models.DeclineRecordModel {
	return &models.DeclineRecordModel{
		ID:                  r.ID(),
		TicketID:            r.TicketID(),
		TicketNumber:        r.TicketNumber(),
		DeviceType:          r.DeviceType(),
		OwnerName:           r.OwnerName(),
		Facility:            r.Facility(),
		OriginalDescription: nonEmpty(r.OriginalDescription()),
		DeclineReason:       r.DeclineReason(),
		DeclinedBy:          nonEmpty(r.DeclinedBy()),
		DeclinedAt:          r.DeclinedAt().UTC(),
		CreatedAt:           r.CreatedAt().UTC(),
	}
}

func (m *DeclineRecordMapperImpl) ToDomain(model *models.DeclineRecordModel) (*ticket.DeclineRecord, error) {
	if model == nil {
		return nil, nil
	}

	r, err := ticket.ReconstructDeclineRecord(
		model.ID,
		model.TicketID,
		model.TicketNumber,
		model.DeviceType,
		model.OwnerName,
		model.Facility,
		deref(model.OriginalDescription),
		model.DeclineReason,
		deref(model.DeclinedBy),
		model.DeclinedAt.UTC(),
		model.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct decline record (id=%d): %w", model.ID, err)
	}
	return r, nil
}

func (m *DeclineRecordMapperImpl) ToDomainList(rows []models.DeclineRecordModel) ([]*ticket.DeclineRecord, error) {
	records := make([]*ticket.DeclineRecord, 0, len(rows))
	for i := range rows {
		r, err := m.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
