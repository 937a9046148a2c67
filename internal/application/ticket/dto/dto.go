package dto

import (
	"time"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
)

type TicketDTO struct {
	ID           uint       `json:"id"`
	TicketNumber string     `json:"ticket_number"`
	DeviceType   string     `json:"device_type"`
	RepairReason string     `json:"repair_reason"`
	OwnerName    string     `json:"owner_name"`
	Facility     string     `json:"facility"`
	SerialNumber *string    `json:"serial_number"`
	Status       string     `json:"status"`
	AssignedTo   *string    `json:"assigned_to"`
	Remarks      *string    `json:"remarks"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// TicketNumberDTO carries a proposed number for the submission form.
type TicketNumberDTO struct {
	TicketNumber string `json:"ticket_number"`
}

type DeclineRecordDTO struct {
	ID                  uint      `json:"id"`
	TicketID            uint      `json:"ticket_id"`
	TicketNumber        string    `json:"ticket_number"`
	DeviceType          string    `json:"device_type"`
	OwnerName           string    `json:"owner_name"`
	Facility            string    `json:"facility"`
	OriginalDescription string    `json:"original_description"`
	DeclineReason       string    `json:"decline_reason"`
	DeclinedBy          string    `json:"declined_by"`
	DeclinedAt          time.Time `json:"declined_at"`
	CreatedAt           time.Time `json:"created_at"`
}

type DeclineStatsDTO struct {
	TotalDeclined int64            `json:"total_declined"`
	DeclinedToday int64            `json:"declined_today"`
	ByFacility    map[string]int64 `json:"by_facility"`
	ByDeclinedBy  map[string]int64 `json:"by_declined_by"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:           t.ID(),
		TicketNumber: t.Number(),
		DeviceType:   t.DeviceType(),
		RepairReason: t.RepairReason(),
		OwnerName:    t.OwnerName(),
		Facility:     t.Facility(),
		SerialNumber: t.SerialNumber(),
		Status:       t.Status().String(),
		AssignedTo:   t.AssignedTo(),
		Remarks:      t.Remarks(),
		Version:      t.Version(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		CompletedAt:  t.CompletedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	result := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, ToTicketDTO(t))
	}
	return result
}

func ToDeclineRecordDTO(r *ticket.DeclineRecord) *DeclineRecordDTO {
	if r == nil {
		return nil
	}

	return &DeclineRecordDTO{
		ID:                  r.ID(),
		TicketID:            r.TicketID(),
		TicketNumber:        r.TicketNumber(),
		DeviceType:          r.DeviceType(),
		OwnerName:           r.OwnerName(),
		Facility:            r.Facility(),
		OriginalDescription: r.OriginalDescription(),
		DeclineReason:       r.DeclineReason(),
		DeclinedBy:          r.DeclinedBy(),
		DeclinedAt:          r.DeclinedAt(),
		CreatedAt:           r.CreatedAt(),
	}
}

func ToDeclineRecordDTOs(records []*ticket.DeclineRecord) []*DeclineRecordDTO {
	result := make([]*DeclineRecordDTO, 0, len(records))
	for _, r := range records {
		result = append(result, ToDeclineRecordDTO(r))
	}
	return result
}

func ToDeclineStatsDTO(s *ticket.DeclineStats) *DeclineStatsDTO {
	if s == nil {
		return nil
	}

	return &DeclineStatsDTO{
		TotalDeclined: s.Total,
		DeclinedToday: s.Today,
		ByFacility:    s.ByFacility,
		ByDeclinedBy:  s.ByDeclinedBy,
	}
}
