package ticket

import (
	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/usecases"
	"github.com/HIMU202508/TicketingSystem/internal/shared/optional"
)

// CreateTicketRequest is the public submission form. The ticket number comes from the
// client, which can ask GET /api/tickets/number for a proposal.
type CreateTicketRequest struct {
	TicketNumber string `json:"ticketNumber" validate:"notblank,max=50"`
	Device       string `json:"device" validate:"notblank,max=255"`
	RepairReason string `json:"repairReason" validate:"notblank,max=5000"`
	OwnerName    string `json:"ownerName" validate:"notblank,max=255"`
	Facility     string `json:"facility" validate:"notblank,max=255"`
	SerialNumber string `json:"serialNumber" validate:"max=255"`
}

func (r *CreateTicketRequest) ToCommand() usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		TicketNumber: r.TicketNumber,
		DeviceType:   r.Device,
		RepairReason: r.RepairReason,
		OwnerName:    r.OwnerName,
		Facility:     r.Facility,
		SerialNumber: r.SerialNumber,
	}
}

// UpdateTicketRequest distinguishes an omitted key from an explicit null for every field.
type UpdateTicketRequest struct {
	Status       optional.Field[string] `json:"status"`
	AssignedTo   optional.Field[string] `json:"assigned_to"`
	RepairReason optional.Field[string] `json:"repair_reason"`
	Facility     optional.Field[string] `json:"facility"`
	Remarks      optional.Field[string] `json:"remarks"`
	DeclinedBy   string                 `json:"declined_by" validate:"max=255"`
}

func (r *UpdateTicketRequest) ToCommand(ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:     ticketID,
		Status:       r.Status,
		AssignedTo:   r.AssignedTo,
		RepairReason: r.RepairReason,
		Facility:     r.Facility,
		Remarks:      r.Remarks,
		DeclinedBy:   r.DeclinedBy,
	}
}
