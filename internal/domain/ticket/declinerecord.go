package ticket

import (
	"strings"
	"time"

	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
)

// DefaultDecliner is recorded when a decline arrives without a declining party.
const DefaultDecliner = "System"

// DeclineRecord is the audit entry written when a ticket moves into the declined state.
// It holds a snapshot of the ticket as it was just before the decline.
type DeclineRecord struct {
	id                  uint
	ticketID            uint
	ticketNumber        string
	deviceType          string
	ownerName           string
	facility            string
	originalDescription string
	declineReason       string
	declinedBy          string
	declinedAt          time.Time
	createdAt           time.Time
}

// NewDeclineRecord snapshots before and attaches the decline reason.
func NewDeclineRecord(before *Ticket, reason, declinedBy string, now time.Time) (*DeclineRecord, error) {
	if before == nil || before.ID() == 0 {
		return nil, errors.NewValidationError("decline record requires a persisted ticket")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.NewValidationError("decline reason cannot be empty")
	}
	declinedBy = strings.TrimSpace(declinedBy)
	if declinedBy == "" {
		declinedBy = DefaultDecliner
	}

	now = now.UTC()
	return &DeclineRecord{
		ticketID:            before.ID(),
		ticketNumber:        before.Number(),
		deviceType:          before.DeviceType(),
		ownerName:           before.OwnerName(),
		facility:            before.Facility(),
		originalDescription: before.RepairReason(),
		declineReason:       reason,
		declinedBy:          declinedBy,
		declinedAt:          now,
		createdAt:           now,
	}, nil
}

// ReconstructDeclineRecord rebuilds a decline record from persisted state.
func ReconstructDeclineRecord(
	id, ticketID uint,
	ticketNumber, deviceType, ownerName, facility, originalDescription string,
	declineReason, declinedBy string,
	declinedAt, createdAt time.Time,
) (*DeclineRecord, error) {
	if id == 0 {
		return nil, errors.NewValidationError("decline record ID cannot be zero")
	}
	return &DeclineRecord{
		id:                  id,
		ticketID:            ticketID,
		ticketNumber:        ticketNumber,
		deviceType:          deviceType,
		ownerName:           ownerName,
		facility:            facility,
		originalDescription: originalDescription,
		declineReason:       declineReason,
		declinedBy:          declinedBy,
		declinedAt:          declinedAt,
		createdAt:           createdAt,
	}, nil
}

func (r *DeclineRecord) ID() uint                    { return r.id }
func (r *DeclineRecord) TicketID() uint              { return r.ticketID }
func (r *DeclineRecord) TicketNumber() string        { return r.ticketNumber }
func (r *DeclineRecord) DeviceType() string          { return r.deviceType }
func (r *DeclineRecord) OwnerName() string           { return r.ownerName }
func (r *DeclineRecord) Facility() string            { return r.facility }
func (r *DeclineRecord) OriginalDescription() string { return r.originalDescription }
func (r *DeclineRecord) DeclineReason() string       { return r.declineReason }
func (r *DeclineRecord) DeclinedBy() string          { return r.declinedBy }
func (r *DeclineRecord) DeclinedAt() time.Time       { return r.declinedAt }
func (r *DeclineRecord) CreatedAt() time.Time        { return r.createdAt }

// SetID is called by the repository once the store has assigned an id.
func (r *DeclineRecord) SetID(id uint) error {
	if r.id != 0 {
		return errors.NewConflictError("decline record ID is already set")
	}
	if id == 0 {
		return errors.NewValidationError("decline record ID cannot be zero")
	}
	r.id = id
	return nil
}

// DeclineStats summarises the decline log.
type DeclineStats struct {
	Total        int64
	Today        int64
	ByFacility   map[string]int64
	ByDeclinedBy map[string]int64
}
