package ticket

import (
	"strings"
	"time"

	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/sanitize"
)

const (
	maxShortFieldLength = 255
	maxTextFieldLength  = 5000
)

// Ticket is an equipment repair request tracked through its status lifecycle.
type Ticket struct {
	id           uint
	number       string
	deviceType   string
	repairReason string
	ownerName    string
	facility     string
	serialNumber *string
	status       vo.TicketStatus
	assignedTo   *string
	remarks      *string
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	completedAt  *time.Time
}

// NewTicketParams carries the submitted fields of a new ticket.
type NewTicketParams struct {
	Number       string
	DeviceType   string
	RepairReason string
	OwnerName    string
	Facility     string
	SerialNumber string
}

// NewTicket validates a submission and returns a pending, unassigned ticket.
func NewTicket(p NewTicketParams, now time.Time) (*Ticket, error) {
	number := strings.TrimSpace(p.Number)
	deviceType := strings.TrimSpace(p.DeviceType)
	repairReason := strings.TrimSpace(p.RepairReason)
	ownerName := strings.TrimSpace(p.OwnerName)
	facility := normalizeFacility(p.Facility)

	var missing []string
	if number == "" {
		missing = append(missing, "ticketNumber")
	}
	if deviceType == "" {
		missing = append(missing, "device")
	}
	if repairReason == "" {
		missing = append(missing, "repairReason")
	}
	if ownerName == "" {
		missing = append(missing, "ownerName")
	}
	if facility == "" {
		missing = append(missing, "facility")
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError("Missing required fields", strings.Join(missing, ", "))
	}

	if err := checkLength("device", deviceType, maxShortFieldLength); err != nil {
		return nil, err
	}
	if err := checkLength("ownerName", ownerName, maxShortFieldLength); err != nil {
		return nil, err
	}
	if err := checkLength("facility", facility, maxShortFieldLength); err != nil {
		return nil, err
	}
	if err := checkLength("repairReason", repairReason, maxTextFieldLength); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Ticket{
		number:       number,
		deviceType:   deviceType,
		repairReason: repairReason,
		ownerName:    ownerName,
		facility:     facility,
		serialNumber: optionalString(p.SerialNumber),
		status:       vo.StatusPending,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructTicket rebuilds a ticket from persisted state.
func ReconstructTicket(
	id uint,
	number string,
	deviceType string,
	repairReason string,
	ownerName string,
	facility string,
	serialNumber *string,
	status vo.TicketStatus,
	assignedTo *string,
	remarks *string,
	version int,
	createdAt, updatedAt time.Time,
	completedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, errors.NewValidationError("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, errors.NewValidationError("invalid ticket status", string(status))
	}
	if version < 1 {
		version = 1
	}

	return &Ticket{
		id:           id,
		number:       number,
		deviceType:   deviceType,
		repairReason: repairReason,
		ownerName:    ownerName,
		facility:     facility,
		serialNumber: serialNumber,
		status:       status,
		assignedTo:   assignedTo,
		remarks:      remarks,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		completedAt:  completedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Number() string          { return t.number }
func (t *Ticket) DeviceType() string      { return t.deviceType }
func (t *Ticket) RepairReason() string    { return t.repairReason }
func (t *Ticket) OwnerName() string       { return t.ownerName }
func (t *Ticket) Facility() string        { return t.facility }
func (t *Ticket) SerialNumber() *string   { return copyString(t.serialNumber) }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) AssignedTo() *string     { return copyString(t.assignedTo) }
func (t *Ticket) Remarks() *string        { return copyString(t.remarks) }
func (t *Ticket) Version() int            { return t.version }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }
func (t *Ticket) CompletedAt() *time.Time { return copyTime(t.completedAt) }

// SetID is called by the repository once the store has assigned an id.
func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return errors.NewConflictError("ticket ID is already set")
	}
	if id == 0 {
		return errors.NewValidationError("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// IsAssigned reports whether a technician with a non-blank name is assigned.
func (t *Ticket) IsAssigned() bool {
	return t.assignedTo != nil && strings.TrimSpace(*t.assignedTo) != ""
}

func (t *Ticket) clone() *Ticket {
	c := *t
	c.serialNumber = copyString(t.serialNumber)
	c.assignedTo = copyString(t.assignedTo)
	c.remarks = copyString(t.remarks)
	c.completedAt = copyTime(t.completedAt)
	return &c
}

func normalizeFacility(s string) string {
	return sanitize.Upper(s)
}

func checkLength(field, value string, max int) error {
	if len([]rune(value)) > max {
		return errors.NewValidationError("Field too long", field)
	}
	return nil
}

// optionalString trims s and maps blank to nil.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
