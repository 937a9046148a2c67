package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/optional"
)

// CompletionRequiresAssigneeMessage is returned when a ticket would be completed without a technician.
const CompletionRequiresAssigneeMessage = "Assign a technician before marking the ticket as completed."

// Changes is a partial update. Unset fields keep their current value.
// For AssignedTo and Remarks an explicit null, or a blank value, clears the field.
// For Status, RepairReason and Facility a null is treated like unset.
type Changes struct {
	Status       optional.Field[string]
	AssignedTo   optional.Field[string]
	RepairReason optional.Field[string]
	Facility     optional.Field[string]
	Remarks      optional.Field[string]
	// DeclinedBy names who is declining, recorded in the decline log.
	DeclinedBy string
}

// Policy holds the configurable lifecycle rules.
type Policy struct {
	// TerminalStatuses may not be left once reached. Empty means any status may move to any other.
	TerminalStatuses []vo.TicketStatus
}

func (p Policy) isTerminal(s vo.TicketStatus) bool {
	for _, ts := range p.TerminalStatuses {
		if ts.Equivalent(s) {
			return true
		}
	}
	return false
}

// UpdateOutcome is the result of applying Changes to a ticket.
type UpdateOutcome struct {
	Ticket *Ticket
	// Decline is set when this update moved the ticket into declined with a non-blank remark.
	Decline *DeclineRecord
	// Changed is false when the update left every field as it was.
	Changed bool
}

// ApplyUpdate resolves changes against current and returns the next ticket state.
// current is never modified. The decline record, when produced, snapshots current.
func ApplyUpdate(current *Ticket, changes Changes, policy Policy, now time.Time) (*UpdateOutcome, error) {
	if current == nil {
		return nil, errors.NewValidationError("ticket is required")
	}
	now = now.UTC()

	nextStatus := current.status
	if v, ok := changes.Status.Get(); ok {
		status, err := vo.NewTicketStatus(v)
		if err != nil {
			return nil, errors.NewValidationError("Invalid status", err.Error())
		}
		if !status.Equivalent(current.status) {
			nextStatus = status
		}
	}

	if nextStatus != current.status && policy.isTerminal(current.status) {
		return nil, errors.NewInvalidTransitionError(
			fmt.Sprintf("Ticket is %s and its status can no longer change.", current.status.Canonical()),
		)
	}

	next := current.clone()
	next.status = nextStatus

	if v, ok := changes.RepairReason.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, errors.NewValidationError("Repair reason cannot be empty")
		}
		if err := checkLength("repairReason", v, maxTextFieldLength); err != nil {
			return nil, err
		}
		next.repairReason = v
	}

	if v, ok := changes.Facility.Get(); ok {
		v = normalizeFacility(v)
		if v == "" {
			return nil, errors.NewValidationError("Facility cannot be empty")
		}
		if err := checkLength("facility", v, maxShortFieldLength); err != nil {
			return nil, err
		}
		next.facility = v
	}

	if changes.AssignedTo.IsSet() {
		next.assignedTo = optionalString(changes.AssignedTo.OrElse(""))
		if next.assignedTo != nil {
			if err := checkLength("assignedTo", *next.assignedTo, maxShortFieldLength); err != nil {
				return nil, err
			}
		}
	}

	if changes.Remarks.IsSet() {
		next.remarks = optionalString(changes.Remarks.OrElse(""))
		if next.remarks != nil {
			if err := checkLength("remarks", *next.remarks, maxTextFieldLength); err != nil {
				return nil, err
			}
		}
	}

	if next.status.IsCompleted() && !next.IsAssigned() {
		return nil, errors.NewInvalidTransitionError(CompletionRequiresAssigneeMessage)
	}

	if next.status.IsCompleted() && !current.status.IsCompleted() {
		stamp := now
		next.completedAt = &stamp
	}

	outcome := &UpdateOutcome{Ticket: next}

	if next.status.IsDeclined() && !current.status.IsDeclined() && next.remarks != nil {
		record, err := NewDeclineRecord(current, *next.remarks, changes.DeclinedBy, now)
		if err != nil {
			return nil, err
		}
		outcome.Decline = record
	}

	outcome.Changed = differs(current, next)
	if outcome.Changed {
		next.version = current.version + 1
		next.updatedAt = now
	}

	return outcome, nil
}

func differs(a, b *Ticket) bool {
	return a.status != b.status ||
		a.repairReason != b.repairReason ||
		a.facility != b.facility ||
		stringValue(a.assignedTo) != stringValue(b.assignedTo) ||
		(a.assignedTo == nil) != (b.assignedTo == nil) ||
		stringValue(a.remarks) != stringValue(b.remarks) ||
		(a.remarks == nil) != (b.remarks == nil) ||
		!timeEqual(a.completedAt, b.completedAt)
}
