package valueobjects

import (
	"fmt"
	"strings"
)

type TicketStatus string

const (
	StatusPending        TicketStatus = "pending"
	StatusInProgress     TicketStatus = "in_progress"
	StatusCompleted      TicketStatus = "completed"
	StatusNotFunctioning TicketStatus = "not_functioning"
	StatusDeclined       TicketStatus = "declined"
	// StatusCancelled is a legacy spelling of declined still present in older rows.
	StatusCancelled TicketStatus = "cancelled"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusPending:        true,
	StatusInProgress:     true,
	StatusCompleted:      true,
	StatusNotFunctioning: true,
	StatusDeclined:       true,
	StatusCancelled:      true,
}

// AllStatuses lists the canonical statuses in display order.
func AllStatuses() []TicketStatus {
	return []TicketStatus{
		StatusPending,
		StatusInProgress,
		StatusCompleted,
		StatusNotFunctioning,
		StatusDeclined,
	}
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsCompleted() bool {
	return ts == StatusCompleted
}

// IsDeclined reports true for declined and its legacy synonym cancelled.
func (ts TicketStatus) IsDeclined() bool {
	return ts == StatusDeclined || ts == StatusCancelled
}

// Canonical folds the legacy cancelled value into declined.
func (ts TicketStatus) Canonical() TicketStatus {
	if ts == StatusCancelled {
		return StatusDeclined
	}
	return ts
}

// Equivalent compares two statuses after canonicalisation.
func (ts TicketStatus) Equivalent(other TicketStatus) bool {
	return ts.Canonical() == other.Canonical()
}

// NewTicketStatus parses client input. Surrounding whitespace and case are ignored and
// the result is canonical, so "Cancelled" parses as declined.
func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(strings.ToLower(strings.TrimSpace(s)))
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %q", s)
	}
	return ts.Canonical(), nil
}
