package ticket

import (
	"context"
	"time"

	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
)

// CountMode selects how list totals are computed.
type CountMode int

const (
	// CountExact runs a COUNT query on every call.
	CountExact CountMode = iota
	// CountApproximate may serve a cached total that is at most the cache TTL old.
	CountApproximate
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	// Update persists ticket if the stored version still equals expectedVersion.
	// It returns a conflict error when another writer got there first.
	Update(ctx context.Context, ticket *Ticket, expectedVersion int) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	Count(ctx context.Context, filter TicketFilter) (int64, error)
}

type TicketFilter struct {
	// Status matches equivalent statuses, so declined also matches legacy cancelled rows.
	Status *vo.TicketStatus
	Number string
	Page   int
	// PageSize of zero or less returns every matching row.
	PageSize  int
	CountMode CountMode
}

type DeclineRecordRepository interface {
	Create(ctx context.Context, record *DeclineRecord) error
	List(ctx context.Context, filter DeclineRecordFilter) ([]*DeclineRecord, int64, error)
	// CountSince counts records declined at or after since. A zero since counts everything.
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByFacility(ctx context.Context) (map[string]int64, error)
	CountByDeclinedBy(ctx context.Context) (map[string]int64, error)
}

type DeclineRecordFilter struct {
	Search     string
	Facility   string
	DeclinedBy string
	Page       int
	// PageSize of zero or less returns every matching row.
	PageSize  int
	CountMode CountMode
}

// IsFiltered reports whether any narrowing criterion is set.
func (f DeclineRecordFilter) IsFiltered() bool {
	return f.Search != "" || f.Facility != "" || f.DeclinedBy != ""
}
