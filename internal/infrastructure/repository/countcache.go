package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
)

// CountCache memoises list totals for approximate counting.
type CountCache interface {
	// GetOrLoad returns the cached total for key, calling load on a miss.
	GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (int64, error)) (int64, error)
	// Set stores n under key, replacing any cached value.
	Set(ctx context.Context, key string, n int64) error
}

const (
	ticketCountKeyPrefix  = "count:tickets"
	declineCountKeyPrefix = "count:declines"
)

// TicketCountKey identifies the total of tickets matching filter, ignoring pagination.
func TicketCountKey(filter ticket.TicketFilter) string {
	status := "all"
	if filter.Status != nil {
		status = filter.Status.Canonical().String()
	}
	return fmt.Sprintf("%s:status=%s:number=%s", ticketCountKeyPrefix, status, strings.ToLower(filter.Number))
}

// DeclineCountKey identifies the total of decline records matching filter, ignoring pagination.
func DeclineCountKey(filter ticket.DeclineRecordFilter) string {
	return fmt.Sprintf("%s:search=%s:facility=%s:by=%s",
		declineCountKeyPrefix,
		strings.ToLower(filter.Search),
		strings.ToLower(filter.Facility),
		filter.DeclinedBy,
	)
}

func countWith(
	ctx context.Context,
	cache CountCache,
	mode ticket.CountMode,
	key string,
	exact func(ctx context.Context) (int64, error),
) (int64, error) {
	if mode == ticket.CountApproximate && cache != nil {
		return cache.GetOrLoad(ctx, key, exact)
	}
	return exact(ctx)
}
