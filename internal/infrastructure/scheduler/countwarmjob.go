package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/repository"
)

type ticketCounter interface {
	Count(ctx context.Context, filter ticket.TicketFilter) (int64, error)
}

type declineCounter interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// CountWarmJob recomputes the unfiltered and per-status ticket totals and the
// unfiltered decline total, so list pages rarely pay for a COUNT on a cold cache.
type CountWarmJob struct {
	tickets  ticketCounter
	declines declineCounter
	cache    repository.CountCache
}

func NewCountWarmJob(tickets ticketCounter, declines declineCounter, cache repository.CountCache) *CountWarmJob {
	return &CountWarmJob{
		tickets:  tickets,
		declines: declines,
		cache:    cache,
	}
}

func (j *CountWarmJob) Execute(ctx context.Context) (int, error) {
	filters := []ticket.TicketFilter{{}}
	for _, s := range vo.AllStatuses() {
		status := s
		filters = append(filters, ticket.TicketFilter{Status: &status})
	}

	warmed := 0
	for _, filter := range filters {
		n, err := j.tickets.Count(ctx, filter)
		if err != nil {
			return warmed, fmt.Errorf("failed to count tickets: %w", err)
		}
		if err := j.cache.Set(ctx, repository.TicketCountKey(filter), n); err != nil {
			return warmed, err
		}
		warmed++
	}

	if j.declines != nil {
		n, err := j.declines.CountSince(ctx, time.Time{})
		if err != nil {
			return warmed, fmt.Errorf("failed to count decline records: %w", err)
		}
		if err := j.cache.Set(ctx, repository.DeclineCountKey(ticket.DeclineRecordFilter{}), n); err != nil {
			return warmed, err
		}
		warmed++
	}

	return warmed, nil
}
