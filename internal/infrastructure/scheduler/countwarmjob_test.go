package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/repository"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

type fakeTicketCounter struct {
	totals map[string]int64
	err    error
}

func (f *fakeTicketCounter) Count(_ context.Context, filter ticket.TicketFilter) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if filter.Status == nil {
		return f.totals["all"], nil
	}
	return f.totals[filter.Status.String()], nil
}

type fakeDeclineCounter struct {
	total int64
	since time.Time
}

func (f *fakeDeclineCounter) CountSince(_ context.Context, since time.Time) (int64, error) {
	f.since = since
	return f.total, nil
}

type mapCountCache map[string]int64

func (m mapCountCache) GetOrLoad(ctx context.Context, key string, load func(context.Context) (int64, error)) (int64, error) {
	if n, ok := m[key]; ok {
		return n, nil
	}
	return load(ctx)
}

func (m mapCountCache) Set(_ context.Context, key string, n int64) error {
	m[key] = n
	return nil
}

func TestCountWarmJob_Execute(t *testing.T) {
	counter := &fakeTicketCounter{totals: map[string]int64{"all": 12, "pending": 5, "declined": 3}}
	declines := &fakeDeclineCounter{total: 3}
	cache := mapCountCache{}

	n, err := NewCountWarmJob(counter, declines, cache).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(vo.AllStatuses())+2, n)
	assert.Equal(t, int64(12), cache[repository.TicketCountKey(ticket.TicketFilter{})])

	pending := vo.StatusPending
	assert.Equal(t, int64(5), cache[repository.TicketCountKey(ticket.TicketFilter{Status: &pending})])

	cancelled := vo.StatusCancelled
	assert.Equal(t, int64(3), cache[repository.TicketCountKey(ticket.TicketFilter{Status: &cancelled})],
		"legacy status shares the declined key")

	assert.Equal(t, int64(3), cache[repository.DeclineCountKey(ticket.DeclineRecordFilter{})])
	assert.True(t, declines.since.IsZero())
}

func TestCountWarmJob_CountError(t *testing.T) {
	cache := mapCountCache{}
	job := NewCountWarmJob(&fakeTicketCounter{err: errors.New("db down")}, nil, cache)

	n, err := job.Execute(context.Background())
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Empty(t, cache)
}

func TestSchedulerManager_StartShutdown(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	cache := mapCountCache{}
	job := NewCountWarmJob(&fakeTicketCounter{totals: map[string]int64{"all": 1}}, nil, cache)
	require.NoError(t, m.RegisterCountWarmJob(job, time.Hour))

	m.Start()
	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool {
		return m.scheduler.Jobs() != nil && len(m.scheduler.Jobs()) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, m.Shutdown())
	assert.False(t, m.IsStarted())
}
