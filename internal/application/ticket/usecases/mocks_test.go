package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

// =====================================================================
// Ticket repository mock
// =====================================================================

type mockTicketRepository struct {
	CreateFunc      func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc      func(ctx context.Context, t *ticket.Ticket, expectedVersion int) error
	DeleteFunc      func(ctx context.Context, ticketID uint) error
	GetByIDFunc     func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByNumberFunc func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc        func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountFunc       func(ctx context.Context, filter ticket.TicketFilter) (int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket, expectedVersion int) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t, expectedVersion)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) Count(ctx context.Context, filter ticket.TicketFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return 0, nil
}

// =====================================================================
// Decline record repository mock
// =====================================================================

type mockDeclineRecordRepository struct {
	CreateFunc            func(ctx context.Context, r *ticket.DeclineRecord) error
	ListFunc              func(ctx context.Context, filter ticket.DeclineRecordFilter) ([]*ticket.DeclineRecord, int64, error)
	CountSinceFunc        func(ctx context.Context, since time.Time) (int64, error)
	CountByFacilityFunc   func(ctx context.Context) (map[string]int64, error)
	CountByDeclinedByFunc func(ctx context.Context) (map[string]int64, error)
}

func (m *mockDeclineRecordRepository) Create(ctx context.Context, r *ticket.DeclineRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockDeclineRecordRepository) List(ctx context.Context, filter ticket.DeclineRecordFilter) ([]*ticket.DeclineRecord, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockDeclineRecordRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountSinceFunc != nil {
		return m.CountSinceFunc(ctx, since)
	}
	return 0, nil
}

func (m *mockDeclineRecordRepository) CountByFacility(ctx context.Context) (map[string]int64, error) {
	if m.CountByFacilityFunc != nil {
		return m.CountByFacilityFunc(ctx)
	}
	return map[string]int64{}, nil
}

func (m *mockDeclineRecordRepository) CountByDeclinedBy(ctx context.Context) (map[string]int64, error) {
	if m.CountByDeclinedByFunc != nil {
		return m.CountByDeclinedByFunc(ctx)
	}
	return map[string]int64{}, nil
}

// =====================================================================
// Supporting mocks
// =====================================================================

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockFailureRecorder struct {
	count int
}

func (m *mockFailureRecorder) RecordDeclineLogFailure() { m.count++ }

type mockNumberGenerator struct {
	number string
	device string
	at     time.Time
}

func (m *mockNumberGenerator) Generate(deviceType string, now time.Time) string {
	m.device = deviceType
	m.at = now
	return m.number
}

// mockLogger records warn messages so tests can assert on swallowed failures.
type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) Debug(string, ...any)  {}
func (m *mockLogger) Info(string, ...any)   {}
func (m *mockLogger) Warn(string, ...any)   {}
func (m *mockLogger) Error(string, ...any)  {}
func (m *mockLogger) Debugw(string, ...any) {}
func (m *mockLogger) Infow(string, ...any)  {}
func (m *mockLogger) Errorw(string, ...any) {}

func (m *mockLogger) Warnw(msg string, _ ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}

func (m *mockLogger) With(...any) logger.Interface  { return m }
func (m *mockLogger) Named(string) logger.Interface { return m }

func (m *mockLogger) warnings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.warns...)
}

// =====================================================================
// Fixtures
// =====================================================================

var testNow = time.Date(2025, 3, 2, 14, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func strPtr(s string) *string { return &s }

func storedTicket(t *testing.T, id uint, status vo.TicketStatus, assignedTo, remarks *string) *ticket.Ticket {
	t.Helper()
	created := testNow.Add(-24 * time.Hour)
	tk, err := ticket.ReconstructTicket(
		id, "LA20250301123", "Laptop", "Won't boot", "M. Santos", "ICU",
		nil, status, assignedTo, remarks, 1, created, created, nil,
	)
	require.NoError(t, err)
	return tk
}

func storedDeclineRecord(t *testing.T, id uint, declinedBy string) *ticket.DeclineRecord {
	t.Helper()
	r, err := ticket.ReconstructDeclineRecord(
		id, 9, "PR20250301001", "Printer", "M. Santos", "ER", "Paper jam",
		"Out of warranty", declinedBy, testNow, testNow,
	)
	require.NoError(t, err)
	return r
}
