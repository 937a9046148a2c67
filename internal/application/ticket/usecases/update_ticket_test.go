package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	apperrors "github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/optional"
)

type updateFixture struct {
	tickets  *mockTicketRepository
	declines *mockDeclineRecordRepository
	tx       *mockTxRunner
	failures *mockFailureRecorder
	log      *mockLogger

	updated  *ticket.Ticket
	recorded []*ticket.DeclineRecord
}

func newUpdateFixture(t *testing.T, current *ticket.Ticket) *updateFixture {
	f := &updateFixture{
		tx:       &mockTxRunner{},
		failures: &mockFailureRecorder{},
		log:      &mockLogger{},
	}
	f.tickets = &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			if current == nil || id != current.ID() {
				return nil, apperrors.NewNotFoundError("Ticket not found")
			}
			return current, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket, expectedVersion int) error {
			assert.Equal(t, current.Version(), expectedVersion)
			f.updated = tk
			return nil
		},
	}
	f.declines = &mockDeclineRecordRepository{
		CreateFunc: func(ctx context.Context, r *ticket.DeclineRecord) error {
			f.recorded = append(f.recorded, r)
			return nil
		},
	}
	return f
}

func (f *updateFixture) useCase(opts UpdateTicketOptions) *UpdateTicketUseCase {
	uc := NewUpdateTicketUseCase(f.tickets, f.declines, f.tx, f.failures, opts, f.log)
	uc.now = fixedClock
	return uc
}

func TestUpdateTicketUseCase_Execute_CompletionGuard(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusInProgress, nil, nil)
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Status:   optional.Of("completed"),
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransitionError(err))
	assert.Equal(t, ticket.CompletionRequiresAssigneeMessage, apperrors.GetAppError(err).Message)
	assert.Nil(t, f.updated, "nothing must be persisted")
}

func TestUpdateTicketUseCase_Execute_Complete(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusInProgress, nil, nil)
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID:   1,
		Status:     optional.Of("completed"),
		AssignedTo: optional.Of("Tech B"),
	})

	require.NoError(t, err)
	assert.Equal(t, "completed", result.Ticket.Status)
	require.NotNil(t, result.Ticket.CompletedAt)
	assert.Equal(t, testNow, *result.Ticket.CompletedAt)
	assert.Equal(t, 2, result.Ticket.Version)
	assert.Empty(t, f.recorded)
}

func TestUpdateTicketUseCase_Execute_DeclineLogged(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusPending, nil, nil)
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID:   1,
		Status:     optional.Of("declined"),
		Remarks:    optional.Of("duplicate ticket"),
		DeclinedBy: "A. Reyes",
	})

	require.NoError(t, err)
	assert.True(t, result.DeclineLogged)
	assert.Equal(t, "declined", result.Ticket.Status)
	require.Len(t, f.recorded, 1)
	assert.Equal(t, "duplicate ticket", f.recorded[0].DeclineReason())
	assert.Equal(t, "A. Reyes", f.recorded[0].DeclinedBy())
	assert.Equal(t, uint(1), f.recorded[0].TicketID())
	assert.Equal(t, 0, f.tx.calls)
}

func TestUpdateTicketUseCase_Execute_DeclineWithoutRemarks(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusPending, nil, nil)
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Status:   optional.Of("declined"),
	})

	require.NoError(t, err)
	assert.Equal(t, "declined", result.Ticket.Status)
	assert.False(t, result.DeclineLogged)
	assert.Empty(t, f.recorded)
}

func TestUpdateTicketUseCase_Execute_DeclineLogFailureSwallowed(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusPending, nil, nil)
	f := newUpdateFixture(t, current)
	f.declines.CreateFunc = func(ctx context.Context, r *ticket.DeclineRecord) error {
		return errors.New("declined_tickets table missing")
	}

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Status:   optional.Of("declined"),
		Remarks:  optional.Of("owner unreachable"),
	})

	require.NoError(t, err)
	assert.Equal(t, "declined", result.Ticket.Status)
	assert.False(t, result.DeclineLogged)
	require.NotNil(t, f.updated)
	assert.Equal(t, 1, f.failures.count)
	assert.Contains(t, f.log.warnings(), "failed to write decline record")
}

func TestUpdateTicketUseCase_Execute_TransactionalDeclineLog(t *testing.T) {
	t.Run("both writes in one transaction", func(t *testing.T) {
		current := storedTicket(t, 1, vo.StatusPending, nil, nil)
		f := newUpdateFixture(t, current)

		result, err := f.useCase(UpdateTicketOptions{TransactionalDeclineLog: true}).Execute(context.Background(), UpdateTicketCommand{
			TicketID: 1,
			Status:   optional.Of("declined"),
			Remarks:  optional.Of("duplicate"),
		})

		require.NoError(t, err)
		assert.True(t, result.DeclineLogged)
		assert.Equal(t, 1, f.tx.calls)
		assert.Len(t, f.recorded, 1)
	})

	t.Run("decline failure fails the update", func(t *testing.T) {
		current := storedTicket(t, 1, vo.StatusPending, nil, nil)
		f := newUpdateFixture(t, current)
		f.declines.CreateFunc = func(ctx context.Context, r *ticket.DeclineRecord) error {
			return errors.New("insert failed")
		}

		result, err := f.useCase(UpdateTicketOptions{TransactionalDeclineLog: true}).Execute(context.Background(), UpdateTicketCommand{
			TicketID: 1,
			Status:   optional.Of("declined"),
			Remarks:  optional.Of("duplicate"),
		})

		assert.Nil(t, result)
		assert.EqualError(t, err, "insert failed")
		assert.Equal(t, 0, f.failures.count)
	})
}

func TestUpdateTicketUseCase_Execute_PartialMerge(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusPending, strPtr("Tech A"), strPtr("awaiting parts"))
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Status:   optional.Of("in_progress"),
	})

	require.NoError(t, err)
	got := result.Ticket
	assert.Equal(t, "in_progress", got.Status)
	assert.Equal(t, current.OwnerName(), got.OwnerName)
	assert.Equal(t, current.Facility(), got.Facility)
	assert.Equal(t, "Tech A", *got.AssignedTo)
	assert.Equal(t, "awaiting parts", *got.Remarks)
}

func TestUpdateTicketUseCase_Execute_ExplicitNullClearsRemarks(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusInProgress, nil, strPtr("awaiting parts"))
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Remarks:  optional.Null[string](),
	})

	require.NoError(t, err)
	assert.Nil(t, result.Ticket.Remarks)
}

func TestUpdateTicketUseCase_Execute_KeepsAngleBracketsInDeclineReason(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusPending, nil, nil)
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID:   1,
		Status:     optional.Of("declined"),
		Remarks:    optional.Of("  repair cost > 50% of unit price, fan ratio a < b  "),
		Facility:   optional.Of("er"),
		DeclinedBy: "A. Reyes",
	})

	require.NoError(t, err)
	assert.Equal(t, "repair cost > 50% of unit price, fan ratio a < b", *result.Ticket.Remarks)
	assert.Equal(t, "ER", result.Ticket.Facility)
	require.Len(t, f.recorded, 1)
	assert.Equal(t, "repair cost > 50% of unit price, fan ratio a < b", f.recorded[0].DeclineReason())
}

func TestUpdateTicketUseCase_Execute_RejectsMarkup(t *testing.T) {
	tests := []struct {
		name    string
		command UpdateTicketCommand
		field   string
	}{
		{
			name:    "remarks",
			command: UpdateTicketCommand{TicketID: 1, Status: optional.Of("declined"), Remarks: optional.Of("fan ratio a<b and c>d")},
			field:   "remarks",
		},
		{
			name:    "facility",
			command: UpdateTicketCommand{TicketID: 1, Facility: optional.Of("<b>er</b>")},
			field:   "facility",
		},
		{
			name:    "assignee",
			command: UpdateTicketCommand{TicketID: 1, AssignedTo: optional.Of(`<img src=x onerror="alert(1)">`)},
			field:   "assigned_to",
		},
		{
			name:    "decliner",
			command: UpdateTicketCommand{TicketID: 1, Status: optional.Of("declined"), Remarks: optional.Of("duplicate"), DeclinedBy: "<i>Sam</i>"},
			field:   "declined_by",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUpdateFixture(t, storedTicket(t, 1, vo.StatusPending, nil, nil))

			result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), tt.command)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.field)
			assert.Nil(t, f.updated)
			assert.Empty(t, f.recorded)
		})
	}
}

func TestUpdateTicketUseCase_Execute_NoOpSkipsWrite(t *testing.T) {
	current := storedTicket(t, 1, vo.StatusInProgress, strPtr("Tech A"), nil)
	f := newUpdateFixture(t, current)

	result, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
		TicketID:   1,
		Status:     optional.Of("in_progress"),
		AssignedTo: optional.Of("Tech A"),
	})

	require.NoError(t, err)
	assert.Nil(t, f.updated)
	assert.Equal(t, current.Version(), result.Ticket.Version)
}

func TestUpdateTicketUseCase_Execute_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newUpdateFixture(t, storedTicket(t, 1, vo.StatusPending, nil, nil))
		_, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
			TicketID: 2,
			Status:   optional.Of("in_progress"),
		})
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newUpdateFixture(t, storedTicket(t, 1, vo.StatusPending, nil, nil))
		_, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
			TicketID: 1,
			Status:   optional.Of("on_hold"),
		})
		assert.True(t, apperrors.IsValidationError(err))
		assert.Nil(t, f.updated)
	})

	t.Run("version conflict", func(t *testing.T) {
		f := newUpdateFixture(t, storedTicket(t, 1, vo.StatusPending, nil, nil))
		f.tickets.UpdateFunc = func(ctx context.Context, tk *ticket.Ticket, expectedVersion int) error {
			return apperrors.NewConflictError("Ticket was modified by another request")
		}
		_, err := f.useCase(UpdateTicketOptions{}).Execute(context.Background(), UpdateTicketCommand{
			TicketID: 1,
			Status:   optional.Of("declined"),
			Remarks:  optional.Of("duplicate"),
		})
		assert.True(t, apperrors.IsConflictError(err))
		assert.Empty(t, f.recorded, "no decline record after a failed update")
	})

	t.Run("terminal policy", func(t *testing.T) {
		f := newUpdateFixture(t, storedTicket(t, 1, vo.StatusCompleted, strPtr("Tech A"), nil))
		opts := UpdateTicketOptions{Policy: ticket.Policy{TerminalStatuses: []vo.TicketStatus{vo.StatusCompleted}}}
		_, err := f.useCase(opts).Execute(context.Background(), UpdateTicketCommand{
			TicketID: 1,
			Status:   optional.Of("pending"),
		})
		assert.True(t, apperrors.IsInvalidTransitionError(err))
	})
}
