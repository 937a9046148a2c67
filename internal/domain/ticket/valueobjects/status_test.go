package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TicketStatus
		wantErr bool
	}{
		{input: "pending", want: StatusPending},
		{input: "in_progress", want: StatusInProgress},
		{input: "completed", want: StatusCompleted},
		{input: "not_functioning", want: StatusNotFunctioning},
		{input: "declined", want: StatusDeclined},
		{input: "cancelled", want: StatusDeclined},
		{input: "  Completed ", want: StatusCompleted},
		{input: "done", wantErr: true},
		{input: "", wantErr: true},
		{input: "rejected", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTicketStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketStatus_IsDeclined(t *testing.T) {
	assert.True(t, StatusDeclined.IsDeclined())
	assert.True(t, StatusCancelled.IsDeclined())
	assert.False(t, StatusPending.IsDeclined())
	assert.False(t, StatusCompleted.IsDeclined())
}

func TestTicketStatus_Equivalent(t *testing.T) {
	assert.True(t, StatusCancelled.Equivalent(StatusDeclined))
	assert.True(t, StatusPending.Equivalent(StatusPending))
	assert.False(t, StatusPending.Equivalent(StatusInProgress))
}

func TestAllStatuses_AreValidAndCanonical(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), s)
		assert.Equal(t, s, s.Canonical())
	}
}
