package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
)

func TestListDeclineRecordsUseCase_Execute(t *testing.T) {
	tests := []struct {
		name         string
		query        ListDeclineRecordsQuery
		wantFilter   ticket.DeclineRecordFilter
		wantFiltered bool
	}{
		{
			name:       "defaults",
			query:      ListDeclineRecordsQuery{},
			wantFilter: ticket.DeclineRecordFilter{Page: 1, PageSize: 20, CountMode: ticket.CountApproximate},
		},
		{
			name:  "filters are trimmed and facility upper-cased",
			query: ListDeclineRecordsQuery{Search: " jam ", Facility: " er ", DeclinedBy: " A. Reyes ", Page: 2, PageSize: 150},
			wantFilter: ticket.DeclineRecordFilter{
				Search: "jam", Facility: "er", DeclinedBy: "A. Reyes",
				Page: 2, PageSize: 100, CountMode: ticket.CountApproximate,
			},
			wantFiltered: true,
		},
		{
			name:       "export",
			query:      ListDeclineRecordsQuery{Page: 3, Export: true},
			wantFilter: ticket.DeclineRecordFilter{Page: 1, PageSize: 0, CountMode: ticket.CountExact},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ticket.DeclineRecordFilter
			repo := &mockDeclineRecordRepository{
				ListFunc: func(ctx context.Context, filter ticket.DeclineRecordFilter) ([]*ticket.DeclineRecord, int64, error) {
					got = filter
					return []*ticket.DeclineRecord{storedDeclineRecord(t, 1, "A. Reyes")}, 7, nil
				},
			}

			result, err := NewListDeclineRecordsUseCase(repo, PageLimits{}, &mockLogger{}).Execute(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilter, got)
			assert.Equal(t, tt.wantFiltered, result.Filtered)
			assert.Equal(t, int64(7), result.Total)
			require.Len(t, result.Records, 1)
			assert.Equal(t, "Out of warranty", result.Records[0].DeclineReason)
		})
	}
}

func TestListDeclineRecordsUseCase_Execute_RepositoryError(t *testing.T) {
	repo := &mockDeclineRecordRepository{
		ListFunc: func(ctx context.Context, filter ticket.DeclineRecordFilter) ([]*ticket.DeclineRecord, int64, error) {
			return nil, 0, errors.New("timeout")
		},
	}
	_, err := NewListDeclineRecordsUseCase(repo, PageLimits{}, &mockLogger{}).Execute(context.Background(), ListDeclineRecordsQuery{})
	assert.Error(t, err)
}
