package declinerecord

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/usecases"
	"github.com/HIMU202508/TicketingSystem/internal/interfaces/http/handlers/testutil"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
)

type mockListUC struct {
	got    usecases.ListDeclineRecordsQuery
	result *usecases.ListDeclineRecordsResult
	err    error
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListDeclineRecordsQuery) (*usecases.ListDeclineRecordsResult, error) {
	m.got = q
	if m.result != nil {
		m.result.Filtered = q.Search != "" || q.Facility != "" || q.DeclinedBy != ""
	}
	return m.result, m.err
}

type mockStatsUC struct {
	calls  int
	result *ticketdto.DeclineStatsDTO
	err    error
}

func (m *mockStatsUC) Execute(_ context.Context) (*ticketdto.DeclineStatsDTO, error) {
	m.calls++
	return m.result, m.err
}

func newTestHandler() (*Handler, *mockListUC, *mockStatsUC) {
	list := &mockListUC{result: &usecases.ListDeclineRecordsResult{
		Records:  []*ticketdto.DeclineRecordDTO{{ID: 1, TicketNumber: "LA20250101001", DeclinedBy: "A. Reyes"}},
		Total:    1,
		Page:     1,
		PageSize: constants.DefaultDeclinePageSize,
	}}
	stats := &mockStatsUC{result: &ticketdto.DeclineStatsDTO{
		TotalDeclined: 4,
		DeclinedToday: 1,
		ByFacility:    map[string]int64{"ER": 3, "Unknown": 1},
		ByDeclinedBy:  map[string]int64{"System": 4},
	}}
	return NewHandler(list, stats, usecases.PageLimits{}, testutil.NewMockLogger()), list, stats
}

func TestHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		query     map[string]string
		wantQuery usecases.ListDeclineRecordsQuery
		wantCache string
	}{
		{
			name:      "unfiltered",
			query:     map[string]string{},
			wantQuery: usecases.ListDeclineRecordsQuery{Page: 1, PageSize: constants.DefaultDeclinePageSize},
			wantCache: "public, max-age=30",
		},
		{
			name:  "filtered",
			query: map[string]string{"search": " laptop ", "facility": "er", "declined_by": "A. Reyes", "page": "3", "limit": "500"},
			wantQuery: usecases.ListDeclineRecordsQuery{
				Search: "laptop", Facility: "er", DeclinedBy: "A. Reyes",
				Page: 3, PageSize: constants.MaxDeclinePageSize,
			},
			wantCache: "public, max-age=10",
		},
		{
			name:      "rejected_by alias",
			query:     map[string]string{"rejected_by": "System"},
			wantQuery: usecases.ListDeclineRecordsQuery{DeclinedBy: "System", Page: 1, PageSize: constants.DefaultDeclinePageSize},
			wantCache: "public, max-age=10",
		},
		{
			name:      "export",
			query:     map[string]string{"export": "true"},
			wantQuery: usecases.ListDeclineRecordsQuery{Page: 1, PageSize: constants.DefaultDeclinePageSize, Export: true},
			wantCache: "public, max-age=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, list, _ := newTestHandler()

			c, w := testutil.NewTestContext(http.MethodGet, "/api/declined-tickets", nil)
			testutil.SetQueryParams(c, tt.query)
			handler.List(c)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantQuery, list.got)
			assert.Equal(t, tt.wantCache, w.Header().Get("Cache-Control"))
		})
	}
}

func TestHandler_List_StorageError(t *testing.T) {
	handler, list, _ := newTestHandler()
	list.result = nil
	list.err = assert.AnError

	c, w := testutil.NewTestContext(http.MethodGet, "/api/declined-tickets", nil)
	handler.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_Stats(t *testing.T) {
	handler, _, stats := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/declined-tickets/stats", nil)
	handler.Stats(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stats.calls)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, float64(4), data["total_declined"])
	assert.Equal(t, float64(1), data["declined_today"])
	assert.Contains(t, data, "by_facility")
	assert.Contains(t, data, "by_declined_by")
}

func TestHandler_Action(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantStats int
		wantMsg   string
	}{
		{name: "stats", body: `{"action":"stats"}`, wantCode: http.StatusOK, wantStats: 1},
		{name: "unknown action", body: `{"action":"purge"}`, wantCode: http.StatusBadRequest, wantMsg: "Invalid action"},
		{name: "missing action", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "malformed", body: `{"action":`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _, stats := newTestHandler()

			c, w := testutil.NewTestContext(http.MethodPost, "/api/declined-tickets", tt.body)
			handler.Action(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantStats, stats.calls)
			if tt.wantMsg != "" {
				var resp testutil.APIResponse
				require.NoError(t, testutil.ParseResponse(w, &resp))
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestHandler_Stats_Error(t *testing.T) {
	handler, _, stats := newTestHandler()
	stats.err = errors.NewInternalError("boom")

	c, w := testutil.NewTestContext(http.MethodGet, "/api/declined-tickets/stats", nil)
	handler.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
