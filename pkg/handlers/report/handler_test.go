package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hm-tools/stay-atlas/pkg/models/api"
	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	reportsvc "github.com/hm-tools/stay-atlas/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateReport(ctx context.Context, w domain.Window) (*domain.Report, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func sampleReport(w domain.Window) *domain.Report {
	rating := 4.5
	return &domain.Report{
		Window:           w,
		TotalRevenue:     550,
		ReservationCount: 4,
		OccupancyRate:    0.5,
		AverageRating:    &rating,
		RevenueTrend: []domain.RevenuePoint{
			{Label: "2026-03-01", Revenue: 550},
		},
		TopRooms: []domain.RoomRank{
			{RoomID: 1, Name: "A", Bookings: 3, Revenue: 450},
			{RoomID: 2, Name: "B", Bookings: 1, Revenue: 100},
		},
		TopServices: []domain.ServiceRank{
			{ServiceID: 7, Name: "Spa", Bookings: 2, Revenue: 150},
		},
		GuestStatuses: []domain.StatusCount{
			{Status: "Confirmed", Guests: 3},
		},
	}
}

func TestGetReport(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	bounded := domain.NewWindow(start, end)

	tests := []struct {
		name           string
		url            string
		setupMock      func(*mockGenerator)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "no params means all time",
			url:  "/api/v1/reports",
			setupMock: func(m *mockGenerator) {
				m.On("GenerateReport", mock.Anything, domain.AllTimeWindow()).
					Return(sampleReport(domain.AllTimeWindow()), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var got api.Report
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.True(t, got.Window.AllTime)
				assert.Equal(t, 550.0, got.TotalRevenue)
				require.NotNil(t, got.AverageRating)
				assert.Equal(t, 4.5, *got.AverageRating)
				require.Len(t, got.TopRooms, 2)
				assert.Equal(t, "A", got.TopRooms[0].Name)
			},
		},
		{
			name: "explicit window",
			url:  "/api/v1/reports?from=01-03-2026&to=11-03-2026",
			setupMock: func(m *mockGenerator) {
				m.On("GenerateReport", mock.Anything, bounded).
					Return(sampleReport(bounded), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var got api.Report
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.False(t, got.Window.AllTime)
				require.NotNil(t, got.Window.Start)
				assert.Equal(t, start, *got.Window.Start)
			},
		},
		{
			name:           "malformed date",
			url:            "/api/v1/reports?from=2026-03-01&to=11-03-2026",
			setupMock:      func(m *mockGenerator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "lone from param",
			url:            "/api/v1/reports?from=01-03-2026",
			setupMock:      func(m *mockGenerator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "start after end",
			url:  "/api/v1/reports?from=10-03-2026&to=01-03-2026",
			setupMock: func(m *mockGenerator) {
				m.On("GenerateReport", mock.Anything, mock.Anything).
					Return(nil, reportsvc.ErrInvalidWindow)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage down",
			url:  "/api/v1/reports",
			setupMock: func(m *mockGenerator) {
				m.On("GenerateReport", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: payments: dial tcp", reportsvc.ErrDataUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(mockGenerator)
			tt.setupMock(gen)
			h := NewHandler(gen)

			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()
			h.GetReport(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
			if tt.expectedStatus != http.StatusOK {
				var apiErr api.Error
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
				assert.NotEmpty(t, apiErr.Error)
			}
			gen.AssertExpectations(t)
		})
	}
}

func TestGetReport_EmptyListsAreNotNull(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("GenerateReport", mock.Anything, mock.Anything).
		Return(&domain.Report{Window: domain.AllTimeWindow()}, nil)
	h := NewHandler(gen)

	req := httptest.NewRequest("GET", "/api/v1/reports", nil)
	rec := httptest.NewRecorder()
	h.GetReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))

	assert.JSONEq(t, "null", string(raw["average_rating"]))
	for _, field := range []string{"revenue_trend", "top_rooms", "top_services", "guest_statuses"} {
		assert.JSONEq(t, "[]", string(raw[field]), field)
	}
}

func TestGetReportExport(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("GenerateReport", mock.Anything, domain.AllTimeWindow()).
		Return(sampleReport(domain.AllTimeWindow()), nil)
	h := NewHandler(gen)

	req := httptest.NewRequest("GET", "/api/v1/reports/export", nil)
	rec := httptest.NewRecorder()
	h.GetReportExport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stay-atlas-report.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	revenue, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "550", revenue)

	room, err := f.GetCellValue("Top Rooms", "A2")
	require.NoError(t, err)
	assert.Equal(t, "A", room)

	bucket, err := f.GetCellValue("Revenue Trend", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", bucket)
}
