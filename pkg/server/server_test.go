package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hm-tools/stay-atlas/pkg/models/api"
	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	gen := new(mockGenerator)
	gen.On("GenerateReport", mock.Anything, domain.AllTimeWindow()).
		Return(&domain.Report{
			Window:           domain.AllTimeWindow(),
			TotalRevenue:     1250,
			ReservationCount: 9,
		}, nil)

	router := ConfigureRouter(Config{
		Addr: ":8080",
		Dependencies: Dependencies{
			Reports: gen,
			Logger:  logger,
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	t.Run("GetReport", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/reports")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var report api.Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, 1250.0, report.TotalRevenue)
		assert.Equal(t, 9, report.ReservationCount)
	})

	t.Run("GetReportExport", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/reports/export")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			resp.Header.Get("Content-Type"))
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	gen.AssertExpectations(t)
}
