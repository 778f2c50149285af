package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/http/handlers"
	"delivery-manager/internal/service/health"
)

func TestDashboardHandler_Stats(t *testing.T) {
	t.Parallel()

	uc := &stubDashboardUsecase{
		statsFn: func(context.Context) (domain.DashboardStats, error) {
			return domain.DashboardStats{TotalOrders: 3, TotalAvailableDrivers: 1, TotalCompletedOrders: 1, TotalInProgressOrders: 1}, nil
		},
	}
	w := httptest.NewRecorder()
	handlers.NewDashboardHandler(testLogger(), uc).Stats(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalOrders":3,"totalAvailableDrivers":1,"totalCompletedOrders":1,"totalInProgressOrders":1}`, w.Body.String())
}

func TestDashboardHandler_Stats_Error(t *testing.T) {
	t.Parallel()

	uc := &stubDashboardUsecase{
		statsFn: func(context.Context) (domain.DashboardStats, error) {
			return domain.DashboardStats{}, errors.New("db down")
		},
	}
	w := httptest.NewRecorder()
	handlers.NewDashboardHandler(testLogger(), uc).Stats(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestHealthHandler_Check_AlwaysOK(t *testing.T) {
	t.Parallel()

	rt := 1500 * time.Microsecond
	uc := &stubHealthUsecase{report: health.Report{
		Status:      health.StatusError,
		Timestamp:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Database:    health.DatabaseDisconnected,
		Environment: "test",
		Uptime:      90 * time.Second,
		Version:     "1.2.3",
		Services: health.Services{
			Database: health.Probe{Status: health.DatabaseDisconnected, ResponseTime: &rt, Error: "dial tcp: refused"},
			API:      health.Probe{Status: health.APIDisabled},
		},
	}}
	w := httptest.NewRecorder()
	handlers.NewHealthHandler(testLogger(), uc).Check(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status":"error",
		"timestamp":"2024-01-02T03:04:05Z",
		"database":"disconnected",
		"environment":"test",
		"uptime":90,
		"version":"1.2.3",
		"services":{
			"database":{"status":"disconnected","responseTime":1.5,"error":"dial tcp: refused"},
			"api":{"status":"disabled"}
		}
	}`, w.Body.String())
}
