package handlers

import (
	"net/http"

	"delivery-manager/internal/logx"
)

// DashboardHandler serves GET /dashboard.
type DashboardHandler struct {
	usecase dashboardUsecase
	logger  logx.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(logger logx.Logger, uc dashboardUsecase) *DashboardHandler {
	return &DashboardHandler{usecase: uc, logger: logger}
}

// Stats handles GET /dashboard.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.usecase.Stats(r.Context())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statsToResponse(s))
}
