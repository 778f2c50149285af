package handlers

import (
	"net/http"

	"delivery-manager/internal/logx"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	usecase healthUsecase
	logger  logx.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(logger logx.Logger, uc healthUsecase) *HealthHandler {
	return &HealthHandler{usecase: uc, logger: logger}
}

// Check always answers 200, the verdict is in the body.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, reportToResponse(h.usecase.Check(r.Context())))
}
