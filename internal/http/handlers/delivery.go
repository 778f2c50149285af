package handlers

import (
	"net/http"
	"strconv"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// DeliveryHandler serves the delivery listing and the driver status updates.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// List handles GET /deliveries?driverId=&status=.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(h.logger, w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var f domain.DeliveryFilter
	if s := q.Get("driverId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid driverId")
			return
		}
		f.DriverID = &id
	}
	if s := q.Get("status"); s != "" {
		st := domain.DeliveryStatus(s)
		f.Status = &st
	}

	list, err := h.usecase.List(r.Context(), sess, f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// UpdateStatus handles PUT /deliveries/{id}.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid delivery id")
		return
	}
	var req updateDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.UpdateStatus(r.Context(), sess, domain.StatusUpdate{
		DeliveryID: id,
		Status:     domain.DeliveryStatus(req.Status),
		Notes:      req.Notes,
	})
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
}
