package handlers

import (
	"net/http"
	"strings"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// OrderHandler serves the admin order routes.
type OrderHandler struct {
	orders   orderUsecase
	assigner assignUsecase
	logger   logx.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(logger logx.Logger, orders orderUsecase, assigner assignUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, assigner: assigner, logger: logger}
}

// List handles GET /orders?status=&search=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.OrderFilter{Search: strings.TrimSpace(q.Get("search"))}
	if s := q.Get("status"); s != "" {
		st := domain.OrderStatus(s)
		f.Status = &st
	}

	list, err := h.orders.List(r.Context(), f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.orders.Create(r.Context(), req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, orderToResponse(o))
}

// Assign handles POST /orders/assign.
func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.assigner.Assign(r.Context(), int64(req.OrderID), int64(req.DriverID))
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignResultToResponse(res))
}
