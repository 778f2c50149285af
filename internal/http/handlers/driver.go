package handlers

import (
	"net/http"
	"strconv"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// DriverHandler serves driver account routes.
type DriverHandler struct {
	usecase driverUsecase
	logger  logx.Logger
}

// NewDriverHandler creates a DriverHandler.
func NewDriverHandler(logger logx.Logger, uc driverUsecase) *DriverHandler {
	return &DriverHandler{usecase: uc, logger: logger}
}

// List handles GET /drivers?available=true.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	var f domain.DriverFilter
	if s := r.URL.Query().Get("available"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid available filter")
			return
		}
		f.AvailableOnly = v
	}

	list, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, usersToResponse(list))
}

// GetByID handles GET /drivers/{id}.
func (h *DriverHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	u, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, userToResponse(u))
}

// Create handles POST /drivers.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Role != "" && domain.Role(req.Role) != domain.RoleDriver {
		writeError(h.logger, w, r, http.StatusBadRequest, "role must be driver")
		return
	}

	u, err := h.usecase.Create(r.Context(), req.toModel(), req.Password)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/drivers/"+strconv.FormatInt(u.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, userToResponse(u))
}

// Update handles PUT /drivers/{id}.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	u, err := h.usecase.Update(r.Context(), sess, req.toModel(id))
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, userToResponse(u))
}

// Delete handles DELETE /drivers/{id}.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.usecase.Delete(r.Context(), id); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, messageResponse{Message: "Driver deleted successfully"})
}
