package handlers

import (
	"net/http"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	usecase authUsecase
	logger  logx.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(logger logx.Logger, uc authUsecase) *AuthHandler {
	return &AuthHandler{usecase: uc, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	u, token, err := h.usecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, authResponse{User: userToResponse(u), Token: token})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	in := domain.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  domain.Role(req.Role),
		Phone: req.Phone,
	}
	u, token, err := h.usecase.Register(r.Context(), in, req.Password)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, authResponse{User: userToResponse(u), Token: token})
}
