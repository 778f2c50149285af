package middleware

import (
	"encoding/json"
	"net/http"
	"slices"

	chimw "github.com/go-chi/chi/v5/middleware"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/auth"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
)

// TokenParser turns a bearer token into the caller's session.
type TokenParser interface {
	Parse(raw string) (domain.Session, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// session in the request context.
func Authenticate(tokens TokenParser, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			sess, err := tokens.Parse(raw)
			if err != nil {
				logger.Debug("token rejected",
					logx.String("request_id", chimw.GetReqID(r.Context())),
					logx.Any("err", err),
				)
				deny(w, http.StatusUnauthorized, apperr.Message(err, "Unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}

// RequireRole lets through sessions holding one of roles. It must run after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	msg := "Access denied"
	if len(roles) == 1 {
		switch roles[0] {
		case domain.RoleAdmin:
			msg = "Admin access required"
		case domain.RoleDriver:
			msg = "Driver access required"
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := auth.SessionFrom(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !slices.Contains(roles, sess.Role) {
				deny(w, http.StatusForbidden, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
