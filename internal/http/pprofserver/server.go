package pprofserver

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const realm = "pprof"

// Config stores pprof server settings.
type Config struct {
	Addr string
	User string
	Pass string
}

// Handler serves chi's profiler under /debug. Loopback clients skip auth,
// everyone else needs basic auth, and without credentials configured they are refused.
func Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(guard(cfg))
	r.Mount("/debug", chimw.Profiler())
	return r
}

// NewServer wraps Handler in a server bound to cfg.Addr.
func NewServer(cfg Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func guard(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		withAuth := chimw.BasicAuth(realm, map[string]string{cfg.User: cfg.Pass})(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case isLoopback(r.RemoteAddr):
				next.ServeHTTP(w, r)
			case cfg.User == "" || cfg.Pass == "":
				w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
				w.WriteHeader(http.StatusUnauthorized)
			default:
				withAuth.ServeHTTP(w, r)
			}
		})
	}
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
