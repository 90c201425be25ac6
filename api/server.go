/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind a proxy
  3. requestLog: One structured log line per request (slog)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for the editor frontend
  6. Locale:     Accept-Language negotiation for messages

ROUTE GROUPS:
  /api/turnos/*     Template catalog
  /api/config       Working-hours settings
  /api/cells/*      Single-cell computations
  /api/weeks/*      Posted-week computations
  /api/reports/*    Posted-week reports
  /healthz          Liveness probe

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultCORSOrigins is used when no origins are configured.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	if len(corsOrigins) == 0 {
		corsOrigins = DefaultCORSOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLog(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		ExposedHeaders:   []string{"Content-Language"},
		AllowCredentials: true,
	}))
	r.Use(h.Translator.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/turnos", func(r chi.Router) {
			r.Get("/", h.ListTurnos)
			r.Post("/", h.CreateTurno)
			r.Get("/{id}", h.GetTurno)
			r.Delete("/{id}", h.DeleteTurno)
		})

		r.Get("/config", h.GetConfig)
		r.Put("/config", h.UpdateConfig)

		r.Route("/cells", func(r chi.Router) {
			r.Post("/validate", h.ValidateCell)
			r.Post("/hours", h.CellHours)
			r.Post("/split-leave", h.SplitLeave)
			r.Post("/leave-presets", h.LeavePresets)
		})

		r.Route("/weeks", func(r chi.Router) {
			r.Post("/overlaps", h.WeekOverlaps)
			r.Post("/day-status", h.WeekDayStatus)
		})
		r.Post("/reports/employee", h.EmployeeReport)
	})

	return r
}

func requestLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request handled",
				"status", ww.Status(),
				"method", r.Method,
				"path", r.URL.Path,
				"ip", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start),
			)
		})
	}
}
