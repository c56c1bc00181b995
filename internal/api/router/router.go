// Package router wires every HTTP endpoint of the clinic site.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/drkailash/clinic-platform/internal/appointments"
	"github.com/drkailash/clinic-platform/internal/assistant"
	"github.com/drkailash/clinic-platform/internal/auth"
	"github.com/drkailash/clinic-platform/internal/contact"
	httpmiddleware "github.com/drkailash/clinic-platform/internal/http/middleware"
	"github.com/drkailash/clinic-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	ContactHandler      *contact.Handler
	AuthHandler         *auth.Handler
	AssistantHandler    *assistant.Handler
	MetricsHandler      http.Handler

	SessionJWTSecret   string
	CORSAllowedOrigins []string

	// Abuse limits for the public endpoints; zero disables the limiter.
	LoginRateLimit  float64
	LoginRateBurst  int
	SubmitRateLimit float64
	SubmitRateBurst int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints: health, metrics, the booking and contact forms and
	// the doctor's login.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		submitLimited := public
		if cfg.SubmitRateLimit > 0 {
			submitLimited = public.With(httpmiddleware.RateLimit(cfg.SubmitRateLimit, cfg.SubmitRateBurst))
		}
		if cfg.AppointmentsHandler != nil {
			submitLimited.Post("/api/appointments", cfg.AppointmentsHandler.Create)
		}
		if cfg.ContactHandler != nil {
			submitLimited.Post("/api/contact", cfg.ContactHandler.Submit)
		}

		if cfg.AuthHandler != nil {
			loginLimited := public
			if cfg.LoginRateLimit > 0 {
				loginLimited = public.With(httpmiddleware.RateLimit(cfg.LoginRateLimit, cfg.LoginRateBurst))
			}
			loginLimited.Post("/api/auth/login", cfg.AuthHandler.Login)
		}
	})

	// Doctor-only endpoints behind the session token.
	r.Group(func(doctor chi.Router) {
		doctor.Use(httpmiddleware.DoctorJWT(cfg.SessionJWTSecret))

		if cfg.AppointmentsHandler != nil {
			doctor.Get("/api/appointments", cfg.AppointmentsHandler.List)
			doctor.Post("/api/appointments/{id}/complete", cfg.AppointmentsHandler.Complete)
			doctor.Post("/api/appointments/{id}/cancel", cfg.AppointmentsHandler.Cancel)
		}
		if cfg.AssistantHandler != nil {
			doctor.Post("/api/assistant/diagnose", cfg.AssistantHandler.Diagnose)
		}
		if cfg.AuthHandler != nil {
			doctor.Post("/api/auth/logout", cfg.AuthHandler.Logout)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
