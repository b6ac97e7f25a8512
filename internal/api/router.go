package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicflow/appointment-scheduling/internal/agent"
	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

type RouterConfig struct {
	Engine           *schedule.Service
	Agent            *agent.Agent
	FAQReady         bool
	DefaultDaysAhead int
	Env              string
	Version          string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.Engine, cfg.FAQReady, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Scheduling engine endpoints
	r.Route("/api/calendly", func(r chi.Router) {
		r.Get("/availability", availabilityHandler(cfg.Engine, cfg.DefaultDaysAhead))
		r.Post("/book", bookHandler(cfg.Engine))
		r.Get("/bookings/{id}", getBookingHandler(cfg.Engine))
		r.Delete("/bookings/{id}", cancelHandler(cfg.Engine))
	})

	// Preference-ranked suggestions and the conversational layer
	r.Post("/api/suggest", suggestHandler(cfg.Engine, cfg.DefaultDaysAhead))
	r.Post("/api/chat", chatHandler(cfg.Agent))
	r.Post("/api/book", agentBookHandler(cfg.Agent))

	return r
}
