package api

import (
	"net/http"

	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

type HealthHandler struct {
	engine   *schedule.Service
	faqReady bool
	env      string
	version  string
}

func NewHealthHandler(engine *schedule.Service, faqReady bool, env, version string) *HealthHandler {
	return &HealthHandler{
		engine:   engine,
		faqReady: faqReady,
		env:      env,
		version:  version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status         string            `json:"status"`
	Version        string            `json:"version,omitempty"`
	Env            string            `json:"env,omitempty"`
	ActiveBookings int               `json:"active_bookings"`
	Dependencies   map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

// Readiness reports on the engine and the FAQ knowledge base. A missing
// knowledge base degrades the service (chat still schedules) rather than
// failing it.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{"ledger": "ok"}
	status := "ok"

	if h.faqReady {
		deps["clinic_info"] = "ok"
	} else {
		deps["clinic_info"] = "not_loaded"
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status:         status,
		Version:        h.version,
		Env:            h.env,
		ActiveBookings: h.engine.ActiveBookings(),
		Dependencies:   deps,
	})
}
