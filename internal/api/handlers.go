package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clinicflow/appointment-scheduling/internal/agent"
	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

func availabilityHandler(engine *schedule.Service, defaultDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			writeError(w, http.StatusBadRequest, "missing_date", "date query parameter is required (YYYY-MM-DD)")
			return
		}

		category, err := parseCategoryParam(r.URL.Query().Get("appointment_type"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_category", err.Error())
			return
		}

		daysParam := r.URL.Query().Get("days")
		if daysParam == "" {
			// all=true returns the whole grid with availability flags,
			// booked slots included.
			var slots []schedule.TimeSlot
			var err error
			if r.URL.Query().Get("all") == "true" {
				slots, err = engine.AvailableOnDate(date, category)
			} else {
				slots, err = engine.OpenSlots(date, category)
			}
			if err != nil {
				handleEngineError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, AvailabilityResponse{Date: date, AvailableSlots: slots})
			return
		}

		days, err := strconv.Atoi(daysParam)
		if err != nil || days < 1 {
			writeError(w, http.StatusBadRequest, "invalid_days", "days must be a positive integer")
			return
		}
		if days > defaultDays*4 {
			days = defaultDays * 4
		}

		availability, err := engine.AvailableOverRange(date, days, category)
		if err != nil {
			handleEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RangeAvailabilityResponse{
			StartDate:    date,
			Days:         days,
			Availability: availability,
		})
	}
}

func bookHandler(engine *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		category, err := parseCategoryParam(req.AppointmentType)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_category", err.Error())
			return
		}

		rec, err := engine.Reserve(category, req.Date, req.StartTime, req.Patient, req.Reason)
		if err != nil {
			handleEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, BookingResponse{
			BookingID:        rec.BookingID,
			Status:           string(rec.Status),
			ConfirmationCode: rec.ConfirmationCode,
			Details:          rec,
		})
	}
}

func cancelHandler(engine *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		cancelled := engine.Cancel(id)
		// Cancelling twice is not an error, the flag just comes back false.
		writeJSON(w, http.StatusOK, CancelResponse{BookingID: id, Cancelled: cancelled})
	}
}

func getBookingHandler(engine *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, ok := engine.Booking(id)
		if !ok {
			writeError(w, http.StatusNotFound, "booking_not_found", "no booking with id "+id)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func suggestHandler(engine *schedule.Service, defaultDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SuggestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		category, err := parseCategoryParam(req.AppointmentType)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_category", err.Error())
			return
		}

		window, err := schedule.ParseTimeWindow(req.TimePreference)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_time_preference", err.Error())
			return
		}

		prefs := schedule.Preferences{Window: window}
		if req.DatePreference != "" && req.DatePreference != "asap" {
			prefs.Date = schedule.OnDate(req.DatePreference)
		}

		days := req.DaysAhead
		if days < 1 {
			days = defaultDays
		}

		suggestions, err := engine.Suggest(prefs, category, days)
		if err != nil {
			handleEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: suggestions})
	}
}

func chatHandler(a *agent.Agent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "missing_message", "message is required")
			return
		}

		reply := a.ProcessMessage(req.Message, req.ConversationID)
		writeJSON(w, http.StatusOK, reply)
	}
}

func agentBookHandler(a *agent.Agent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AgentBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		category, err := parseCategoryParam(req.AppointmentType)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_category", err.Error())
			return
		}

		patient := schedule.Patient{
			Name:  req.PatientName,
			Email: req.PatientEmail,
			Phone: req.PatientPhone,
		}

		outcome := a.HandleBooking(category, req.Date, req.StartTime, patient, req.Reason, req.ConversationID)
		if !outcome.Success {
			handleEngineError(w, outcome.Err)
			return
		}
		writeJSON(w, http.StatusCreated, outcome)
	}
}

// parseCategoryParam defaults an absent category to consultation, matching
// the availability query's documented default.
func parseCategoryParam(s string) (schedule.Category, error) {
	if s == "" {
		return schedule.Consultation, nil
	}
	return schedule.ParseCategory(s)
}

func handleEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrSlotConflict):
		writeError(w, http.StatusConflict, "slot_already_booked", err.Error())
	case errors.Is(err, schedule.ErrInvalidSlot):
		writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
	case errors.Is(err, schedule.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, schedule.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "unknown_category", err.Error())
	case errors.Is(err, schedule.ErrInvalidPatient):
		writeError(w, http.StatusBadRequest, "invalid_patient", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}
