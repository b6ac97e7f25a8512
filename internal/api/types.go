package api

import (
	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

type AvailabilityResponse struct {
	Date           string              `json:"date"`
	AvailableSlots []schedule.TimeSlot `json:"available_slots"`
}

type RangeAvailabilityResponse struct {
	StartDate    string                     `json:"start_date"`
	Days         int                        `json:"days"`
	Availability []schedule.DayAvailability `json:"availability"`
}

type BookingRequest struct {
	AppointmentType string           `json:"appointment_type"`
	Date            string           `json:"date"`
	StartTime       string           `json:"start_time"`
	Patient         schedule.Patient `json:"patient"`
	Reason          string           `json:"reason,omitempty"`
}

type BookingResponse struct {
	BookingID        string                  `json:"booking_id"`
	Status           string                  `json:"status"`
	ConfirmationCode string                  `json:"confirmation_code"`
	Details          *schedule.BookingRecord `json:"details"`
}

type CancelResponse struct {
	BookingID string `json:"booking_id"`
	Cancelled bool   `json:"cancelled"`
}

type SuggestRequest struct {
	AppointmentType string `json:"appointment_type"`
	TimePreference  string `json:"time_preference,omitempty"`
	DatePreference  string `json:"date_preference,omitempty"` // "asap", empty, or YYYY-MM-DD
	DaysAhead       int    `json:"days_ahead,omitempty"`
}

type SuggestResponse struct {
	Suggestions []schedule.Suggestion `json:"suggestions"`
}

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type AgentBookingRequest struct {
	AppointmentType string `json:"appointment_type"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	PatientName     string `json:"patient_name"`
	PatientEmail    string `json:"patient_email"`
	PatientPhone    string `json:"patient_phone"`
	Reason          string `json:"reason,omitempty"`
	ConversationID  string `json:"conversation_id,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
