// Package agent is the conversational layer in front of the booking engine.
// It detects what the patient wants from free text, extracts structured
// preferences, and answers with templated responses. Every scheduling
// decision goes through the engine's public API; the agent never inspects
// or mutates ledger state directly.
package agent

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/clinicflow/appointment-scheduling/internal/faq"
	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

type Intent string

const (
	IntentScheduling Intent = "scheduling"
	IntentFAQ        Intent = "faq"
	IntentBoth       Intent = "both"
	IntentGeneral    Intent = "general"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Agent drives patient conversations. Conversation history is the only
// state it owns.
type Agent struct {
	engine    *schedule.Service
	store     *faq.Store
	phone     string
	daysAhead int

	mu            sync.Mutex
	conversations map[string][]Message
}

func New(engine *schedule.Service, store *faq.Store, clinicPhone string, daysAhead int) *Agent {
	return &Agent{
		engine:        engine,
		store:         store,
		phone:         clinicPhone,
		daysAhead:     daysAhead,
		conversations: make(map[string][]Message),
	}
}

// Reply is what the chat endpoint returns to the caller.
type Reply struct {
	Response       string          `json:"response"`
	ConversationID string          `json:"conversation_id"`
	Intent         Intent          `json:"intent"`
	RequiresInfo   map[string]bool `json:"requires_info,omitempty"`
}

// ProcessMessage handles one free-text message from the patient.
func (a *Agent) ProcessMessage(message, conversationID string) Reply {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	a.record(conversationID, "user", message)

	intent := DetectIntent(message)

	var parts []string
	requires := make(map[string]bool)

	if intent == IntentFAQ || intent == IntentBoth {
		if answer := a.store.Answer(message); answer != "" {
			parts = append(parts, answer)
		} else {
			parts = append(parts, fmt.Sprintf(
				"I don't have that information on hand. Please call our office at %s and we'll be happy to help.", a.phone))
		}
	}

	if intent == IntentScheduling || intent == IntentBoth {
		prefs := ExtractPreferences(message)
		suggestions, err := a.engine.Suggest(prefs, schedule.Consultation, a.daysAhead)
		switch {
		case err != nil || len(suggestions) == 0:
			parts = append(parts, fmt.Sprintf(
				"I couldn't find any open appointments right now. Please call our office at %s to check for cancellations.", a.phone))
		default:
			parts = append(parts, formatSuggestions(suggestions))
			parts = append(parts, "To book one of these, I just need your full name, email address and phone number.")
			requires["name"] = true
			requires["email"] = true
			requires["phone"] = true
		}
	}

	if len(parts) == 0 {
		parts = append(parts,
			"Hello! I can help you schedule an appointment or answer questions about the clinic. What can I do for you?")
	}

	response := strings.Join(parts, "\n\n")
	a.record(conversationID, "assistant", response)

	if len(requires) == 0 {
		requires = nil
	}
	return Reply{
		Response:       response,
		ConversationID: conversationID,
		Intent:         intent,
		RequiresInfo:   requires,
	}
}

// BookingOutcome wraps a booking attempt with the patient-facing text.
type BookingOutcome struct {
	Success  bool                    `json:"success"`
	Response string                  `json:"response"`
	Booking  *schedule.BookingRecord `json:"booking_details,omitempty"`
	Err      error                   `json:"-"`
}

// HandleBooking commits a reservation once the conversation has collected
// every required patient field.
func (a *Agent) HandleBooking(category schedule.Category, date, start string, patient schedule.Patient, reason, conversationID string) BookingOutcome {
	rec, err := a.engine.Reserve(category, date, start, patient, reason)
	if err != nil {
		response := fmt.Sprintf(
			"I'm sorry, I couldn't book that appointment: %v. Please pick another time or call our office at %s.",
			err, a.phone)
		a.record(conversationID, "assistant", response)
		return BookingOutcome{Success: false, Response: response, Err: err}
	}

	response := fmt.Sprintf(`Your appointment is confirmed!

Booking Details:
- Booking ID: %s
- Confirmation Code: %s
- Date: %s
- Time: %s
- Appointment Type: %s
- Patient: %s
- Email: %s

You will receive a confirmation email. Is there anything else I can help you with?`,
		rec.BookingID, rec.ConfirmationCode, rec.Date, rec.StartTime, rec.Category, rec.Patient.Name, rec.Patient.Email)

	a.record(conversationID, "assistant", response)
	return BookingOutcome{Success: true, Response: response, Booking: rec}
}

// History returns a copy of the conversation so far.
func (a *Agent) History(conversationID string) []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	msgs := a.conversations[conversationID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

func (a *Agent) record(conversationID, role, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conversations[conversationID] = append(a.conversations[conversationID], Message{Role: role, Content: content})
}

func formatSuggestions(suggestions []schedule.Suggestion) string {
	lines := []string{"Here are some openings that might work for you:"}
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("- %s %s at %s (%s)", s.Day, s.Date, s.Time, s.Reason))
	}
	return strings.Join(lines, "\n")
}
