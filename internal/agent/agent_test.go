package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/appointment-scheduling/internal/faq"
	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

const clinicJSON = `{
	"general": {
		"name": "Sunrise Family Clinic",
		"hours": "Monday to Friday, 9 AM to 5 PM"
	},
	"insurance": {
		"accepted_plans": ["Aetna", "Blue Cross"]
	}
}`

func testAgent(t *testing.T) (*Agent, *schedule.Service) {
	t.Helper()
	grid := schedule.NewGrid(9, 17)
	engine := schedule.NewService(grid, schedule.NewLedger(grid))
	store := faq.NewStore()
	require.NoError(t, store.Load([]byte(clinicJSON)))
	return New(engine, store, "+1-555-123-4567", 7), engine
}

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"I'd like to book an appointment", IntentScheduling},
		{"What insurance do you accept?", IntentFAQ},
		{"What time slots are available this week?", IntentBoth},
		{"Hi there", IntentGeneral},
		{"when can I see the doctor and where do I park", IntentBoth},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectIntent(tc.message), "message: %s", tc.message)
	}
}

func TestExtractPreferences(t *testing.T) {
	prefs := ExtractPreferences("I'd prefer a morning visit")
	assert.Equal(t, schedule.WindowMorning, prefs.Window)
	assert.Empty(t, prefs.Date.Specific)

	prefs = ExtractPreferences("sometime in the afternoon on 2026-03-04 please")
	assert.Equal(t, schedule.WindowAfternoon, prefs.Window)
	assert.Equal(t, "2026-03-04", prefs.Date.Specific)

	prefs = ExtractPreferences("any evening works")
	assert.Equal(t, schedule.WindowEvening, prefs.Window)

	// "family" and "exam" must not read as "am".
	prefs = ExtractPreferences("a family exam")
	assert.Equal(t, schedule.WindowAny, prefs.Window)
}

func TestProcessMessageScheduling(t *testing.T) {
	a, _ := testAgent(t)

	reply := a.ProcessMessage("I need to book an appointment in the morning", "")
	assert.Equal(t, IntentScheduling, reply.Intent)
	assert.NotEmpty(t, reply.ConversationID)
	assert.Contains(t, reply.Response, "openings")
	assert.True(t, reply.RequiresInfo["name"])
	assert.True(t, reply.RequiresInfo["email"])
	assert.True(t, reply.RequiresInfo["phone"])

	history := a.History(reply.ConversationID)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
}

func TestProcessMessageFAQ(t *testing.T) {
	a, _ := testAgent(t)

	reply := a.ProcessMessage("What are your hours?", "conv-1")
	assert.Equal(t, IntentFAQ, reply.Intent)
	assert.Equal(t, "conv-1", reply.ConversationID)
	assert.Contains(t, reply.Response, "Monday to Friday")
	assert.Nil(t, reply.RequiresInfo)
}

func TestProcessMessageGeneral(t *testing.T) {
	a, _ := testAgent(t)

	reply := a.ProcessMessage("hello", "")
	assert.Equal(t, IntentGeneral, reply.Intent)
	assert.Contains(t, reply.Response, "schedule an appointment")
}

func TestHandleBookingSuccess(t *testing.T) {
	a, engine := testAgent(t)

	patient := schedule.Patient{Name: "Ada Jones", Email: "ada@example.com", Phone: "+1-555-0100"}
	date := futureDate(t, engine)

	out := a.HandleBooking(schedule.Consultation, date, "09:00", patient, "checkup", "conv-2")
	require.True(t, out.Success)
	require.NotNil(t, out.Booking)
	assert.Contains(t, out.Response, "Your appointment is confirmed!")
	assert.Contains(t, out.Response, out.Booking.BookingID)

	// The agent went through the engine, so the slot is really taken.
	slots, err := engine.AvailableOnDate(date, schedule.Consultation)
	require.NoError(t, err)
	assert.False(t, slots[0].Available)
}

func TestHandleBookingConflict(t *testing.T) {
	a, engine := testAgent(t)

	patient := schedule.Patient{Name: "Ada Jones", Email: "ada@example.com", Phone: "+1-555-0100"}
	date := futureDate(t, engine)

	first := a.HandleBooking(schedule.Consultation, date, "10:00", patient, "", "conv-3")
	require.True(t, first.Success)

	second := a.HandleBooking(schedule.Specialist, date, "10:00", patient, "", "conv-3")
	assert.False(t, second.Success)
	assert.ErrorIs(t, second.Err, schedule.ErrSlotConflict)
	assert.Contains(t, second.Response, "couldn't book")
}

// futureDate finds the first day with a non-empty grid so tests do not
// depend on what time of day they run.
func futureDate(t *testing.T, engine *schedule.Service) string {
	t.Helper()
	days, err := engine.AvailableOverRange(todayPlus(1), 1, schedule.Consultation)
	require.NoError(t, err)
	require.NotEmpty(t, days[0].Slots)
	return days[0].Date
}

func todayPlus(days int) string {
	return time.Now().AddDate(0, 0, days).Format(schedule.DateLayout)
}
