package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCapAndDateOrdering(t *testing.T) {
	svc := testService()

	got, err := svc.Suggest(Preferences{}, Consultation, 7)
	require.NoError(t, err)
	require.Len(t, got, 5, "global cap")

	// Earlier dates always win; no cross-day scoring.
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Date, got[i].Date)
	}

	// Two per day, so five suggestions span three days from today.
	assert.Equal(t, "2026-03-02", got[0].Date)
	assert.Equal(t, "2026-03-02", got[1].Date)
	assert.Equal(t, "2026-03-03", got[2].Date)
	assert.Equal(t, "2026-03-03", got[3].Date)
	assert.Equal(t, "2026-03-04", got[4].Date)
}

func TestSuggestMorningPreference(t *testing.T) {
	svc := testService()

	got, err := svc.Suggest(Preferences{Window: WindowMorning}, Consultation, 7)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for _, s := range got {
		assert.Less(t, s.Time, "12:00")
	}
	assert.Equal(t, "09:00", got[0].Time)
	assert.Equal(t, "09:30", got[1].Time)
}

func TestSuggestAfternoonPreference(t *testing.T) {
	svc := testService()

	got, err := svc.Suggest(Preferences{Window: WindowAfternoon}, Consultation, 7)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for _, s := range got {
		assert.GreaterOrEqual(t, s.Time, "12:00")
		assert.Less(t, s.Time, "17:00")
	}
}

func TestSuggestEveningFallsBackWithinDay(t *testing.T) {
	svc := testService()

	// Business hours end at 17:00, so no slot ever starts in the evening
	// window. The day's open slots are returned anyway instead of skipping
	// the day.
	got, err := svc.Suggest(Preferences{Window: WindowEvening}, Consultation, 7)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "2026-03-02", got[0].Date)
	assert.Equal(t, "09:00", got[0].Time)
}

func TestSuggestSkipsFullyBookedDays(t *testing.T) {
	svc := testService()

	// Book every morning slot today; a morning preference moves past them.
	grid := testGrid()
	slots, err := grid.Slots("2026-03-02", Consultation)
	require.NoError(t, err)
	for _, slot := range slots {
		if slot.StartTime < "12:00" {
			_, err := svc.Reserve(Consultation, "2026-03-02", slot.StartTime, testPatient(), "")
			require.NoError(t, err)
		}
	}

	got, err := svc.Suggest(Preferences{Window: WindowMorning}, Consultation, 7)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	// Today has open afternoon slots, so the per-day fallback offers those
	// before moving to tomorrow.
	assert.Equal(t, "2026-03-02", got[0].Date)
	assert.GreaterOrEqual(t, got[0].Time, "12:00")
}

func TestSuggestSpecificDate(t *testing.T) {
	svc := testService()

	got, err := svc.Suggest(Preferences{Window: WindowMorning, Date: OnDate("2026-03-04")}, Consultation, 7)
	require.NoError(t, err)
	require.Len(t, got, 5, "a single day can fill the cap")
	for _, s := range got {
		assert.Equal(t, "2026-03-04", s.Date)
		assert.Equal(t, "Wednesday", s.Day)
		assert.Equal(t, "Matches your preference for morning", s.Reason)
	}
}

func TestSuggestSpecificPastDateIsEmpty(t *testing.T) {
	svc := testService()

	got, err := svc.Suggest(Preferences{Date: OnDate("2026-02-27")}, Consultation, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggestReasonUsesWeekdayAndTwelveHourClock(t *testing.T) {
	svc := testService()

	got, err := svc.Suggest(Preferences{Window: WindowAfternoon}, Consultation, 7)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Monday at 12:00 PM", got[0].Reason)
}

func TestSuggestUnknownCategory(t *testing.T) {
	svc := testService()

	_, err := svc.Suggest(Preferences{}, Category("dental"), 7)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseTimeWindow(t *testing.T) {
	w, err := ParseTimeWindow("morning")
	require.NoError(t, err)
	assert.Equal(t, WindowMorning, w)

	w, err = ParseTimeWindow("")
	require.NoError(t, err)
	assert.Equal(t, WindowAny, w)

	_, err = ParseTimeWindow("midnight")
	assert.Error(t, err)
}

func TestTwelveHour(t *testing.T) {
	assert.Equal(t, "9:00 AM", twelveHour("09:00"))
	assert.Equal(t, "12:30 PM", twelveHour("12:30"))
	assert.Equal(t, "4:30 PM", twelveHour("16:30"))
	assert.Equal(t, "12:00 AM", twelveHour("00:00"))
}
