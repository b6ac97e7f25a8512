package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow pins "today" to Monday 2026-03-02 so grid output is stable.
func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
}

func testGrid() *Grid {
	g := NewGrid(9, 17)
	g.now = fixedNow
	return g
}

func TestGridConsultationCoversBusinessHours(t *testing.T) {
	g := testGrid()

	slots, err := g.Slots("2026-03-03", Consultation)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
	assert.Equal(t, "16:30", slots[len(slots)-1].StartTime)
	assert.Equal(t, "17:00", slots[len(slots)-1].EndTime)

	// 30-minute stride with no gaps.
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
	}
	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestGridSpecialistDropsOverrunningStarts(t *testing.T) {
	g := testGrid()

	slots, err := g.Slots("2026-03-03", Specialist)
	require.NoError(t, err)
	require.Len(t, slots, 15)

	// A 16:30 start would end at 17:30, past closing.
	assert.Equal(t, "16:00", slots[len(slots)-1].StartTime)
	assert.Equal(t, "17:00", slots[len(slots)-1].EndTime)
}

func TestGridFollowupEndsOffTheHalfHour(t *testing.T) {
	g := testGrid()

	slots, err := g.Slots("2026-03-03", Followup)
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.Equal(t, "09:15", slots[0].EndTime)
	assert.Equal(t, "16:45", slots[len(slots)-1].EndTime)
}

func TestGridPastDateIsEmptyNotAnError(t *testing.T) {
	g := testGrid()

	for _, category := range Categories() {
		slots, err := g.Slots("2026-03-01", category)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestGridTodayIsNotPast(t *testing.T) {
	g := testGrid()

	slots, err := g.Slots("2026-03-02", Consultation)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestGridRejectsMalformedDate(t *testing.T) {
	g := testGrid()

	_, err := g.Slots("03/02/2026", Consultation)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = g.Slots("", Consultation)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGridRejectsUnknownCategory(t *testing.T) {
	g := testGrid()

	_, err := g.Slots("2026-03-03", Category("massage"))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestGridContains(t *testing.T) {
	g := testGrid()

	ok, err := g.Contains("2026-03-03", "09:30", Consultation)
	require.NoError(t, err)
	assert.True(t, ok)

	// Misaligned minute.
	ok, err = g.Contains("2026-03-03", "09:15", Consultation)
	require.NoError(t, err)
	assert.False(t, ok)

	// Valid stride but the specialist visit would overrun closing.
	ok, err = g.Contains("2026-03-03", "16:30", Specialist)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("physical")
	require.NoError(t, err)
	assert.Equal(t, Physical, c)
	assert.Equal(t, 45, c.Duration())

	_, err = ParseCategory("dental")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
