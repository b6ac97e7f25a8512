package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"

	// slotStride is the gap between candidate start times. It is fixed at
	// 30 minutes regardless of category duration; longer categories simply
	// lose the last start times that would overrun closing.
	slotStride = 30
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// TimeSlot is a bookable window within a single day. Both times are
// wall-clock "HH:MM" in the clinic's timezone. Available is derived from
// ledger state at read time and never stored.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// SlotKey is the unit of booking contention: one (date, start) pair can be
// held by at most one active booking, whatever its category.
type SlotKey struct {
	Date  string
	Start string
}

// Grid enumerates candidate start times inside business hours for a given
// date and category. It is stateless apart from the clock used to decide
// what "today" means.
type Grid struct {
	OpenMinute  int // minutes from midnight, 540 = 09:00
	CloseMinute int

	now func() time.Time
}

func NewGrid(openHour, closeHour int) *Grid {
	return &Grid{
		OpenMinute:  openHour * 60,
		CloseMinute: closeHour * 60,
		now:         time.Now,
	}
}

// Slots returns every stride-aligned slot whose end time fits before
// closing, in start-time order. Dates strictly before today yield an empty
// grid: asking about the past is "no availability", not an error.
func (g *Grid) Slots(date string, category Category) ([]TimeSlot, error) {
	target, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	if target.Before(g.today()) {
		return []TimeSlot{}, nil
	}

	duration := category.Duration()
	var slots []TimeSlot
	for start := g.OpenMinute; start < g.CloseMinute; start += slotStride {
		end := start + duration
		if end > g.CloseMinute {
			break
		}
		slots = append(slots, TimeSlot{
			StartTime: clock(start),
			EndTime:   clock(end),
			Available: true,
		})
	}
	return slots, nil
}

// Contains reports whether start is one of the generated start times for
// the date and category.
func (g *Grid) Contains(date, start string, category Category) (bool, error) {
	slots, err := g.Slots(date, category)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.StartTime == start {
			return true, nil
		}
	}
	return false, nil
}

func (g *Grid) today() time.Time {
	y, m, d := g.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
