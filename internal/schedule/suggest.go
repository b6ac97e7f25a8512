package schedule

import (
	"fmt"
	"strconv"
	"time"
)

// TimeWindow partitions the day into three non-overlapping windows by start
// hour: morning < 12, afternoon in [12, 17), evening >= 17. The zero value
// means no preference.
type TimeWindow string

const (
	WindowAny       TimeWindow = ""
	WindowMorning   TimeWindow = "morning"
	WindowAfternoon TimeWindow = "afternoon"
	WindowEvening   TimeWindow = "evening"
)

func ParseTimeWindow(s string) (TimeWindow, error) {
	switch TimeWindow(s) {
	case WindowAny, WindowMorning, WindowAfternoon, WindowEvening:
		return TimeWindow(s), nil
	}
	return "", fmt.Errorf("unknown time preference %q", s)
}

// DatePref is either "next available" (the zero value) or a specific day.
type DatePref struct {
	Specific string // YYYY-MM-DD, empty means search forward from today
}

func OnDate(date string) DatePref { return DatePref{Specific: date} }

type Preferences struct {
	Window TimeWindow
	Date   DatePref
}

type Suggestion struct {
	Date   string `json:"date"`
	Day    string `json:"day"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

const (
	suggestionCap = 5  // never return more than this overall
	perDayCap     = 2  // at most this many per day when scanning a range
	maxSearchDays = 14 // hard ceiling on forward search
)

// Suggest ranks open slots against the patient's preferences. A specific
// date is searched alone; otherwise days are walked forward from today,
// earlier dates always winning. There is no cross-day scoring, only greedy
// day-by-day accumulation up to the cap.
func (s *Service) Suggest(prefs Preferences, category Category, daysAhead int) ([]Suggestion, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	if prefs.Date.Specific != "" {
		return s.suggestOnDate(prefs.Date.Specific, prefs.Window, category)
	}
	return s.suggestForward(prefs.Window, category, daysAhead)
}

func (s *Service) suggestOnDate(date string, window TimeWindow, category Category) ([]Suggestion, error) {
	open, err := s.OpenSlots(date, category)
	if err != nil {
		return nil, err
	}
	day, _ := time.Parse(DateLayout, date)

	out := []Suggestion{}
	for _, slot := range filterByWindow(open, window) {
		if len(out) == suggestionCap {
			break
		}
		out = append(out, Suggestion{
			Date:   date,
			Day:    day.Weekday().String(),
			Time:   slot.StartTime,
			Reason: fmt.Sprintf("Matches your preference for %s", windowLabel(window)),
		})
	}
	return out, nil
}

func (s *Service) suggestForward(window TimeWindow, category Category, daysAhead int) ([]Suggestion, error) {
	if daysAhead > maxSearchDays {
		daysAhead = maxSearchDays
	}
	today := s.grid.today()

	out := []Suggestion{}
	for i := 0; i < daysAhead && len(out) < suggestionCap; i++ {
		day := today.AddDate(0, 0, i)
		date := day.Format(DateLayout)

		open, err := s.OpenSlots(date, category)
		if err != nil {
			return nil, err
		}

		for j, slot := range filterByWindow(open, window) {
			if j == perDayCap || len(out) == suggestionCap {
				break
			}
			out = append(out, Suggestion{
				Date:   date,
				Day:    day.Weekday().String(),
				Time:   slot.StartTime,
				Reason: fmt.Sprintf("%s at %s", day.Weekday(), twelveHour(slot.StartTime)),
			})
		}
	}
	return out, nil
}

// filterByWindow keeps slots starting inside the requested window. When
// nothing matches it returns the full set instead, so a day with openings
// is never hidden by a strict preference.
func filterByWindow(slots []TimeSlot, window TimeWindow) []TimeSlot {
	if window == WindowAny {
		return slots
	}
	var matched []TimeSlot
	for _, slot := range slots {
		hour := startHour(slot)
		if hour >= 0 && windowFor(hour) == window {
			matched = append(matched, slot)
		}
	}
	if len(matched) == 0 {
		return slots
	}
	return matched
}

func windowFor(hour int) TimeWindow {
	switch {
	case hour < 12:
		return WindowMorning
	case hour < 17:
		return WindowAfternoon
	default:
		return WindowEvening
	}
}

func startHour(slot TimeSlot) int {
	hour, err := strconv.Atoi(slot.StartTime[:2])
	if err != nil {
		return -1
	}
	return hour
}

func windowLabel(window TimeWindow) string {
	if window == WindowAny {
		return "any time"
	}
	return string(window)
}

// twelveHour renders "HH:MM" on a 12-hour clock, e.g. "16:30" -> "4:30 PM".
func twelveHour(hhmm string) string {
	hour, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return hhmm
	}
	period := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		display = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%s %s", display, hhmm[3:], period)
}
