package schedule

import (
	"fmt"
	"time"
)

// Service is the availability and booking engine callers talk to. It
// composes the slot grid with the ledger; data flows one way, grid ->
// availability -> caller, with reservations going straight to the ledger.
type Service struct {
	grid   *Grid
	ledger *Ledger
}

func NewService(grid *Grid, ledger *Ledger) *Service {
	return &Service{grid: grid, ledger: ledger}
}

// DayAvailability pairs a date with its open slots.
type DayAvailability struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"available_slots"`
}

// AvailableOnDate returns the full grid for the date with each slot's
// Available flag reflecting ledger occupancy at call time.
func (s *Service) AvailableOnDate(date string, category Category) ([]TimeSlot, error) {
	slots, err := s.grid.Slots(date, category)
	if err != nil {
		return nil, err
	}
	taken := s.ledger.OccupiedOn(date)
	for i := range slots {
		if taken[slots[i].StartTime] {
			slots[i].Available = false
		}
	}
	return slots, nil
}

// OpenSlots is AvailableOnDate narrowed to the available subset.
func (s *Service) OpenSlots(date string, category Category) ([]TimeSlot, error) {
	slots, err := s.AvailableOnDate(date, category)
	if err != nil {
		return nil, err
	}
	open := make([]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			open = append(open, slot)
		}
	}
	return open, nil
}

// AvailableOverRange reports open slots for every day in
// [startDate, startDate+numDays), in date order. Days with nothing open
// still appear with an empty list so "checked, nothing open" is
// distinguishable from "not checked".
func (s *Service) AvailableOverRange(startDate string, numDays int, category Category) ([]DayAvailability, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, startDate)
	}

	days := make([]DayAvailability, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := start.AddDate(0, 0, i).Format(DateLayout)
		open, err := s.OpenSlots(date, category)
		if err != nil {
			return nil, err
		}
		days = append(days, DayAvailability{Date: date, Slots: open})
	}
	return days, nil
}

// Reserve books the slot, see Ledger.Reserve.
func (s *Service) Reserve(category Category, date, start string, patient Patient, reason string) (*BookingRecord, error) {
	return s.ledger.Reserve(category, date, start, patient, reason)
}

// Cancel releases a booking, see Ledger.Cancel.
func (s *Service) Cancel(bookingID string) bool {
	return s.ledger.Cancel(bookingID)
}

// Booking looks up a record by id.
func (s *Service) Booking(bookingID string) (BookingRecord, bool) {
	return s.ledger.Get(bookingID)
}

// ActiveBookings reports the ledger's active record count.
func (s *Service) ActiveBookings() int {
	return s.ledger.ActiveCount()
}
