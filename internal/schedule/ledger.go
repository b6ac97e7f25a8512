package schedule

import (
	"errors"
	"fmt"
	"math/rand"
	"net/mail"
	"strings"
	"sync"
	"time"
)

var (
	ErrSlotConflict   = errors.New("slot is already booked")
	ErrInvalidSlot    = errors.New("start time is not on the booking grid")
	ErrInvalidPatient = errors.New("invalid patient details")
)

type Patient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks the fields a booking cannot do without.
func (p Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPatient)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return fmt.Errorf("%w: email %q is not a valid address", ErrInvalidPatient, p.Email)
	}
	if strings.TrimSpace(p.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidPatient)
	}
	return nil
}

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingRecord is created exactly once per successful reservation. The only
// mutation it ever sees is the confirmed -> cancelled status transition.
type BookingRecord struct {
	BookingID        string        `json:"booking_id"`
	ConfirmationCode string        `json:"confirmation_code"`
	Category         Category      `json:"appointment_type"`
	Date             string        `json:"date"`
	StartTime        string        `json:"start_time"`
	DurationMinutes  int           `json:"duration_minutes"`
	Patient          Patient       `json:"patient"`
	Reason           string        `json:"reason,omitempty"`
	Status           BookingStatus `json:"status"`
}

// Ledger is the single source of truth for slot occupancy. It is built
// explicitly so multiple clinics or test instances run in isolation; all
// mutation funnels through one mutex.
type Ledger struct {
	grid *Grid

	mu      sync.Mutex
	active  map[SlotKey]*BookingRecord
	records map[string]*BookingRecord
	counter int
	rng     *rand.Rand
}

func NewLedger(grid *Grid) *Ledger {
	return &Ledger{
		grid:    grid,
		active:  make(map[SlotKey]*BookingRecord),
		records: make(map[string]*BookingRecord),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reserve commits a booking for (date, start) or rejects it leaving the
// ledger exactly as it was. The start must belong to the generated grid for
// the date and category; a past date has an empty grid and fails the same
// way.
func (l *Ledger) Reserve(category Category, date, start string, patient Patient, reason string) (*BookingRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}
	onGrid, err := l.grid.Contains(date, start, category)
	if err != nil {
		return nil, err
	}
	if !onGrid {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidSlot, date, start)
	}

	key := SlotKey{Date: date, Start: start}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.active[key]; taken {
		return nil, fmt.Errorf("%w: %s %s", ErrSlotConflict, date, start)
	}

	l.counter++
	rec := &BookingRecord{
		BookingID:        fmt.Sprintf("APPT-%d-%03d", l.grid.now().Year(), l.counter),
		ConfirmationCode: l.confirmationCode(),
		Category:         category,
		Date:             date,
		StartTime:        start,
		DurationMinutes:  category.Duration(),
		Patient:          patient,
		Reason:           reason,
		Status:           StatusConfirmed,
	}
	l.active[key] = rec
	l.records[rec.BookingID] = rec
	return rec, nil
}

// Cancel releases the slot held by bookingID. It reports whether an active
// record was found; cancelling twice returns false the second time rather
// than an error.
func (l *Ledger) Cancel(bookingID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[bookingID]
	if !ok || rec.Status == StatusCancelled {
		return false
	}
	rec.Status = StatusCancelled
	delete(l.active, SlotKey{Date: rec.Date, Start: rec.StartTime})
	return true
}

// Get returns a copy of the record for bookingID, cancelled or not.
func (l *Ledger) Get(bookingID string) (BookingRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[bookingID]
	if !ok {
		return BookingRecord{}, false
	}
	return *rec, true
}

// OccupiedOn returns the set of taken start times for a date, a consistent
// snapshot under one lock acquisition.
func (l *Ledger) OccupiedOn(date string) map[string]bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	taken := make(map[string]bool)
	for key := range l.active {
		if key.Date == date {
			taken[key.Start] = true
		}
	}
	return taken
}

// ActiveCount reports how many non-cancelled bookings the ledger holds.
func (l *Ledger) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.active)
}

// Confirmation codes are short and human-friendly. They are not the
// uniqueness key; booking_id and the SlotKey carry that.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (l *Ledger) confirmationCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = codeAlphabet[l.rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}
