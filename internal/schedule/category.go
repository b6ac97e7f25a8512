package schedule

import (
	"errors"
	"fmt"
)

// Category is the closed set of appointment types the clinic offers.
// Adding a category means adding a constant here and a case to Duration.
type Category string

const (
	Consultation Category = "consultation"
	Followup     Category = "followup"
	Physical     Category = "physical"
	Specialist   Category = "specialist"
)

var ErrUnknownCategory = errors.New("unknown appointment category")

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{Consultation, Followup, Physical, Specialist}
}

// Duration returns the appointment length in minutes. Zero means the
// category is not one of ours; Valid should have been checked first.
func (c Category) Duration() int {
	switch c {
	case Consultation:
		return 30
	case Followup:
		return 15
	case Physical:
		return 45
	case Specialist:
		return 60
	}
	return 0
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case Consultation, Followup, Physical, Specialist:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}
