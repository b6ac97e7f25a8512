package agent

import (
	"regexp"
	"strings"

	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

var schedulingKeywords = []string{
	"book", "schedule", "appointment", "see doctor", "visit",
	"available", "time slot", "when can", "make appointment",
}

var faqKeywords = []string{
	"what", "where", "how", "why", "insurance",
	"accept", "policy", "hours", "location", "parking",
	"bring", "required", "cost", "price",
}

// DetectIntent classifies a message as scheduling, faq, both or general.
// Pure keyword heuristics; there is no grammar here and none intended.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)

	isScheduling := containsAny(lower, schedulingKeywords)
	isFAQ := containsAny(lower, faqKeywords)

	switch {
	case isScheduling && isFAQ:
		return IntentBoth
	case isScheduling:
		return IntentScheduling
	case isFAQ:
		return IntentFAQ
	default:
		return IntentGeneral
	}
}

var isoDate = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

// ExtractPreferences pulls structured time/date preferences out of free
// text. The engine only ever sees the structured result.
func ExtractPreferences(message string) schedule.Preferences {
	lower := strings.ToLower(message)
	var prefs schedule.Preferences

	switch {
	case hasAnyWord(lower, "morning", "am", "early"):
		prefs.Window = schedule.WindowMorning
	case hasAnyWord(lower, "afternoon", "pm", "midday"):
		prefs.Window = schedule.WindowAfternoon
	case hasAnyWord(lower, "evening", "late"):
		prefs.Window = schedule.WindowEvening
	}

	if date := isoDate.FindString(lower); date != "" {
		prefs.Date = schedule.OnDate(date)
	}
	return prefs
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// hasAnyWord matches whole words only, so "am" does not fire inside
// "family" or "exam".
func hasAnyWord(s string, words ...string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
