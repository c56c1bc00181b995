package appointments

import (
	"regexp"
	"strings"
	"time"
)

// Only Gmail addresses are accepted for bookings. This mirrors the intake
// form, which tells patients the same thing.
var gmailPattern = regexp.MustCompile(`^[^\s@]+@gmail\.com$`)

const (
	openingHour = 9
	closingHour = 20
)

// SubmissionRequest is a candidate appointment as submitted by a patient.
type SubmissionRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Symptoms string `json:"symptoms"`
}

// Validate checks the submission against booking rules, in the same order
// the intake form applies them: future calendar day first, then the Gmail
// rule, then clinic hours. now supplies the current instant so callers and
// tests control the clock.
func (r *SubmissionRequest) Validate(now time.Time) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}

	day, err := time.ParseInLocation("2006-01-02", r.Date, now.Location())
	if err != nil {
		return ErrInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Same-day bookings are rejected along with past days; comparison is at
	// day granularity, not the exact instant.
	if !day.After(today) {
		return ErrPastDate
	}

	if !gmailPattern.MatchString(r.Email) {
		return ErrInvalidEmail
	}

	tod, err := time.Parse("15:04", r.Time)
	if err != nil {
		return ErrInvalidTime
	}
	hour, minute := tod.Hour(), tod.Minute()
	// 20:00 is the last bookable minute; anything in 20:01-23:59 is out.
	if hour < openingHour || hour > closingHour || (hour == closingHour && minute != 0) {
		return ErrOutsideHours
	}

	return nil
}
