// Package contact receives and stores messages sent through the public
// contact form and notifies the doctor by email.
package contact

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrNameRequired means the sender left the name blank.
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidEmail means the reply address is missing or malformed.
	ErrInvalidEmail = errors.New("a valid email address is required")
	// ErrMessageRequired means the message body is empty.
	ErrMessageRequired = errors.New("message is required")
)

// Any syntactically plausible address is fine here; the Gmail-only rule
// applies to bookings, not to contact messages.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message is a stored contact-form message.
type Message struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Message   string    `json:"message" firestore:"message"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// SubmissionRequest is the contact form payload.
type SubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks the form; all three fields are required.
func (r SubmissionRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if !emailPattern.MatchString(r.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}
