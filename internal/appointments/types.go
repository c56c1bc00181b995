package appointments

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transitions are allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment is a single booking record. Date and Time are kept as the
// strings the patient submitted ("2006-01-02" / "15:04"); lexicographic
// order on them matches chronological order, which the stores rely on.
type Appointment struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Contact   string    `json:"contact,omitempty" firestore:"contact"`
	Date      string    `json:"date" firestore:"date"`
	Time      string    `json:"time" firestore:"time"`
	Symptoms  string    `json:"symptoms,omitempty" firestore:"symptoms"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
	Status    Status    `json:"status" firestore:"status"`
}

// ScheduledAt combines Date and Time into a wall-clock instant in loc.
func (a *Appointment) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointments: bad schedule %q %q: %w", a.Date, a.Time, err)
	}
	return t, nil
}
