package appointments

import (
	"fmt"
	"time"
)

// View selects a dashboard slice of the appointment list.
type View string

const (
	ViewUpcoming View = "upcoming"
	ViewPast     View = "past"
	ViewAll      View = "all"
)

// ParseView maps a query-string value to a View. Empty defaults to upcoming,
// matching the dashboard's initial filter.
func ParseView(s string) (View, error) {
	switch View(s) {
	case "":
		return ViewUpcoming, nil
	case ViewUpcoming, ViewPast, ViewAll:
		return View(s), nil
	default:
		return "", fmt.Errorf("appointments: unknown view %q", s)
	}
}

// FilterView returns the subset of appts visible in the given view at the
// given instant. It is a pure function of its inputs; nothing is persisted.
//
//   - upcoming: status upcoming AND scheduled at or after now
//   - past:     scheduled before now OR status completed/cancelled
//   - all:      everything
//
// Records whose date/time no longer parse are treated as past so they stay
// reachable from the dashboard instead of disappearing.
func FilterView(appts []*Appointment, view View, now time.Time) []*Appointment {
	if view == ViewAll {
		return appts
	}

	out := make([]*Appointment, 0, len(appts))
	for _, appt := range appts {
		scheduled, err := appt.ScheduledAt(now.Location())
		isPast := err != nil || scheduled.Before(now)

		switch view {
		case ViewUpcoming:
			if appt.Status == StatusUpcoming && !isPast {
				out = append(out, appt)
			}
		case ViewPast:
			if isPast || appt.Status.Terminal() {
				out = append(out, appt)
			}
		}
	}
	return out
}
