package appointments

import "errors"

var (
	// ErrNameRequired is returned when the patient name is missing
	ErrNameRequired = errors.New("name is required")

	// ErrInvalidDate is returned when the date is not a YYYY-MM-DD calendar day
	ErrInvalidDate = errors.New("date must be a valid YYYY-MM-DD calendar day")

	// ErrInvalidTime is returned when the time is not an HH:MM time of day
	ErrInvalidTime = errors.New("time must be a valid HH:MM time of day")

	// ErrPastDate is returned when the requested day is today or earlier
	ErrPastDate = errors.New("appointments cannot be scheduled for today or earlier")

	// ErrInvalidEmail is returned when the email is not a Gmail address
	ErrInvalidEmail = errors.New("a valid Gmail address is required")

	// ErrOutsideHours is returned when the time falls outside clinic hours
	ErrOutsideHours = errors.New("appointments must be between 09:00 and 20:00")

	// ErrNotFound is returned when no appointment exists for the given id
	ErrNotFound = errors.New("appointment not found")

	// ErrTerminalStatus is returned on transitions out of completed/cancelled
	ErrTerminalStatus = errors.New("appointment is already completed or cancelled")

	// ErrAlreadyPast is returned on transitions of an appointment whose
	// scheduled time has passed
	ErrAlreadyPast = errors.New("appointment time has already passed")

	// ErrConfirmRequired is returned when a cancellation lacks confirmation
	ErrConfirmRequired = errors.New("cancellation requires confirmation")
)
