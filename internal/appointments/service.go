package appointments

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drkailash/clinic-platform/internal/observability/metrics"
	"github.com/drkailash/clinic-platform/pkg/logging"
)

var apptsTracer = otel.Tracer("clinic.internal.appointments")

// Service owns booking validation and the appointment lifecycle. Transition
// legality (terminal states, time window) is enforced here, on the write
// path, not just in whatever UI sits in front of it.
type Service struct {
	repo    Repository
	logger  *logging.Logger
	metrics *metrics.SiteMetrics
	now     func() time.Time
}

// NewService constructs an appointments service.
func NewService(repo Repository, logger *logging.Logger, m *metrics.SiteMetrics) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// WithClock overrides the service clock; tests use it to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Book validates a submission and persists it with status upcoming.
func (s *Service) Book(ctx context.Context, req SubmissionRequest) (*Appointment, error) {
	ctx, span := apptsTracer.Start(ctx, "appointments.book")
	defer span.End()

	if err := req.Validate(s.now()); err != nil {
		s.metrics.ObserveSubmission("rejected", rejectionReason(err))
		return nil, err
	}

	appt := &Appointment{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Date:     req.Date,
		Time:     req.Time,
		Symptoms: req.Symptoms,
		Status:   StatusUpcoming,
	}
	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSubmission("rejected", "store_error")
		return nil, err
	}

	span.SetAttributes(attribute.String("clinic.appointment_id", created.ID))
	s.metrics.ObserveSubmission("accepted", "")
	s.logger.Info("appointment booked",
		"appointment_id", created.ID,
		"date", created.Date,
		"time", created.Time,
	)
	return created, nil
}

// List fetches every appointment and applies the requested view filter.
func (s *Service) List(ctx context.Context, view View) ([]*Appointment, error) {
	ctx, span := apptsTracer.Start(ctx, "appointments.list")
	defer span.End()
	span.SetAttributes(attribute.String("clinic.view", string(view)))

	appts, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return FilterView(appts, view, s.now()), nil
}

// Complete transitions an upcoming appointment to completed.
func (s *Service) Complete(ctx context.Context, id string) (*Appointment, error) {
	return s.transition(ctx, id, StatusCompleted)
}

// Cancel transitions an upcoming appointment to cancelled. The record stays
// in the store; nothing is ever deleted. confirmed must be true — the
// dashboard asks the operator before sending.
func (s *Service) Cancel(ctx context.Context, id string, confirmed bool) (*Appointment, error) {
	if !confirmed {
		return nil, ErrConfirmRequired
	}
	return s.transition(ctx, id, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, to Status) (*Appointment, error) {
	ctx, span := apptsTracer.Start(ctx, "appointments.transition")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinic.appointment_id", id),
		attribute.String("clinic.target_status", string(to)),
	)

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if appt.Status.Terminal() {
		return nil, ErrTerminalStatus
	}
	now := s.now()
	scheduled, err := appt.ScheduledAt(now.Location())
	if err != nil || scheduled.Before(now) {
		return nil, ErrAlreadyPast
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		span.RecordError(err)
		return nil, err
	}

	appt.Status = to
	s.metrics.ObserveTransition(string(to))
	s.logger.Info("appointment status updated", "appointment_id", id, "status", to)
	return appt, nil
}

// rejectionReason maps validation errors to a stable metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNameRequired):
		return "name_required"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, ErrOutsideHours):
		return "outside_hours"
	default:
		return "other"
	}
}
