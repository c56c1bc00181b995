package contact

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drkailash/clinic-platform/internal/notify"
	"github.com/drkailash/clinic-platform/pkg/logging"
)

var contactTracer = otel.Tracer("clinic.internal.contact")

// Service stores contact messages and tells the doctor about them.
type Service struct {
	repo        Repository
	sender      notify.EmailSender
	doctorEmail string
	logger      *logging.Logger
}

// NewService constructs a contact service. sender may be nil when email is
// not configured.
func NewService(repo Repository, sender notify.EmailSender, doctorEmail string, logger *logging.Logger) *Service {
	if repo == nil {
		panic("contact: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:        repo,
		sender:      sender,
		doctorEmail: doctorEmail,
		logger:      logger,
	}
}

// Submit validates and stores a message, then emails the doctor. The email
// is best effort; a failed notification never fails the submission.
func (s *Service) Submit(ctx context.Context, req SubmissionRequest) (*Message, error) {
	ctx, span := contactTracer.Start(ctx, "contact.submit")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Message{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("clinic.contact_message_id", created.ID))

	s.notifyDoctor(ctx, created)

	s.logger.Info("contact message received", "message_id", created.ID)
	return created, nil
}

func (s *Service) notifyDoctor(ctx context.Context, msg *Message) {
	if s.sender == nil || s.doctorEmail == "" {
		return
	}

	err := s.sender.Send(ctx, notify.EmailMessage{
		To:      s.doctorEmail,
		Subject: fmt.Sprintf("New contact message from %s", msg.Name),
		Body: fmt.Sprintf("From: %s <%s>\n\n%s\n\nReceived %s",
			msg.Name, msg.Email, msg.Message, msg.CreatedAt.Format("2006-01-02 15:04")),
	})
	if err != nil {
		s.logger.Warn("contact notification failed", "message_id", msg.ID, "error", err)
	}
}
