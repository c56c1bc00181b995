package assistant

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drkailash/clinic-platform/internal/observability/metrics"
	"github.com/drkailash/clinic-platform/pkg/logging"
)

var assistantTracer = otel.Tracer("clinic.internal.assistant")

// DiagnoseRequest is a validated diagnosis request.
type DiagnoseRequest struct {
	Symptoms string
	Language Language
	Image    *Image
}

// Service runs the diagnosis flow: validate, check the cache, call the
// vendor, cache the answer.
type Service struct {
	client  Client
	cache   *Cache
	logger  *logging.Logger
	metrics *metrics.SiteMetrics
}

// NewService constructs an assistant service. cache may be nil.
func NewService(client Client, cache *Cache, logger *logging.Logger, m *metrics.SiteMetrics) *Service {
	if client == nil {
		panic("assistant: client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		client:  client,
		cache:   cache,
		logger:  logger,
		metrics: m,
	}
}

// Diagnose returns the model's answer for a symptoms description. Requests
// with an image always go to the vendor; the cache only serves text-only
// prompts.
func (s *Service) Diagnose(ctx context.Context, req DiagnoseRequest) (string, error) {
	ctx, span := assistantTracer.Start(ctx, "assistant.diagnose")
	defer span.End()

	if strings.TrimSpace(req.Symptoms) == "" {
		s.metrics.ObserveAssistant("rejected", false)
		return "", ErrSymptomsRequired
	}
	if req.Language == "" {
		req.Language = LanguageEnglish
	}
	span.SetAttributes(
		attribute.String("clinic.assistant_language", string(req.Language)),
		attribute.Bool("clinic.assistant_has_image", req.Image != nil),
	)

	prompt := BuildPrompt(req.Symptoms, req.Image != nil, req.Language)

	if req.Image == nil {
		cached, hit, err := s.cache.Get(ctx, prompt)
		if err != nil {
			// Cache trouble is not the visitor's problem.
			s.logger.Warn("assistant cache read failed", "error", err)
		}
		if hit {
			s.metrics.ObserveAssistant("success", true)
			return cached, nil
		}
	}

	start := time.Now()
	response, err := s.client.Generate(ctx, prompt, req.Image)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveAssistant("error", false)
		s.metrics.ObserveAssistantLatency("error", elapsed)
		return "", err
	}
	s.metrics.ObserveAssistant("success", false)
	s.metrics.ObserveAssistantLatency("success", elapsed)

	if req.Image == nil {
		if err := s.cache.Set(ctx, prompt, response); err != nil {
			s.logger.Warn("assistant cache write failed", "error", err)
		}
	}

	s.logger.Info("assistant response generated",
		"language", req.Language,
		"has_image", req.Image != nil,
		"duration_seconds", elapsed,
	)
	return response, nil
}
