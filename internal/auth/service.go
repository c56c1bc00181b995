// Package auth verifies the doctor's credentials and issues the session
// tokens that guard the dashboard and assistant endpoints.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/drkailash/clinic-platform/pkg/logging"
)

// ErrInvalidCredentials covers every login failure. Callers must not reveal
// which of the two fields was wrong.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// Config holds the doctor credentials and token settings.
type Config struct {
	Username string
	// PasswordHash is a bcrypt hash. PlainPassword is the development-only
	// fallback used when no hash is configured.
	PasswordHash  string
	PlainPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

// Service authenticates the doctor and mints session JWTs.
type Service struct {
	cfg    Config
	logger *logging.Logger
	now    func() time.Time
}

// NewService constructs an auth service.
func NewService(cfg Config, logger *logging.Logger) *Service {
	if cfg.JWTSecret == "" {
		panic("auth: session jwt secret required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	return &Service{cfg: cfg, logger: logger, now: time.Now}
}

// WithClock overrides the service clock; tests use it to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Authenticate checks the supplied credentials. Both checks always run so
// timing does not reveal whether the username matched.
func (s *Service) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1

	var passOK bool
	switch {
	case s.cfg.PasswordHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	case s.cfg.PlainPassword != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.PlainPassword)) == 1
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken mints an HMAC-signed session token for the doctor.
func (s *Service) IssueToken() (token string, expiresAt time.Time, err error) {
	now := s.now()
	expiresAt = now.Add(s.cfg.TokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   s.cfg.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Login authenticates and, on success, issues a session token.
func (s *Service) Login(username, password string) (string, time.Time, error) {
	if err := s.Authenticate(username, password); err != nil {
		s.logger.Warn("login rejected", "username", username)
		return "", time.Time{}, err
	}
	s.logger.Info("doctor logged in")
	return s.IssueToken()
}
