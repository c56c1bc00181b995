package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/drkailash/clinic-platform/pkg/logging"
)

// Handler handles login and logout.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token on success.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed, please try again later")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout handles POST /api/auth/logout. Sessions are stateless JWTs, so the
// server has nothing to revoke; the client drops its token.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.logger.Info("doctor logged out")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
