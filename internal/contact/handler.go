package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drkailash/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for the contact form.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new contact handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Submit handles POST /api/contact (public).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to store contact message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to send your message, please try again later")
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func isValidationError(err error) bool {
	for _, target := range []error{ErrNameRequired, ErrInvalidEmail, ErrMessageRequired} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
