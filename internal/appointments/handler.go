package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drkailash/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Create handles POST /api/appointments requests (public booking form).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.svc.Book(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to book appointment", "error", err)
		// Generic notice; the form keeps its contents so the visitor can retry.
		writeError(w, http.StatusInternalServerError, "failed to submit appointment, please try again later")
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// ListResponse is the response for listing appointments
type ListResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Count        int            `json:"count"`
	View         View           `json:"view"`
}

// List handles GET /api/appointments?view=upcoming|past|all (doctor only).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	view, err := ParseView(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "view must be one of upcoming, past, all")
		return
	}

	appts, err := h.svc.List(r.Context(), view)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load appointments")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Appointments: appts,
		Count:        len(appts),
		View:         view,
	})
}

// Complete handles POST /api/appointments/{id}/complete (doctor only).
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	appt, err := h.svc.Complete(r.Context(), id)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// CancelRequest carries the operator's confirmation for a cancellation.
type CancelRequest struct {
	Confirm bool `json:"confirm"`
}

// Cancel handles POST /api/appointments/{id}/cancel (doctor only).
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	appt, err := h.svc.Cancel(r.Context(), id, req.Confirm)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrConfirmRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTerminalStatus), errors.Is(err, ErrAlreadyPast):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("failed to update appointment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update appointment")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		ErrNameRequired, ErrInvalidDate, ErrPastDate,
		ErrInvalidEmail, ErrInvalidTime, ErrOutsideHours,
	} {
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
