package assistant

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/drkailash/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for the diagnosis assistant.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new assistant handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// DiagnoseRequestBody is the wire form of a diagnosis request. The image
// travels as base64 with its MIME type alongside.
type DiagnoseRequestBody struct {
	Symptoms      string `json:"symptoms"`
	Language      string `json:"language,omitempty"`
	ImageBase64   string `json:"image_base64,omitempty"`
	ImageMIMEType string `json:"image_mime_type,omitempty"`
}

// DiagnoseResponse carries the model's answer verbatim.
type DiagnoseResponse struct {
	Response string `json:"response"`
}

// Diagnose handles POST /api/assistant/diagnose (doctor only).
func (h *Handler) Diagnose(w http.ResponseWriter, r *http.Request) {
	var body DiagnoseRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := DiagnoseRequest{Symptoms: body.Symptoms}

	lang, err := ParseLanguage(body.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, "language must be english or hindi-roman")
		return
	}
	req.Language = lang

	if strings.TrimSpace(body.ImageBase64) != "" {
		data, err := base64.StdEncoding.DecodeString(body.ImageBase64)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrInvalidImage.Error())
			return
		}
		mimeType := body.ImageMIMEType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		req.Image = &Image{MIMEType: mimeType, Data: data}
	}

	response, err := h.svc.Diagnose(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrSymptomsRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("assistant request failed", "error", err)
		// One generic retryable error, whatever went wrong upstream.
		writeError(w, http.StatusBadGateway, "failed to generate a response, please try again later")
		return
	}

	writeJSON(w, http.StatusOK, DiagnoseResponse{Response: response})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
