package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drkailash/clinic-platform/pkg/logging"
)

func newLoginHandler() *Handler {
	svc := NewService(Config{
		Username:      "drkailash",
		PlainPassword: "pw",
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
	}, logging.Default())
	return NewHandler(svc, logging.Default())
}

func TestLoginEndpoint_Success(t *testing.T) {
	h := newLoginHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username": "drkailash", "password": "pw"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.ExpiresAt.IsZero() {
		t.Fatalf("incomplete login response: %+v", resp)
	}
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	h := newLoginHandler()

	for name, body := range map[string]string{
		"wrong password": `{"username": "drkailash", "password": "nope"}`,
		"wrong username": `{"username": "intruder", "password": "pw"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()
			h.Login(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			// The error never says which field was wrong.
			if !strings.Contains(w.Body.String(), "incorrect username or password") {
				t.Fatalf("unexpected error body: %s", w.Body.String())
			}
		})
	}
}

func TestLoginEndpoint_InvalidJSON(t *testing.T) {
	h := newLoginHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	h := newLoginHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}
