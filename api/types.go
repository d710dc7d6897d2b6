// Package api defines the JSON request and response types of the
// registration endpoints, shared by handlers, tests, and clients, plus small
// helpers for writing JSON responses.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/trawers-adr/registration-backend/interfaces"
)

// MaxBodySize is the maximum allowed request body size (1MB).
const MaxBodySize = 1024 * 1024

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// RegisterResponse is the success body of POST /register. Existed reports
// whether the submission matched an already-known contact; both paths return
// HTTP 200.
type RegisterResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	ID      int64             `json:"id"`
	Status  interfaces.Status `json:"status"`
	Existed bool              `json:"existed"`
}

// CompleteStageOneRequest is the body of POST /complete-stage-one. At least
// one of ID or Phone is required; ID wins when both are present.
type CompleteStageOneRequest struct {
	ID           int64   `json:"id,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	FiszkaNumber *string `json:"fiszka_number,omitempty"`
	Category     *string `json:"category,omitempty"`
}

// AuthRequest is the body of POST /admin/auth.
type AuthRequest struct {
	Password string `json:"password"`
}

// AuthResponse is the success body of POST /admin/auth. The same token is
// also set as the admin_token cookie.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// RegistrationsResponse is the body of GET /admin/registrations.
type RegistrationsResponse struct {
	Success bool                      `json:"success"`
	Data    []interfaces.Registration `json:"data"`
}

// RegistrationResponse wraps a single mutated registration row.
type RegistrationResponse struct {
	Success bool                     `json:"success"`
	Data    *interfaces.Registration `json:"data"`
}

// UpdateStatusRequest is the body of PATCH /admin/registrations. ID is
// declared as any so the handler can reject non-numeric values explicitly
// instead of failing JSON decoding.
type UpdateStatusRequest struct {
	ID     any    `json:"id"`
	Status string `json:"status"`
}

// SettingsData carries the one configurable value.
type SettingsData struct {
	FiszkaLink string `json:"fiszka_link"`
}

// SettingsResponse is the body of GET /admin/settings.
type SettingsResponse struct {
	Success bool         `json:"success"`
	Data    SettingsData `json:"data"`
}

// SettingResponse is the body of POST|PUT /admin/settings.
type SettingResponse struct {
	Success bool                `json:"success"`
	Data    *interfaces.Setting `json:"data"`
}

// ErrorResponse is the body of every non-2xx response. Error holds a
// localized, user-facing message; internals stay in the server log.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("Failed to encode JSON response", "err", err)
	}
}

// WriteError writes an ErrorResponse with the given status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}
