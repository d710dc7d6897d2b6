// Package adminhandler serves the admin panel endpoints: login, the
// registration list with status updates, and the fiszka link setting.
package adminhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/trawers-adr/registration-backend/admintoken"
	"github.com/trawers-adr/registration-backend/api"
	"github.com/trawers-adr/registration-backend/interfaces"
	"github.com/trawers-adr/registration-backend/metrics"
)

const (
	msgPasswordRequired = "Hasło jest wymagane"
	msgConfigError      = "Błąd konfiguracji serwera"
	msgBadPassword      = "Nieprawidłowe hasło"
	msgUnauthorized     = "Brak autoryzacji"
	msgListFailed       = "Błąd pobierania danych"
	msgBadID            = "Brak lub nieprawidłowe id"
	msgBadStatus        = "Nieprawidłowy status"
	msgUpdateFailed     = "Błąd aktualizacji statusu"
	msgSettingsRead     = "Błąd pobierania ustawień"
	msgLinkRequired     = "Link fiszki jest wymagany"
	msgBadURL           = "Nieprawidłowy format URL"
	msgSettingsWrite    = "Błąd zapisywania ustawienia"
	msgRegNotFound      = "Nie znaleziono zgłoszenia"
	msgMalformedRequest = "Nieprawidłowe dane wejściowe"
)

// Handler processes admin requests.
type Handler struct {
	regs     interfaces.RegistrationStore
	settings interfaces.SettingStore
	tokens   *admintoken.Issuer
	log      *slog.Logger
}

// NewHandler creates an admin handler with its dependencies.
func NewHandler(regs interfaces.RegistrationStore, settings interfaces.SettingStore, tokens *admintoken.Issuer, log *slog.Logger) *Handler {
	return &Handler{
		regs:     regs,
		settings: settings,
		tokens:   tokens,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/auth", h.HandleAuth)

	// Reading the fiszka link is public; the registration form needs it.
	r.Get("/admin/settings", h.HandleGetSettings)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireToken)
		r.Get("/admin/registrations", h.HandleListRegistrations)
		r.Patch("/admin/registrations", h.HandleUpdateStatus)
		r.Post("/admin/settings", h.HandleUpdateSettings)
		r.Put("/admin/settings", h.HandleUpdateSettings)
	})
}

// RequireToken rejects requests lacking a valid admin session token. The
// token is read from the admin_token cookie or an Authorization bearer
// header and verified for signature and expiry.
func (h *Handler) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := admintoken.FromRequest(r)
		if !ok {
			api.WriteError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if err := h.tokens.Verify(token); err != nil {
			if errors.Is(err, admintoken.ErrNotConfigured) {
				h.log.Error("Admin token secret is not configured")
				api.WriteError(w, http.StatusInternalServerError, msgConfigError)
				return
			}
			api.WriteError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleAuth checks the admin password and issues a session token, returned
// in the body and as the admin_token cookie.
func (h *Handler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	var req api.AuthRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, api.MaxBodySize)).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgMalformedRequest)
		return
	}
	if req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, msgPasswordRequired)
		return
	}

	switch err := h.tokens.VerifyPassword(req.Password); {
	case errors.Is(err, admintoken.ErrNotConfigured):
		h.log.Error("ADMIN_PASSWORD_HASH is not configured")
		api.WriteError(w, http.StatusInternalServerError, msgConfigError)
		return
	case errors.Is(err, admintoken.ErrBadPassword):
		metrics.AuthFailures.Inc()
		api.WriteError(w, http.StatusUnauthorized, msgBadPassword)
		return
	case err != nil:
		h.log.Error("Admin password verification failed", "err", err)
		api.WriteError(w, http.StatusInternalServerError, msgConfigError)
		return
	}

	token, err := h.tokens.Issue(time.Now())
	if err != nil {
		h.log.Error("Failed to issue admin token", "err", err)
		api.WriteError(w, http.StatusInternalServerError, msgConfigError)
		return
	}

	http.SetCookie(w, admintoken.NewCookie(token))
	api.WriteJSON(w, http.StatusOK, api.AuthResponse{Success: true, Token: token})
}

// HandleListRegistrations returns all registrations, newest first.
func (h *Handler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.regs.All(r.Context())
	if err != nil {
		h.log.Error("Failed to list registrations", "err", err)
		api.WriteError(w, http.StatusInternalServerError, msgListFailed)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.RegistrationsResponse{Success: true, Data: regs})
}

// HandleUpdateStatus sets a registration's status to one of the allowed
// enumeration values.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, api.MaxBodySize)).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgMalformedRequest)
		return
	}

	// id must arrive as a JSON number; strings and fractions are rejected.
	idFloat, ok := req.ID.(float64)
	if !ok || idFloat <= 0 || idFloat != math.Trunc(idFloat) {
		api.WriteError(w, http.StatusBadRequest, msgBadID)
		return
	}
	id := int64(idFloat)

	status, err := interfaces.ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, msgBadStatus)
		return
	}

	reg, err := h.regs.UpdateStatus(r.Context(), id, status)
	if errors.Is(err, interfaces.ErrRegistrationNotFound) {
		api.WriteError(w, http.StatusNotFound, msgRegNotFound)
		return
	}
	if err != nil {
		h.log.Error("Failed to update registration status", "err", err, "id", id)
		api.WriteError(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	metrics.StatusUpdates.Inc()
	api.WriteJSON(w, http.StatusOK, api.RegistrationResponse{Success: true, Data: reg})
}

// HandleGetSettings returns the fiszka link, falling back to the default
// when no row has been written yet.
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	link := interfaces.DefaultFiszkaLink

	set, err := h.settings.Get(r.Context(), interfaces.SettingFiszkaLink)
	switch {
	case errors.Is(err, interfaces.ErrSettingNotFound):
		// No row yet, keep the default.
	case err != nil:
		h.log.Error("Failed to read settings", "err", err)
		api.WriteError(w, http.StatusInternalServerError, msgSettingsRead)
		return
	default:
		link = set.Value
	}

	api.WriteJSON(w, http.StatusOK, api.SettingsResponse{
		Success: true,
		Data:    api.SettingsData{FiszkaLink: link},
	})
}

// HandleUpdateSettings stores a new fiszka link after validating it parses
// as an absolute URL.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req api.SettingsData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, api.MaxBodySize)).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgMalformedRequest)
		return
	}
	if req.FiszkaLink == "" {
		api.WriteError(w, http.StatusBadRequest, msgLinkRequired)
		return
	}
	if u, err := url.Parse(req.FiszkaLink); err != nil || u.Scheme == "" || u.Host == "" {
		api.WriteError(w, http.StatusBadRequest, msgBadURL)
		return
	}

	set, err := h.settings.Put(r.Context(), interfaces.SettingFiszkaLink, req.FiszkaLink)
	if err != nil {
		h.log.Error("Failed to write settings", "err", err)
		api.WriteError(w, http.StatusInternalServerError, msgSettingsWrite)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.SettingResponse{Success: true, Data: set})
}
