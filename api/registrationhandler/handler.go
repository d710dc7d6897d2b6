// Package registrationhandler serves the public registration endpoints:
// submission intake and stage-one completion.
package registrationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/trawers-adr/registration-backend/api"
	"github.com/trawers-adr/registration-backend/interfaces"
	"github.com/trawers-adr/registration-backend/metrics"
)

// User-facing messages are Polish, matching the registration form.
const (
	msgFieldsRequired   = "Wszystkie pola są wymagane"
	msgBadEmail         = "Nieprawidłowy format emaila"
	msgInsertFailed     = "Błąd zapisu danych"
	msgRegistered       = "Zapis został zarejestrowany"
	msgExisting         = "Istniejący zapis – przekierowanie do strony sukcesu"
	msgIDOrPhone        = "Wymagane jest id lub phone"
	msgStageOneFailed   = "Błąd aktualizacji etapu"
	msgRegNotFound      = "Nie znaleziono zgłoszenia"
	msgMalformedRequest = "Nieprawidłowe dane wejściowe"
)

// emailShape is the same one-@-plus-dotted-domain check the registration
// form applies client-side. Anything stricter would reject submissions the
// form accepts.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Handler processes public registration requests.
type Handler struct {
	store  interfaces.RegistrationStore
	mailer interfaces.Mailer
	log    *slog.Logger
}

// NewHandler creates a registration handler with its dependencies. The
// mailer may be nil, in which case notifications are skipped entirely.
func NewHandler(store interfaces.RegistrationStore, mailer interfaces.Mailer, log *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		mailer: mailer,
		log:    log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/complete-stage-one", h.HandleCompleteStageOne)
}

// HandleRegister accepts a registration submission.
//
// A submission whose phone or email matches an existing record reuses that
// record: the response carries existed=true and no mail is sent, making
// repeat submissions idempotent. Otherwise a record is inserted and two
// best-effort notifications go out, one to the admin address and one to the
// registrant. Registration success is defined by successful persistence, not
// by successful notification.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, api.MaxBodySize)).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgMalformedRequest)
		return
	}

	if req.FullName == "" || req.Email == "" || req.Phone == "" {
		api.WriteError(w, http.StatusBadRequest, msgFieldsRequired)
		return
	}
	if !emailShape.MatchString(req.Email) {
		api.WriteError(w, http.StatusBadRequest, msgBadEmail)
		return
	}

	ctx := r.Context()

	existing, err := h.store.FindByContact(ctx, req.Phone, req.Email)
	if err != nil && !errors.Is(err, interfaces.ErrRegistrationNotFound) {
		// A failed lookup must not block a registration; fall through and
		// let the insert decide.
		h.log.Error("Registration dedup lookup failed", "err", err, "phone", req.Phone)
	}
	if existing != nil {
		metrics.RegistrationsDeduped.Inc()
		api.WriteJSON(w, http.StatusOK, api.RegisterResponse{
			Success: true,
			Message: msgExisting,
			ID:      existing.ID,
			Status:  existing.Status,
			Existed: true,
		})
		return
	}

	reg, err := h.store.Insert(ctx, interfaces.NewRegistration{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if errors.Is(err, interfaces.ErrDuplicateContact) {
		// Lost the race against a concurrent submission with the same
		// contact info; the store's uniqueness guard kept one row. Serve it.
		existing, findErr := h.store.FindByContact(ctx, req.Phone, req.Email)
		if findErr != nil {
			h.log.Error("Lookup after duplicate insert failed", "err", findErr, "phone", req.Phone)
			api.WriteError(w, http.StatusInternalServerError, msgInsertFailed)
			return
		}
		metrics.RegistrationsDeduped.Inc()
		api.WriteJSON(w, http.StatusOK, api.RegisterResponse{
			Success: true,
			Message: msgExisting,
			ID:      existing.ID,
			Status:  existing.Status,
			Existed: true,
		})
		return
	}
	if err != nil {
		h.log.Error("Registration insert failed", "err", err)
		api.WriteError(w, http.StatusInternalServerError, msgInsertFailed)
		return
	}

	metrics.RegistrationsCreated.Inc()
	h.log.Info("Registration created", "id", reg.ID)

	h.sendNotifications(r, reg)

	api.WriteJSON(w, http.StatusOK, api.RegisterResponse{
		Success: true,
		Message: msgRegistered,
		ID:      reg.ID,
		Status:  reg.Status,
		Existed: false,
	})
}

// sendNotifications delivers both registration mails. Failures are logged
// and counted, never surfaced: the registration is already persisted.
func (h *Handler) sendNotifications(r *http.Request, reg *interfaces.Registration) {
	if h.mailer == nil {
		return
	}
	ctx := r.Context()
	if err := h.mailer.SendAdminNotification(ctx, reg); err != nil {
		metrics.MailSendErrors.Inc()
		h.log.Error("Admin notification mail failed", "err", err, "id", reg.ID)
	}
	if err := h.mailer.SendApplicantInstructions(ctx, reg); err != nil {
		metrics.MailSendErrors.Inc()
		h.log.Error("Applicant instruction mail failed", "err", err, "id", reg.ID)
	}
}

// HandleCompleteStageOne marks a registration as stage-one complete. The
// record is selected by id or, failing that, by phone; optional
// fiszka_number and category fields are merged only when present.
func (h *Handler) HandleCompleteStageOne(w http.ResponseWriter, r *http.Request) {
	var req api.CompleteStageOneRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, api.MaxBodySize)).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgMalformedRequest)
		return
	}

	if req.ID == 0 && req.Phone == "" {
		api.WriteError(w, http.StatusBadRequest, msgIDOrPhone)
		return
	}

	reg, err := h.store.CompleteStageOne(r.Context(), interfaces.StageOneUpdate{
		ID:           req.ID,
		Phone:        req.Phone,
		FiszkaNumber: req.FiszkaNumber,
		Category:     req.Category,
	})
	if errors.Is(err, interfaces.ErrRegistrationNotFound) {
		api.WriteError(w, http.StatusNotFound, msgRegNotFound)
		return
	}
	if err != nil {
		h.log.Error("Stage one update failed", "err", err, "id", req.ID, "phone", req.Phone)
		api.WriteError(w, http.StatusInternalServerError, msgStageOneFailed)
		return
	}

	metrics.StageOneCompleted.Inc()
	api.WriteJSON(w, http.StatusOK, api.RegistrationResponse{Success: true, Data: reg})
}
