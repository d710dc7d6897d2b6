package mailer

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trawers-adr/registration-backend/interfaces"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSMTPMailer_RequiresHostAndUser(t *testing.T) {
	_, err := NewSMTPMailer(Config{Username: "noreply@example.com"}, testLogger())
	assert.Error(t, err)

	_, err = NewSMTPMailer(Config{Host: "smtp.example.com"}, testLogger())
	assert.Error(t, err)
}

func TestNewSMTPMailer_Defaults(t *testing.T) {
	m, err := NewSMTPMailer(Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "noreply@example.com",
		Password: "pass",
	}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeout, m.cfg.Timeout)
	assert.Equal(t, "noreply@example.com", m.cfg.AdminEmail, "admin address falls back to the smtp user")
}

func TestNewSMTPMailer_ExplicitConfig(t *testing.T) {
	m, err := NewSMTPMailer(Config{
		Host:       "smtp.example.com",
		Port:       465,
		Secure:     true,
		Username:   "noreply@example.com",
		Password:   "pass",
		AdminEmail: "admin@example.com",
		Timeout:    5 * time.Second,
	}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, m.cfg.Timeout)
	assert.Equal(t, "admin@example.com", m.cfg.AdminEmail)
}

func TestInstructionTemplates(t *testing.T) {
	reg := &interfaces.Registration{
		FullName: "Jan Kowalski",
		Email:    "jan@example.com",
		Phone:    "500100100",
	}

	html := instructionHTML(reg)
	assert.Contains(t, html, "Witaj Jan Kowalski")
	assert.Contains(t, html, interfaces.DefaultFiszkaLink)
	assert.Contains(t, html, "Wypełnij fiszkę")

	text := instructionText(reg)
	assert.Contains(t, text, "Jan Kowalski")
	assert.Contains(t, text, interfaces.DefaultFiszkaLink)
}

func TestAdminNotificationTemplates(t *testing.T) {
	reg := &interfaces.Registration{
		FullName:  "Jan Kowalski",
		Email:     "jan@example.com",
		Phone:     "500100100",
		CreatedAt: time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC),
	}

	for _, body := range []string{adminNotificationHTML(reg), adminNotificationText(reg)} {
		assert.Contains(t, body, "Jan Kowalski")
		assert.Contains(t, body, "jan@example.com")
		assert.Contains(t, body, "500100100")
		assert.Contains(t, body, "03.02.2026")
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	reg := &interfaces.Registration{ID: 1, Email: "jan@example.com"}

	require.NoError(t, rec.SendAdminNotification(context.Background(), reg))
	require.NoError(t, rec.SendApplicantInstructions(context.Background(), reg))
	require.Len(t, rec.Sent(), 2)

	rec.FailSends = true
	assert.Error(t, rec.SendAdminNotification(context.Background(), reg))
	assert.Len(t, rec.Sent(), 2)
}
