// Package mailer delivers the registration notification emails over SMTP.
//
// Delivery is best-effort by contract: the registration handler logs send
// failures and never fails a persisted registration because of them.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/trawers-adr/registration-backend/interfaces"
)

// DefaultTimeout bounds each SMTP phase (connect, greeting, socket I/O).
const DefaultTimeout = 10 * time.Second

// Config holds the SMTP transport settings.
type Config struct {
	Host string
	Port int

	// Secure selects implicit SSL (port 465). When false the client
	// requires STARTTLS, the usual mode for port 587.
	Secure bool

	Username string
	Password string

	// AdminEmail receives new-registration notifications. Falls back to
	// Username when empty.
	AdminEmail string

	// Timeout bounds each SMTP phase. Zero means DefaultTimeout.
	Timeout time.Duration
}

// SMTPMailer implements interfaces.Mailer over an SMTP relay.
type SMTPMailer struct {
	cfg    Config
	client *mail.Client
	log    *slog.Logger
}

// NewSMTPMailer validates the config and creates the SMTP client. The
// connection itself is established per send.
func NewSMTPMailer(cfg Config, log *slog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is not configured")
	}
	if cfg.Username == "" {
		return nil, errors.New("smtp username is not configured")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.Username
	}

	// Common relay misconfigurations, warn early instead of failing sends.
	if cfg.Port == 465 && !cfg.Secure {
		log.Warn("SMTP port 465 normally requires secure=true (implicit SSL)")
	}
	if cfg.Port == 587 && cfg.Secure {
		log.Warn("SMTP port 587 normally uses secure=false (STARTTLS)")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts,
			mail.WithTLSPolicy(mail.TLSMandatory),
			// Some training-provider relays run self-signed certificates.
			mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPMailer{cfg: cfg, client: client, log: log}, nil
}

// SendAdminNotification mails the admin address a summary of the registrant.
func (m *SMTPMailer) SendAdminNotification(ctx context.Context, reg *interfaces.Registration) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("Formularz Zapisów", m.cfg.Username); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(m.cfg.AdminEmail); err != nil {
		return fmt.Errorf("invalid admin address: %w", err)
	}
	msg.Subject("Nowy zapis na szkolenie")
	msg.SetBodyString(mail.TypeTextPlain, adminNotificationText(reg))
	msg.AddAlternativeString(mail.TypeTextHTML, adminNotificationHTML(reg))

	return m.client.DialAndSendWithContext(ctx, msg)
}

// SendApplicantInstructions mails the registrant the step-by-step guide.
func (m *SMTPMailer) SendApplicantInstructions(ctx context.Context, reg *interfaces.Registration) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("TRAWERS-ADR", m.cfg.Username); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(reg.Email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Zgłoszenie przyjęte – instrukcja krok po kroku")
	msg.SetBodyString(mail.TypeTextPlain, instructionText(reg))
	msg.AddAlternativeString(mail.TypeTextHTML, instructionHTML(reg))

	return m.client.DialAndSendWithContext(ctx, msg)
}
