package interfaces

import "context"

// Mailer sends the two registration notification emails. Sends are
// best-effort: a successful registration must never be failed because a
// notification could not be delivered, so callers log returned errors and
// continue.
type Mailer interface {
	// SendAdminNotification mails the configured admin address a summary of
	// the new registrant.
	SendAdminNotification(ctx context.Context, reg *Registration) error

	// SendApplicantInstructions mails the registrant the step-by-step guide
	// for completing the external form process.
	SendApplicantInstructions(ctx context.Context, reg *Registration) error
}
