package mailer

import (
	"context"
	"errors"
	"sync"

	"github.com/trawers-adr/registration-backend/interfaces"
)

// RecordedMail captures one notification the Recorder accepted.
type RecordedMail struct {
	// Kind is "admin" or "applicant".
	Kind string
	To   string
	Reg  interfaces.Registration
}

// Recorder is an in-memory interfaces.Mailer for tests. With FailSends set
// it rejects every send, which lets tests cover the swallowed-failure path.
type Recorder struct {
	mu        sync.Mutex
	sent      []RecordedMail
	FailSends bool
}

func (r *Recorder) SendAdminNotification(ctx context.Context, reg *interfaces.Registration) error {
	return r.record("admin", "", reg)
}

func (r *Recorder) SendApplicantInstructions(ctx context.Context, reg *interfaces.Registration) error {
	return r.record("applicant", reg.Email, reg)
}

func (r *Recorder) record(kind, to string, reg *interfaces.Registration) error {
	if r.FailSends {
		return errors.New("mail transport unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, RecordedMail{Kind: kind, To: to, Reg: *reg})
	return nil
}

// Sent returns a copy of the accepted notifications in send order.
func (r *Recorder) Sent() []RecordedMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedMail, len(r.sent))
	copy(out, r.sent)
	return out
}
