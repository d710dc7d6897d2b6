// Package interfaces defines the core types and contracts of the registration
// backend. It provides the boundary between HTTP handlers, the storage layer,
// and the mail transport without implementation details.
package interfaces

import (
	"fmt"
	"time"
)

// Status is the registration pipeline state. The values are user-facing
// Polish strings stored verbatim in the database and shown in the admin
// panel, so they must not be translated or renamed.
type Status string

const (
	// StatusInProgress is assigned to every newly created registration.
	StatusInProgress Status = "w trakcie"

	// StatusQualified marks a registrant accepted into the program.
	StatusQualified Status = "zakwalifikowany"

	// StatusNotQualified marks a registrant rejected from the program.
	StatusNotQualified Status = "niezakwalifikowany"

	// StatusStageOneComplete marks completion of the external form stage.
	StatusStageOneComplete Status = "etap pierwszy ukończony"
)

// AllStatuses lists every value admins may assign.
var AllStatuses = []Status{
	StatusInProgress,
	StatusQualified,
	StatusNotQualified,
	StatusStageOneComplete,
}

// ParseStatus validates a raw string against the closed status enumeration.
func ParseStatus(s string) (Status, error) {
	for _, known := range AllStatuses {
		if Status(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown registration status: %q", s)
}

// Valid reports whether the status is one of the allowed enumeration values.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Registration is a person's submission to join the training program,
// tracked through the status pipeline. (Email, Phone) act as a soft natural
// key: a repeat submission matching either reuses the existing record.
type Registration struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Status       Status    `json:"status"`
	FiszkaNumber *string   `json:"fiszka_number,omitempty"`
	Category     *string   `json:"category,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Setting is a single key-value configuration row.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// SettingFiszkaLink is the settings key holding the external form URL.
	SettingFiszkaLink = "fiszka_link"

	// DefaultFiszkaLink is returned when no fiszka_link row exists yet.
	DefaultFiszkaLink = "https://www.rozwojowe.eu/psf9/aplikuj/"
)
