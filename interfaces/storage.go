package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrRegistrationNotFound indicates no registration matched the lookup.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrSettingNotFound indicates no row exists for the settings key.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrDuplicateContact indicates an insert hit the store-level uniqueness
	// guard on email or phone. Callers treat it as a concurrent duplicate
	// submission and fall back to the existing record.
	ErrDuplicateContact = errors.New("registration with this contact already exists")

	// ErrInvalidStoreURI indicates the store location URI could not be parsed
	// or uses an unsupported scheme.
	ErrInvalidStoreURI = errors.New("invalid store location URI")
)

// NewRegistration carries the validated fields of a registration submission.
type NewRegistration struct {
	FullName string
	Email    string
	Phone    string
}

// StageOneUpdate describes a stage-one completion. Exactly one of ID or
// Phone selects the record; ID takes precedence when both are set. Nil
// optional fields must leave the stored values untouched.
type StageOneUpdate struct {
	ID           int64
	Phone        string
	FiszkaNumber *string
	Category     *string
}

// RegistrationStore persists registrations.
type RegistrationStore interface {
	// FindByContact returns the most recently created registration whose
	// phone or email matches, or ErrRegistrationNotFound.
	FindByContact(ctx context.Context, phone, email string) (*Registration, error)

	// Insert creates a new registration with StatusInProgress. Returns
	// ErrDuplicateContact when the store's uniqueness guard rejects the row.
	Insert(ctx context.Context, reg NewRegistration) (*Registration, error)

	// All returns every registration ordered by creation time descending.
	All(ctx context.Context) ([]Registration, error)

	// UpdateStatus sets the status of the registration with the given id and
	// bumps updated_at. Returns ErrRegistrationNotFound if no row matches.
	UpdateStatus(ctx context.Context, id int64, status Status) (*Registration, error)

	// CompleteStageOne transitions the matched registration to
	// StatusStageOneComplete, merging the update's optional fields.
	// Returns ErrRegistrationNotFound if no row matches.
	CompleteStageOne(ctx context.Context, upd StageOneUpdate) (*Registration, error)
}

// SettingStore persists key-value settings.
type SettingStore interface {
	// Get returns the setting for key, or ErrSettingNotFound.
	Get(ctx context.Context, key string) (*Setting, error)

	// Put inserts the setting if absent, otherwise updates its value and
	// bumps updated_at. Returns the resulting row either way.
	Put(ctx context.Context, key, value string) (*Setting, error)
}

// Store combines the persistence interfaces behind a single backend.
type Store interface {
	RegistrationStore
	SettingStore

	// Close releases the backend's resources.
	Close()
}
