package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/trawers-adr/registration-backend/interfaces"
)

// MemoryStore is an in-process interfaces.Store used by tests and local
// development. It enforces the same email/phone uniqueness guard as the
// Postgres schema.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	regs     []interfaces.Registration
	settings map[string]interfaces.Setting
	log      *slog.Logger
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore(log *slog.Logger) *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		settings: make(map[string]interfaces.Setting),
		log:      log,
	}
}

func (s *MemoryStore) Close() {}

// FindByContact returns the most recent registration matching phone or email.
func (s *MemoryStore) FindByContact(ctx context.Context, phone, email string) (*interfaces.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *interfaces.Registration
	for i := range s.regs {
		reg := &s.regs[i]
		if reg.Phone != phone && reg.Email != email {
			continue
		}
		// Newest first; insertion order breaks created_at ties.
		if found == nil || reg.CreatedAt.After(found.CreatedAt) ||
			(reg.CreatedAt.Equal(found.CreatedAt) && reg.ID > found.ID) {
			found = reg
		}
	}
	if found == nil {
		return nil, interfaces.ErrRegistrationNotFound
	}
	copied := *found
	return &copied, nil
}

// Insert creates a new registration with the initial in-progress status.
func (s *MemoryStore) Insert(ctx context.Context, newReg interfaces.NewRegistration) (*interfaces.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.regs {
		if s.regs[i].Email == newReg.Email || s.regs[i].Phone == newReg.Phone {
			return nil, interfaces.ErrDuplicateContact
		}
	}

	now := time.Now()
	reg := interfaces.Registration{
		ID:        s.nextID,
		FullName:  newReg.FullName,
		Email:     newReg.Email,
		Phone:     newReg.Phone,
		Status:    interfaces.StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.regs = append(s.regs, reg)

	copied := reg
	return &copied, nil
}

// All returns every registration, newest first.
func (s *MemoryStore) All(ctx context.Context) ([]interfaces.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]interfaces.Registration, 0, len(s.regs))
	// Registrations are appended in creation order, so reverse iteration
	// yields created_at descending.
	for i := len(s.regs) - 1; i >= 0; i-- {
		out = append(out, s.regs[i])
	}
	return out, nil
}

// UpdateStatus sets the status of the registration with the given id.
func (s *MemoryStore) UpdateStatus(ctx context.Context, id int64, status interfaces.Status) (*interfaces.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.regs {
		if s.regs[i].ID != id {
			continue
		}
		s.regs[i].Status = status
		s.regs[i].UpdatedAt = time.Now()
		copied := s.regs[i]
		return &copied, nil
	}
	return nil, interfaces.ErrRegistrationNotFound
}

// CompleteStageOne marks the matched registration as stage-one complete.
func (s *MemoryStore) CompleteStageOne(ctx context.Context, upd interfaces.StageOneUpdate) (*interfaces.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.regs {
		reg := &s.regs[i]
		if upd.ID != 0 {
			if reg.ID != upd.ID {
				continue
			}
		} else if reg.Phone != upd.Phone {
			continue
		}

		reg.Status = interfaces.StatusStageOneComplete
		reg.UpdatedAt = time.Now()
		if upd.FiszkaNumber != nil {
			fiszka := *upd.FiszkaNumber
			reg.FiszkaNumber = &fiszka
		}
		if upd.Category != nil {
			category := *upd.Category
			reg.Category = &category
		}
		copied := *reg
		return &copied, nil
	}
	return nil, interfaces.ErrRegistrationNotFound
}

// Get returns the setting row for key.
func (s *MemoryStore) Get(ctx context.Context, key string) (*interfaces.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.settings[key]
	if !ok {
		return nil, interfaces.ErrSettingNotFound
	}
	copied := set
	return &copied, nil
}

// Put inserts or updates the setting row for key.
func (s *MemoryStore) Put(ctx context.Context, key, value string) (*interfaces.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	set, ok := s.settings[key]
	if !ok {
		set = interfaces.Setting{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	} else {
		set.Value = value
		set.UpdatedAt = now
	}
	s.settings[key] = set

	copied := set
	return &copied, nil
}
