// Package storage provides the persistence backends for registrations and
// settings. Backends are created from location URIs so deployments can switch
// between the managed Postgres instance and the in-process memory store used
// by tests and local development.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/trawers-adr/registration-backend/interfaces"
)

// StoreFactory creates store backends from URI strings.
type StoreFactory struct {
	log *slog.Logger
}

// NewStoreFactory creates a new factory instance.
func NewStoreFactory(log *slog.Logger) *StoreFactory {
	return &StoreFactory{log: log}
}

// StoreFor creates a store backend from a location URI.
//
// Supported schemes:
//   - postgres:// (or postgresql://) - managed Postgres, URI passed through
//     to the connection pool
//   - memory:// - in-process store, contents lost on restart
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (sf *StoreFactory) StoreFor(ctx context.Context, locationURI string) (interfaces.Store, error) {
	u, err := url.Parse(locationURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidStoreURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		sf.log.Debug("Creating postgres store", slog.String("host", u.Host))
		return NewPostgresStore(ctx, locationURI, sf.log)
	case "memory":
		sf.log.Debug("Creating memory store")
		return NewMemoryStore(sf.log), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidStoreURI, u.Scheme)
	}
}
