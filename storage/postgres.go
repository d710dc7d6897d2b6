package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trawers-adr/registration-backend/interfaces"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

const registrationColumns = "id, full_name, email, phone, status, fiszka_number, category, created_at, updated_at"

// PostgresStore implements interfaces.Store against the managed Postgres
// instance. See schema.sql for the expected tables.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresStore connects a pool to the given connection URI and verifies
// the connection with a ping.
func NewPostgresStore(ctx context.Context, connURI string, log *slog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connURI)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool, log: log}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func scanRegistration(row pgx.Row) (*interfaces.Registration, error) {
	var reg interfaces.Registration
	err := row.Scan(
		&reg.ID, &reg.FullName, &reg.Email, &reg.Phone, &reg.Status,
		&reg.FiszkaNumber, &reg.Category, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindByContact returns the most recent registration matching phone or email.
func (s *PostgresStore) FindByContact(ctx context.Context, phone, email string) (*interfaces.Registration, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 WHERE phone = $1 OR email = $2
		 ORDER BY created_at DESC
		 LIMIT 1`,
		phone, email)

	reg, err := scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, interfaces.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query registration by contact: %w", err)
	}
	return reg, nil
}

// Insert creates a new registration with the initial in-progress status.
func (s *PostgresStore) Insert(ctx context.Context, newReg interfaces.NewRegistration) (*interfaces.Registration, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO registrations (full_name, email, phone, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 RETURNING `+registrationColumns,
		newReg.FullName, newReg.Email, newReg.Phone, interfaces.StatusInProgress)

	reg, err := scanRegistration(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, interfaces.ErrDuplicateContact
		}
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}
	s.log.Debug("Inserted registration", slog.Int64("id", reg.ID))
	return reg, nil
}

// All returns every registration, newest first.
func (s *PostgresStore) All(ctx context.Context) ([]interfaces.Registration, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	regs := []interfaces.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registration rows: %w", err)
	}
	return regs, nil
}

// UpdateStatus sets the status of the registration with the given id.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, status interfaces.Status) (*interfaces.Registration, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE registrations
		 SET status = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+registrationColumns,
		status, id)

	reg, err := scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, interfaces.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}
	return reg, nil
}

// CompleteStageOne marks the matched registration as stage-one complete.
// Optional fields are merged with COALESCE so absent values never overwrite
// stored ones.
func (s *PostgresStore) CompleteStageOne(ctx context.Context, upd interfaces.StageOneUpdate) (*interfaces.Registration, error) {
	var row pgx.Row
	if upd.ID != 0 {
		row = s.pool.QueryRow(ctx,
			`UPDATE registrations
			 SET status = $1, updated_at = now(),
			     fiszka_number = COALESCE($2, fiszka_number),
			     category = COALESCE($3, category)
			 WHERE id = $4
			 RETURNING `+registrationColumns,
			interfaces.StatusStageOneComplete, upd.FiszkaNumber, upd.Category, upd.ID)
	} else {
		row = s.pool.QueryRow(ctx,
			`UPDATE registrations
			 SET status = $1, updated_at = now(),
			     fiszka_number = COALESCE($2, fiszka_number),
			     category = COALESCE($3, category)
			 WHERE phone = $4
			 RETURNING `+registrationColumns,
			interfaces.StatusStageOneComplete, upd.FiszkaNumber, upd.Category, upd.Phone)
	}

	reg, err := scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, interfaces.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete stage one: %w", err)
	}
	return reg, nil
}

// Get returns the setting row for key.
func (s *PostgresStore) Get(ctx context.Context, key string) (*interfaces.Setting, error) {
	var set interfaces.Setting
	err := s.pool.QueryRow(ctx,
		`SELECT key, value, created_at, updated_at FROM settings WHERE key = $1`,
		key).Scan(&set.Key, &set.Value, &set.CreatedAt, &set.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, interfaces.ErrSettingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query setting: %w", err)
	}
	return &set, nil
}

// Put inserts or updates the setting row for key.
func (s *PostgresStore) Put(ctx context.Context, key, value string) (*interfaces.Setting, error) {
	var set interfaces.Setting
	err := s.pool.QueryRow(ctx,
		`INSERT INTO settings (key, value, created_at, updated_at)
		 VALUES ($1, $2, now(), now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		 RETURNING key, value, created_at, updated_at`,
		key, value).Scan(&set.Key, &set.Value, &set.CreatedAt, &set.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return &set, nil
}
