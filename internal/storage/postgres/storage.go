package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	firstname     TEXT NOT NULL,
	lastname      TEXT NOT NULL,
	mobile_number TEXT NOT NULL,
	email         TEXT NOT NULL,
	password      TEXT NOT NULL,
	status        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	deleted_at    TIMESTAMPTZ NULL,
	CONSTRAINT users_email_key UNIQUE (email)
)`

// Config holds PostgreSQL connection settings
type Config struct {
	// URL is a libpq-style connection string or postgres:// URL
	URL      string
	MaxConns int32
}

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// New connects to PostgreSQL and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// EnsureSchema creates the users table if it does not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Close closes the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Insert writes one row into the users table
func (s *Storage) Insert(ctx context.Context, table string, record *model.RegistrationRecord) error {
	if table != storage.TableUsers {
		return storage.NewUnknownTableError(table)
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(id, firstname, lastname, mobile_number, email, password, status, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pgx.Identifier{table}.Sanitize())

	_, err := s.pool.Exec(ctx, query,
		uuid.New(),
		record.Firstname,
		record.Lastname,
		record.MobileNumber,
		record.Email,
		record.Password,
		record.Status,
		record.CreatedAt,
		record.UpdatedAt,
		record.DeletedAt,
	)
	return mapError(err)
}

// GetUserByEmail returns the stored user with the given email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.StoredUser, error) {
	const query = `SELECT id, firstname, lastname, mobile_number, email, password, status,
		created_at, updated_at, deleted_at FROM users WHERE email = $1`

	var (
		u  model.StoredUser
		id uuid.UUID
	)
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&id, &u.Firstname, &u.Lastname, &u.MobileNumber, &u.Email, &u.Password,
		&u.Status, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	u.ID = id.String()
	return &u, nil
}
