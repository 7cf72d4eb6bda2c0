package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

// DuplicateEntry is MySQL's error number for unique key violations
const DuplicateEntry = 1062

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            CHAR(36) NOT NULL PRIMARY KEY,
	firstname     VARCHAR(255) NOT NULL,
	lastname      VARCHAR(255) NOT NULL,
	mobile_number VARCHAR(64) NOT NULL,
	email         VARCHAR(255) NOT NULL,
	password      VARCHAR(255) NOT NULL,
	status        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    DATETIME(6) NOT NULL,
	updated_at    DATETIME(6) NOT NULL,
	deleted_at    DATETIME(6) NULL,
	UNIQUE KEY users_email_key (email)
)`

// Config holds MySQL connection settings
type Config struct {
	Net                string
	Server             string
	DBName             string
	User               string
	Password           string
	Timeout            time.Duration
	MaxIdleConnections int
	MaxOpenConnections int
}

// Storage is a MySQL-backed implementation of the storage interface
type Storage struct {
	db *sqlx.DB
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// New connects to MySQL and verifies the connection
func New(cfg Config) (*Storage, error) {
	conf := mysql.NewConfig()
	conf.Net = cfg.Net
	conf.Addr = cfg.Server
	conf.User = cfg.User
	conf.Passwd = cfg.Password
	conf.DBName = cfg.DBName
	conf.Timeout = cfg.Timeout
	conf.Loc = time.UTC
	conf.ParseTime = true

	dbConn, err := sqlx.Connect("mysql", conf.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("db connection failed: %w", err)
	}

	if cfg.MaxIdleConnections > 0 {
		dbConn.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	if cfg.MaxOpenConnections > 0 {
		dbConn.SetMaxOpenConns(cfg.MaxOpenConnections)
	}

	return &Storage{db: dbConn}, nil
}

// NewWithDB wraps an existing connection
func NewWithDB(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// EnsureSchema creates the users table if it does not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Insert writes one row into the users table
func (s *Storage) Insert(ctx context.Context, table string, record *model.RegistrationRecord) error {
	if table != storage.TableUsers {
		return storage.NewUnknownTableError(table)
	}

	const query = `INSERT INTO users
		(id, firstname, lastname, mobile_number, email, password, status, created_at, updated_at, deleted_at)
		VALUES (:id, :firstname, :lastname, :mobile_number, :email, :password, :status, :created_at, :updated_at, :deleted_at)`

	row := model.StoredUser{ID: uuid.NewString(), RegistrationRecord: *record}
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return mapError(err, record.Email)
	}
	return nil
}

// GetUserByEmail returns the stored user with the given email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.StoredUser, error) {
	const query = `SELECT id, firstname, lastname, mobile_number, email, password, status,
		created_at, updated_at, deleted_at FROM users WHERE email = ?`

	var u model.StoredUser
	if err := s.db.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("select query err: %w", err)
	}
	return &u, nil
}

func mapError(err error, email string) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == DuplicateEntry {
			dup := storage.NewDuplicateEmailError(email)
			dup.Message = myErr.Message
			return dup
		}
		return &storage.RemoteError{
			Code:    fmt.Sprintf("%d", myErr.Number),
			Message: myErr.Message,
			Err:     err,
		}
	}
	return &storage.RemoteError{Message: err.Error(), Err: err}
}
