package mysql

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

func TestMapErrorDuplicateEntry(t *testing.T) {
	err := mapError(&mysql.MySQLError{
		Number:  DuplicateEntry,
		Message: "Duplicate entry 'joan@mail.com' for key 'users.users_email_key'",
	}, "joan@mail.com")

	var remoteErr *storage.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, storage.CodeUniqueViolation, remoteErr.Code)
	assert.Equal(t, "Duplicate entry 'joan@mail.com' for key 'users.users_email_key'", remoteErr.Message)
	assert.ErrorIs(t, err, model.ErrDuplicateUser)
}

func TestMapErrorOtherMySQLError(t *testing.T) {
	err := mapError(&mysql.MySQLError{Number: 1146, Message: "Table 'app.users' doesn't exist"}, "joan@mail.com")

	var remoteErr *storage.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "1146", remoteErr.Code)
	assert.Equal(t, "Table 'app.users' doesn't exist", remoteErr.Message)
}

func TestMapErrorPlainError(t *testing.T) {
	err := mapError(errors.New("invalid connection"), "joan@mail.com")

	var remoteErr *storage.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "invalid connection", remoteErr.Message)
}

// StorageSuite runs against a real database when ONBOARD_TEST_MYSQL_SERVER is set
type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	if os.Getenv("ONBOARD_TEST_MYSQL_SERVER") == "" {
		t.Skip("ONBOARD_TEST_MYSQL_SERVER not set")
	}
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()

	store, err := New(Config{
		Net:      "tcp",
		Server:   os.Getenv("ONBOARD_TEST_MYSQL_SERVER"),
		DBName:   os.Getenv("ONBOARD_TEST_MYSQL_DB"),
		User:     os.Getenv("ONBOARD_TEST_MYSQL_USER"),
		Password: os.Getenv("ONBOARD_TEST_MYSQL_PASSWORD"),
		Timeout:  2 * time.Second,
	})
	s.Require().NoError(err)
	s.Require().NoError(store.EnsureSchema(s.ctx))

	_, err = store.db.ExecContext(s.ctx, "DELETE FROM users")
	s.Require().NoError(err)

	s.storage = store
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) record(email string) *model.RegistrationRecord {
	form := model.RegistrationForm{Firstname: "Joan", Lastname: "Ayala", Mobile: "3005998866", Email: email}
	return model.NewRegistrationRecord(form, "$2a$10$hash", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

func (s *StorageSuite) TestInsertAndGetUser() {
	s.Require().NoError(s.storage.Insert(s.ctx, storage.TableUsers, s.record("joan@mail.com")))

	user, err := s.storage.GetUserByEmail(s.ctx, "joan@mail.com")
	s.Require().NoError(err)
	s.Equal("Ayala", user.Lastname)
	s.Nil(user.DeletedAt)
}

func (s *StorageSuite) TestInsertRejectsDuplicateEmail() {
	s.Require().NoError(s.storage.Insert(s.ctx, storage.TableUsers, s.record("joan@mail.com")))

	err := s.storage.Insert(s.ctx, storage.TableUsers, s.record("joan@mail.com"))
	s.ErrorIs(err, model.ErrDuplicateUser)
}
