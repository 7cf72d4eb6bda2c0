package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users      map[string]*model.StoredUser
	order      []string
	emailIndex map[string]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[string]*model.StoredUser),
		emailIndex: make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Insert stores a copy of the record, rejecting duplicate emails
func (s *Storage) Insert(ctx context.Context, table string, record *model.RegistrationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if table != storage.TableUsers {
		return storage.NewUnknownTableError(table)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(record.Email)
	if _, exists := s.emailIndex[key]; exists {
		return storage.NewDuplicateEmailError(record.Email)
	}

	id := uuid.NewString()
	s.users[id] = &model.StoredUser{ID: id, RegistrationRecord: *record}
	s.order = append(s.order, id)
	s.emailIndex[key] = id
	return nil
}

// GetUserByEmail returns the stored user with the given email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.StoredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// Users returns every stored user in insertion order
func (s *Storage) Users() []model.StoredUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.StoredUser, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.users[id])
	}
	return result
}

// Count returns the number of stored users
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
