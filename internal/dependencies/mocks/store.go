package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

// InsertCall records one call to MockStore.Insert
type InsertCall struct {
	Table  string
	Record model.RegistrationRecord
}

// MockStore is a mock implementation of storage.Store for testing
type MockStore struct {
	mu    sync.Mutex
	calls []InsertCall

	// Err is returned from every Insert when set
	Err error
	// PanicValue makes Insert panic when non-nil
	PanicValue any

	// gate, when set, blocks Insert until Release is called
	gate    chan struct{}
	started chan struct{}
}

// Ensure MockStore implements Store
var _ storage.Store = (*MockStore)(nil)

// NewMockStore creates a MockStore that succeeds immediately
func NewMockStore() *MockStore {
	return &MockStore{started: make(chan struct{}, 16)}
}

// NewBlockingMockStore creates a MockStore whose Insert waits for Release
func NewBlockingMockStore() *MockStore {
	s := NewMockStore()
	s.gate = make(chan struct{})
	return s
}

// Insert records the call and returns the configured result
func (s *MockStore) Insert(ctx context.Context, table string, record *model.RegistrationRecord) error {
	s.mu.Lock()
	s.calls = append(s.calls, InsertCall{Table: table, Record: *record})
	gate := s.gate
	s.mu.Unlock()

	select {
	case s.started <- struct{}{}:
	default:
	}

	if gate != nil {
		<-gate
	}
	if s.PanicValue != nil {
		panic(s.PanicValue)
	}
	return s.Err
}

// Started is signalled each time Insert is entered
func (s *MockStore) Started() <-chan struct{} {
	return s.started
}

// Release unblocks every pending and future Insert
func (s *MockStore) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// Calls returns a copy of the recorded inserts
func (s *MockStore) Calls() []InsertCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]InsertCall(nil), s.calls...)
}

// CallCount returns the number of recorded inserts
func (s *MockStore) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
