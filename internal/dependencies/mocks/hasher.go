package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/mcoot/onboarding/internal/dependencies/hasher"
)

// ErrHashMismatch is returned by MockHasher.Compare on mismatch
var ErrHashMismatch = errors.New("hash does not match password")

// MockHasher is a fast, deterministic PasswordHasher for testing
type MockHasher struct {
	mu    sync.Mutex
	calls int

	// Err is returned from Hash when set
	Err error
	// PanicValue makes Hash panic when non-nil
	PanicValue any
}

// Ensure MockHasher implements PasswordHasher
var _ hasher.PasswordHasher = (*MockHasher)(nil)

// NewMockHasher creates a MockHasher
func NewMockHasher() *MockHasher {
	return &MockHasher{}
}

// Hash returns "hashed:" + password, or the configured failure
func (h *MockHasher) Hash(ctx context.Context, password string) (string, error) {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()

	if h.PanicValue != nil {
		panic(h.PanicValue)
	}
	if h.Err != nil {
		return "", h.Err
	}
	return "hashed:" + password, nil
}

// Compare checks a hash produced by Hash
func (h *MockHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return ErrHashMismatch
	}
	return nil
}

// Calls returns the number of Hash calls
func (h *MockHasher) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}
