package factory

import (
	"time"

	"github.com/mcoot/onboarding/internal/dependencies/mocks"
	"github.com/mcoot/onboarding/internal/services/splash"
	"github.com/mcoot/onboarding/internal/storage/memory"
	"github.com/mcoot/onboarding/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockHasher   *mocks.MockHasher
	MockNotifier *mocks.MockNotifier
	MemoryStore  *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockHasher := mocks.NewMockHasher()

	app := newWithDependencies(store, mockClock, mockHasher, splash.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockHasher:   mockHasher,
		MockNotifier: mocks.NewMockNotifier(),
		MemoryStore:  store,
	}
}
