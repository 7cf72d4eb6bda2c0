package mocks

import "sync"

// Alert is one notification shown to the user
type Alert struct {
	Title   string
	Message string
}

// MockNotifier records alerts for assertions
type MockNotifier struct {
	mu     sync.Mutex
	alerts []Alert
}

// NewMockNotifier creates an empty MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Alert records an alert
func (n *MockNotifier) Alert(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, Alert{Title: title, Message: message})
}

// Alerts returns a copy of the recorded alerts
func (n *MockNotifier) Alerts() []Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Alert(nil), n.alerts...)
}

// Last returns the most recent alert, or the zero Alert if none
func (n *MockNotifier) Last() Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.alerts) == 0 {
		return Alert{}
	}
	return n.alerts[len(n.alerts)-1]
}
