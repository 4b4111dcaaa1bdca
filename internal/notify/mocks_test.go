package notify

import (
	"context"
	"errors"
	"sync"
)

// MockSender is a mock implementation of Sender for testing.
// It records all method calls and allows configuring return values and errors.
type MockSender struct {
	mu sync.Mutex

	// Configuration
	ShowErrors  []error
	ReinitError error
	CloseError  error
	available   bool

	// Call tracking
	ShowCalls   []Notification
	ReinitCount int
	CloseCount  int
}

// NewMockSender creates a new mock sender with default behavior (available, no errors)
func NewMockSender() *MockSender {
	return &MockSender{available: true}
}

// WithShowErrors queues errors returned by successive Show calls; once the
// queue is empty Show succeeds
func (m *MockSender) WithShowErrors(errs ...error) *MockSender {
	m.ShowErrors = errs
	return m
}

// WithReinitError configures the mock to return an error on Reinit
func (m *MockSender) WithReinitError(err error) *MockSender {
	m.ReinitError = err
	return m
}

// WithCloseError configures the mock to return an error on Close
func (m *MockSender) WithCloseError(err error) *MockSender {
	m.CloseError = err
	return m
}

// WithAvailable configures whether the backend reports as available
func (m *MockSender) WithAvailable(available bool) *MockSender {
	m.available = available
	return m
}

// Show records the call and returns the next queued error
func (m *MockSender) Show(_ context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ShowCalls = append(m.ShowCalls, n)
	if len(m.ShowErrors) == 0 {
		return nil
	}
	err := m.ShowErrors[0]
	m.ShowErrors = m.ShowErrors[1:]
	return err
}

// Reinit records the call and returns the configured error
func (m *MockSender) Reinit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReinitCount++
	return m.ReinitError
}

// Available returns whether the backend is available
func (m *MockSender) Available() bool {
	return m.available
}

// Close records the call and returns the configured error
func (m *MockSender) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCount++
	return m.CloseError
}

// Common test errors
var (
	ErrMockShow   = errors.New("mock show error")
	ErrMockReinit = errors.New("mock reinit error")
)
