package auth

import "sync"

// MockStore is an in-memory TokenStore for testing
type MockStore struct {
	mu     sync.Mutex
	tokens *Tokens

	// Optional error injection
	StoreErr    error
	RetrieveErr error
	DeleteErr   error
}

// NewMockStore creates a new in-memory token store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Store saves tokens in memory
func (m *MockStore) Store(tokens *Tokens) error {
	if m.StoreErr != nil {
		return m.StoreErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *tokens
	m.tokens = &copied
	return nil
}

// Retrieve returns the stored tokens
func (m *MockStore) Retrieve() (*Tokens, error) {
	if m.RetrieveErr != nil {
		return nil, m.RetrieveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		return nil, ErrTokensNotFound
	}
	copied := *m.tokens
	return &copied, nil
}

// Delete removes the stored tokens
func (m *MockStore) Delete() error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		return ErrTokensNotFound
	}
	m.tokens = nil
	return nil
}
