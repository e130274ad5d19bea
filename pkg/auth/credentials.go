package auth

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by token stores
var (
	ErrInvalidTokens  = errors.New("invalid tokens")
	ErrTokensNotFound = errors.New("tokens not found")
)

// Tokens holds the pre-obtained access tokens for both services
type Tokens struct {
	VKToken      string    `json:"vk_token"`
	DiskToken    string    `json:"disk_token"`
	LastModified time.Time `json:"last_modified"`
}

// TokenStore is the interface for storing and retrieving access tokens
type TokenStore interface {
	// Store saves the tokens
	Store(tokens *Tokens) error

	// Retrieve gets the stored tokens
	Retrieve() (*Tokens, error)

	// Delete removes the stored tokens
	Delete() error
}

// Manager handles token storage with fallback mechanisms
type Manager struct {
	stores []TokenStore
}

// NewManager creates a token manager backed by the system keychain, with
// environment variables as a read-only fallback
func NewManager() (*Manager, error) {
	var stores []TokenStore

	// Try keyring first (system keychain)
	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	// Environment store as last resort
	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager over explicit stores, for tests
func NewManagerWithStores(stores ...TokenStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves tokens using the first store that accepts them
func (m *Manager) Store(tokens *Tokens) error {
	if tokens == nil || (tokens.VKToken == "" && tokens.DiskToken == "") {
		return ErrInvalidTokens
	}

	tokens.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(tokens); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store tokens: %w", lastErr)
	}
	return errors.New("no available token stores")
}

// Retrieve gets tokens from the first store that has them
func (m *Manager) Retrieve() (*Tokens, error) {
	for _, store := range m.stores {
		if tokens, err := store.Retrieve(); err == nil && tokens != nil {
			return tokens, nil
		}
	}
	return nil, ErrTokensNotFound
}

// Delete removes tokens from every store that holds them
func (m *Manager) Delete() error {
	var lastErr error
	deleted := false
	for _, store := range m.stores {
		if err := store.Delete(); err == nil {
			deleted = true
		} else if !errors.Is(err, ErrTokensNotFound) {
			lastErr = err
		}
	}

	if deleted {
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return ErrTokensNotFound
}
