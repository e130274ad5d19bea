package auth

import (
	"encoding/json"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "vkbackup"
	keyringKey     = "tokens"
)

// KeyringStore implements TokenStore using the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a new keyring-based token store
func NewKeyringStore() (*KeyringStore, error) {
	// Test if keyring is available
	testKey := "test_availability"
	err := keyring.Set(keyringService, testKey, "test")
	if err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{}, nil
}

// Store saves tokens to the system keychain
func (k *KeyringStore) Store(tokens *Tokens) error {
	if tokens == nil {
		return ErrInvalidTokens
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	if err := keyring.Set(keyringService, keyringKey, string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}

	return nil
}

// Retrieve gets tokens from the system keychain
func (k *KeyringStore) Retrieve() (*Tokens, error) {
	data, err := keyring.Get(keyringService, keyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return nil, ErrTokensNotFound
		}
		return nil, fmt.Errorf("failed to retrieve from keyring: %w", err)
	}

	var tokens Tokens
	if err := json.Unmarshal([]byte(data), &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokens: %w", err)
	}

	return &tokens, nil
}

// Delete removes tokens from the system keychain
func (k *KeyringStore) Delete() error {
	if err := keyring.Delete(keyringService, keyringKey); err != nil {
		if err == keyring.ErrNotFound {
			return ErrTokensNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
