package auth

import "os"

// EnvironmentStore implements TokenStore over environment variables.
// It is read-only: Store and Delete report the tokens as not storable.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based token store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(tokens *Tokens) error {
	return ErrInvalidTokens
}

// Retrieve reads tokens from VKBACKUP_VK_TOKEN and VKBACKUP_DISK_TOKEN
func (e *EnvironmentStore) Retrieve() (*Tokens, error) {
	vkToken := os.Getenv("VKBACKUP_VK_TOKEN")
	diskToken := os.Getenv("VKBACKUP_DISK_TOKEN")

	if vkToken == "" && diskToken == "" {
		return nil, ErrTokensNotFound
	}

	return &Tokens{
		VKToken:   vkToken,
		DiskToken: diskToken,
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrTokensNotFound
}
