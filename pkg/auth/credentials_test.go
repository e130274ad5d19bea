package auth

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStoreAndRetrieve(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	tokens := &Tokens{VKToken: "vk-token", DiskToken: "disk-token"}
	require.NoError(t, manager.Store(tokens))

	got, err := manager.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "vk-token", got.VKToken)
	assert.Equal(t, "disk-token", got.DiskToken)
	assert.False(t, got.LastModified.IsZero())
}

func TestManagerStoreRejectsEmptyTokens(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	assert.ErrorIs(t, manager.Store(nil), ErrInvalidTokens)
	assert.ErrorIs(t, manager.Store(&Tokens{}), ErrInvalidTokens)
}

func TestManagerFallsBackToNextStore(t *testing.T) {
	failing := NewMockStore()
	failing.StoreErr = errors.New("keyring not available")
	failing.RetrieveErr = errors.New("keyring not available")
	working := NewMockStore()

	manager := NewManagerWithStores(failing, working)

	tokens := &Tokens{VKToken: "vk-token"}
	require.NoError(t, manager.Store(tokens))

	got, err := manager.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "vk-token", got.VKToken)
}

func TestManagerRetrieveNotFound(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	_, err := manager.Retrieve()
	assert.ErrorIs(t, err, ErrTokensNotFound)
}

func TestManagerDelete(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	require.NoError(t, manager.Store(&Tokens{VKToken: "vk"}))
	require.NoError(t, manager.Delete())

	_, err := manager.Retrieve()
	assert.ErrorIs(t, err, ErrTokensNotFound)

	assert.Error(t, manager.Delete())
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	t.Run("retrieves tokens from the environment", func(t *testing.T) {
		os.Setenv("VKBACKUP_VK_TOKEN", "env-vk")
		os.Setenv("VKBACKUP_DISK_TOKEN", "env-disk")
		defer func() {
			os.Unsetenv("VKBACKUP_VK_TOKEN")
			os.Unsetenv("VKBACKUP_DISK_TOKEN")
		}()

		tokens, err := store.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, "env-vk", tokens.VKToken)
		assert.Equal(t, "env-disk", tokens.DiskToken)
	})

	t.Run("not found without environment variables", func(t *testing.T) {
		os.Unsetenv("VKBACKUP_VK_TOKEN")
		os.Unsetenv("VKBACKUP_DISK_TOKEN")

		_, err := store.Retrieve()
		assert.ErrorIs(t, err, ErrTokensNotFound)
	})

	t.Run("read-only", func(t *testing.T) {
		assert.Error(t, store.Store(&Tokens{VKToken: "x"}))
		assert.Error(t, store.Delete())
	})
}
