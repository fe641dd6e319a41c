package providers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubKeyring swaps the keyring and home-dir hooks for the duration of a test.
func stubKeyring(t *testing.T, values map[string]string, available bool) string {
	t.Helper()
	origGet, origSet, origDelete, origHome := keyringGet, keyringSet, keyringDelete, userHomeDir
	t.Cleanup(func() {
		keyringGet, keyringSet, keyringDelete, userHomeDir = origGet, origSet, origDelete, origHome
	})

	tmpHome := t.TempDir()
	userHomeDir = func() (string, error) { return tmpHome, nil }
	unavailable := errors.New("keyring unavailable")
	keyringSet = func(service, user, password string) error {
		if !available {
			return unavailable
		}
		values[user] = password
		return nil
	}
	keyringGet = func(service, user string) (string, error) {
		if !available {
			return "", unavailable
		}
		v, ok := values[user]
		if !ok {
			return "", errors.New("not found")
		}
		return v, nil
	}
	keyringDelete = func(service, user string) error {
		if !available {
			return unavailable
		}
		if _, ok := values[user]; !ok {
			return errors.New("not found")
		}
		delete(values, user)
		return nil
	}
	return tmpHome
}

func TestStoreCredentialFallsBackToFileWhenKeyringUnavailable(t *testing.T) {
	home := stubKeyring(t, map[string]string{}, false)

	require.NoError(t, StoreCredential("google", "AIza-test"))

	info, err := os.Stat(filepath.Join(home, ".config", "relay", "credentials.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadCredential("google")
	require.NoError(t, err)
	assert.Equal(t, "AIza-test", got)
}

func TestStoreCredentialUsesKeyringWhenAvailable(t *testing.T) {
	values := map[string]string{}
	home := stubKeyring(t, values, true)

	require.NoError(t, StoreCredential("anthropic", "sk-ant"))
	assert.Equal(t, "sk-ant", values["anthropic"])

	_, err := os.Stat(filepath.Join(home, ".config", "relay", "credentials.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCredentialNotFound(t *testing.T) {
	stubKeyring(t, map[string]string{}, true)

	_, err := LoadCredential("openai")
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestDeleteCredential(t *testing.T) {
	stubKeyring(t, map[string]string{}, false)

	require.NoError(t, StoreCredential("openai", "sk-test"))
	require.NoError(t, DeleteCredential("openai"))

	_, err := LoadCredential("openai")
	assert.ErrorIs(t, err, ErrCredentialNotFound)
	assert.ErrorIs(t, DeleteCredential("openai"), ErrCredentialNotFound)
}

func TestValidateCredential(t *testing.T) {
	assert.NoError(t, ValidateCredential("  sk-abc  "))
	assert.Error(t, ValidateCredential(""))
	assert.Error(t, ValidateCredential("two words"))
}
