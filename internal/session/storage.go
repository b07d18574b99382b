package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/DJRivera25/blogctl/internal/errors"
)

// TokenStorage persists the bearer token across process restarts. Logout must
// remove the persisted value entirely, not merely blank it.
type TokenStorage interface {
	Save(token string) error
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)
	Clear() error
}

// storedAuth is the on-disk shape of the credentials file
type storedAuth struct {
	AccessToken string `json:"access_token"`
}

// FileStorage keeps the token in a mode-0600 JSON file under the blogctl
// home directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a FileStorage rooted at dir
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// DefaultDir returns ~/.blogctl, falling back to the working directory when
// the home directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blogctl"
	}
	return filepath.Join(home, ".blogctl")
}

func (s *FileStorage) path() string {
	return filepath.Join(s.dir, "auth.json")
}

// Save writes the token to disk
func (s *FileStorage) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialStorage, "failed to create credentials directory", err)
	}

	data, err := json.MarshalIndent(storedAuth{AccessToken: token}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialStorage, "failed to encode credentials", err)
	}

	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialStorage, "failed to write credentials file", err)
	}
	return nil
}

// Load reads the persisted token; a missing file means no session
func (s *FileStorage) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(errors.ErrCodeCredentialStorage, "failed to read credentials file", err)
	}

	var auth storedAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		return "", errors.Wrap(errors.ErrCodeCredentialStorage, "credentials file is corrupt", err)
	}

	return auth.AccessToken, nil
}

// Clear removes the credentials file entirely
func (s *FileStorage) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeCredentialStorage, "failed to remove credentials file", err)
	}
	return nil
}
