package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// TokenKey is the fixed key the auth token is persisted under.
const TokenKey = "auth_token"

// TokenStore persists the session token across runs. The file store is the
// CLI equivalent of browser local storage; the memory store is for tests.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// --- File-backed store ---

type FileTokenStore struct {
	path string
}

// NewFileTokenStore persists tokens in a JSON file. An empty path falls back
// to <user config dir>/buildmart/session.json.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "buildmart", "session.json")
	}
	return &FileTokenStore{path: path}, nil
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return "", err
	}
	return m[TokenKey], nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(map[string]string{TokenKey: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// --- In-memory store ---

type MemoryTokenStore struct {
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (string, error) {
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.token = ""
	return nil
}
