package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
)

// FileSessionStore keeps the viewer's session key in a single JSON file.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) ports.SessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load() (*domain.StoredSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var session domain.StoredSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, domain.ErrStoredSessionUnreadable
	}
	if session.Email == "" {
		return nil, domain.ErrStoredSessionUnreadable
	}
	return &session, nil
}

func (s *FileSessionStore) Save(session *domain.StoredSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileSessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
