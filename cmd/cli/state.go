package main

import (
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"os"
	"path/filepath"
	"sync"
)

// cliState is everything the CLI keeps between runs.
type cliState struct {
	Token            string `json:"token,omitempty"`
	Email            string `json:"email,omitempty"`
	CurrentWorkplace string `json:"current_workplace,omitempty"`
}

// stateFile persists cliState as JSON and doubles as the coordinator's pointer store.
type stateFile struct {
	mu    sync.Mutex
	path  string
	state cliState
}

func defaultStatePath() (string, error) {
	if p := os.Getenv("FINTRACK_STATE"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "fintrack", "state.json"), nil
}

// openState reads path. A missing file is an empty state.
func openState(path string) (*stateFile, error) {
	s := &stateFile{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	if err := jsoniter.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("corrupt state file %s: %w", path, err)
	}
	return s, nil
}

func (s *stateFile) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentWorkplace, nil
}

func (s *stateFile) Save(workplaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentWorkplace = workplaceID
	return s.flush()
}

func (s *stateFile) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *stateFile) SetSession(token, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	s.state.Email = email
	return s.flush()
}

// ClearSession forgets the token. The current workplace pointer is kept.
func (s *stateFile) ClearSession() error {
	return s.SetSession("", "")
}

func (s *stateFile) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Email
}

func (s *stateFile) flush() error {
	raw, err := jsoniter.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, raw, 0o600)
}

// writeFileAtomic writes to a temp file in the target directory and renames it over
// path, so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
