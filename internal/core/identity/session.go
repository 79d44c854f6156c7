// Package identity stores the signed-in user and their API token.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/feedboard/internal/core/comment"
)

// Credentials is what a successful login or registration yields.
type Credentials struct {
	Token string        `json:"token"`
	User  comment.Actor `json:"user"`
}

// Session holds the current credentials and mirrors them to a JSON file so
// the CLI and TUI stay signed in across runs. A Session with an empty path
// keeps state in memory only.
type Session struct {
	path string

	mu    sync.RWMutex
	creds Credentials
}

// NewSession creates a session backed by path. Call Load to read it.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Load reads stored credentials. A missing file leaves the session empty.
func (s *Session) Load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("parse session: %w", err)
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

// Set replaces the credentials and persists them.
func (s *Session) Set(creds Credentials) error {
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear forgets the credentials and removes the session file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// Actor implements comment.ActorSource.
func (s *Session) Actor() (comment.Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.User, s.creds.User.ID != ""
}

// Credentials returns a copy of the stored credentials.
func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}
