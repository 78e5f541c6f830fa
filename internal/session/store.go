// Package session persists the bearer token for the active session.
//
// The token is opaque to the client: no structure is assumed, no expiry is
// tracked. It is encrypted at rest with a machine-local age identity and
// survives process restarts until an explicit Clear.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"taskdeck/internal/secrets"
)

// Store is a file-backed session store. All components read the token
// through an injected *Store; only the auth flows and logout write it.
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) tokenPath() string {
	return filepath.Join(s.baseDir, "token")
}

func (s *Store) keyPath() string {
	return filepath.Join(s.baseDir, ".age-key")
}

// Set encrypts and persists the token, replacing any previous one.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := secrets.GenerateIdentity(s.keyPath()); err != nil {
		return err
	}
	identity, err := secrets.LoadIdentity(s.keyPath())
	if err != nil {
		return err
	}

	blob, err := secrets.Encrypt(token, identity.Recipient())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	// Atomic replace so a crash never leaves a half-written token.
	path := s.tokenPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(blob+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename token: %w", err)
	}
	return nil
}

// Get returns the stored token, or false when no session is active.
// An unreadable or undecryptable token counts as no session.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return "", false
	}
	blob := strings.TrimSpace(string(data))

	if !secrets.IsEncrypted(blob) {
		// Pre-encryption token files are honored as-is.
		return blob, blob != ""
	}

	identity, err := secrets.LoadIdentity(s.keyPath())
	if err != nil {
		return "", false
	}
	token, err := secrets.Decrypt(blob, identity)
	if err != nil {
		return "", false
	}
	return token, token != ""
}

// Active reports whether a session token is present.
func (s *Store) Active() bool {
	_, ok := s.Get()
	return ok
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.tokenPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
