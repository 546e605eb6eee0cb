// Package session holds the bearer token for the logged-in user. The token
// is set on login, cleared on logout, and read-only everywhere else; every
// component that talks to the API receives a Store instead of reaching for
// a global.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store supplies the bearer token for API calls. An empty token means no
// authenticated session.
type Store interface {
	Token() string
	Login(token string)
	Logout()
}

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) Login(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryStore) Logout() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// FileStore persists the token under the user's home directory so separate
// CLI invocations share one session. Token reads fall back to empty on any
// file error; a missing file is simply "not logged in".
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// DefaultTokenPath is where the CLI keeps its session token.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ticketing", "token")
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *FileStore) Login(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path)
}
