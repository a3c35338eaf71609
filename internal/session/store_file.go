package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	tokenFile    = "token"
	profileFile  = "profile.json"
	rememberFile = "remember"
)

// FileStore persists the session as plain files under a directory, the CLI
// analog of browser local storage. Writes are best-effort: an unwritable
// directory degrades to a no-op rather than failing the caller.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore constructs a store rooted at dir. The directory is created
// lazily on first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Save(user Profile, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dir == "" {
		return
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return
	}
	profile, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
	_ = os.WriteFile(filepath.Join(s.dir, profileFile), profile, 0o600)
}

func (s *FileStore) Read() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil || len(token) == 0 {
		return nil
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if err != nil {
		return nil
	}
	var user Profile
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return nil
	}
	return &Session{Token: string(token), User: user}
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = os.Remove(filepath.Join(s.dir, tokenFile))
	_ = os.Remove(filepath.Join(s.dir, profileFile))
	_ = os.Remove(filepath.Join(s.dir, rememberFile))
}

func (s *FileStore) HasSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(filepath.Join(s.dir, tokenFile))
	return err == nil && info.Size() > 0
}

func (s *FileStore) SetRemember(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, rememberFile)
	if !v {
		_ = os.Remove(path)
		return
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return
	}
	_ = os.WriteFile(path, []byte("1"), 0o600)
}

func (s *FileStore) Remembered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(filepath.Join(s.dir, rememberFile))
	return err == nil
}
