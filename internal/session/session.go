// Package session holds the client's record of the currently authenticated
// user and its bearer token.
//
// The session is the only client-side state that survives a restart. It is
// persisted as a small JSON file under the user config dir (the terminal
// analog of the two browser local-storage keys `accessToken` and `username`).
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Session is the persisted credential pair. A non-empty token always comes
// with a non-empty username.
type Session struct {
	Token    string `json:"accessToken"`
	Username string `json:"username"`
}

// Store abstracts session persistence so view-model and API code never touch
// a global singleton, and tests can inject an in-memory fake.
type Store interface {
	// Current returns the persisted session. ok is false when no session is
	// stored.
	Current() (s Session, ok bool)
	// Set persists both values together.
	Set(s Session) error
	// Clear removes both values together.
	Clear() error
}

var errIncomplete = errors.New("session requires both token and username")

// FileStore persists the session at <dir>/session.json.
type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

// DefaultDir resolves the taskdeck config dir (~/.taskdeck), honoring the
// TASKDECK_CONFIG_DIR override so tests never touch the real home dir.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TASKDECK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck"), nil
}

// Open returns a FileStore rooted at the default config dir.
func Open() (*FileStore, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{Dir: dir}, nil
}

func (f *FileStore) path() string {
	return filepath.Join(f.Dir, "session.json")
}

func (f *FileStore) Current() (Session, bool) {
	b, err := os.ReadFile(f.path())
	if err != nil {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, false
	}
	if strings.TrimSpace(s.Token) == "" || strings.TrimSpace(s.Username) == "" {
		// A half-written session is as good as no session.
		return Session{}, false
	}
	return s, true
}

func (f *FileStore) Set(s Session) error {
	if strings.TrimSpace(s.Token) == "" || strings.TrimSpace(s.Username) == "" {
		return errIncomplete
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(f.Dir, "session-*.json", f.path(), append(b, '\n'), 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
