package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Session is the locally stored identity used to sign catalog requests.
//
// A device id always exists (it is generated on first use); Key and User are
// only present once the user has authenticated through the GUI flow.
type Session struct {
	DeviceID string `json:"device_id"`
	Key      string `json:"key,omitempty"`
	User     string `json:"user,omitempty"`
}

// Authenticated reports whether the session carries a signing key.
func (s *Session) Authenticated() bool {
	return s != nil && strings.TrimSpace(s.Key) != ""
}

// Provider supplies the current session.
//
// A (nil, nil) return means "no session" (logged out); callers must treat
// that as public, unsigned access rather than an error.
type Provider interface {
	Session(ctx context.Context) (*Session, error)
}

// Static is a Provider that always returns the same session. Useful for
// tests and for explicit-token invocations.
type Static struct {
	S *Session
}

func (p Static) Session(context.Context) (*Session, error) {
	return p.S, nil
}

const sessionFileName = "session.json"

// FileStore persists the session as JSON under a directory, typically
// os.UserConfigDir()/pantryctl.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. An empty dir resolves to
// the user config directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("session store: resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "pantryctl")
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path() string {
	return filepath.Join(fs.dir, sessionFileName)
}

// Session loads the stored session. If no session file exists yet, a fresh
// one holding only a generated device id is created and persisted, so the
// device identity is stable across invocations.
func (fs *FileStore) Session(ctx context.Context) (*Session, error) {
	if fs == nil {
		return nil, errors.New("session store is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(fs.path())
	if err != nil {
		if os.IsNotExist(err) {
			return fs.initialize()
		}
		return nil, fmt.Errorf("session store: read %s: %w", fs.path(), err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("session store: parse %s: %w", fs.path(), err)
	}
	if strings.TrimSpace(s.DeviceID) == "" {
		// Stored file predates device ids; assign one and persist.
		s.DeviceID = uuid.NewString()
		if err := fs.Save(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Save persists the session, creating the directory if needed.
func (fs *FileStore) Save(s *Session) error {
	if fs == nil {
		return errors.New("session store is nil")
	}
	if s == nil {
		return errors.New("session is nil")
	}
	if err := os.MkdirAll(fs.dir, 0o700); err != nil {
		return fmt.Errorf("session store: create %s: %w", fs.dir, err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session store: encode session: %w", err)
	}
	if err := os.WriteFile(fs.path(), append(raw, '\n'), 0o600); err != nil {
		return fmt.Errorf("session store: write %s: %w", fs.path(), err)
	}
	return nil
}

// Clear removes the stored session. Missing files are not an error.
func (fs *FileStore) Clear() error {
	if fs == nil {
		return errors.New("session store is nil")
	}
	if err := os.Remove(fs.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session store: remove %s: %w", fs.path(), err)
	}
	return nil
}

func (fs *FileStore) initialize() (*Session, error) {
	s := &Session{DeviceID: uuid.NewString()}
	if err := fs.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}
