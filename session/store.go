// Package session provides SessionStore implementations.
//
// FileStore persists the session triple in a single JSON file shared by
// every process of the application. There is no in-memory cache: each
// read re-opens the file, so a logout performed by another process is
// observed on the next access.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

// FileStore stores the session in a JSON file with atomic writes
// (write-tmp-then-rename), file locking (flock for cross-process, mutex
// for in-process) and 0600 permissions.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// compile-time check
var _ coffrefort.SessionStore = (*FileStore)(nil)

// Option configures the FileStore.
type Option func(*FileStore)

// WithLogger sets a structured logger for the store.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileStore) { s.logger = l }
}

// NewFileStore creates a FileStore backed by the given file path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultPath returns the per-user session file location,
// e.g. ~/.config/coffrefort/session.json.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "coffrefort", "session.json")
}

// Get returns the stored session. Any read or parse failure yields the
// zero Session; the session file being absent is the normal
// unauthenticated state.
func (s *FileStore) Get() coffrefort.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("session file unreadable", "path", s.path, "error", err)
		}
		return coffrefort.Session{}
	}

	var sess coffrefort.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("session file corrupt", "path", s.path, "error", err)
		return coffrefort.Session{}
	}
	return sess
}

// Set persists all three session fields atomically, replacing any prior
// session.
func (s *FileStore) Set(sess coffrefort.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("coffrefort/session: create dir: %w", err)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("coffrefort/session: marshal session: %w", err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	s.logger.Debug("session saved", "path", s.path, "email", sess.Email)
	return nil
}

// Clear removes the session file. Idempotent.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("coffrefort/session: remove session file: %w", err)
	}
	return nil
}

// lock acquires the cross-process file lock and returns its release
// function.
func (s *FileStore) lock() (func(), error) {
	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("coffrefort/session: open lock file: %w", err)
	}
	if err := flockLock(lockFile.Fd()); err != nil {
		_ = lockFile.Close()
		return nil, fmt.Errorf("coffrefort/session: acquire file lock: %w", err)
	}
	return func() {
		_ = flockUnlock(lockFile.Fd())
		_ = lockFile.Close()
	}, nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it over
// the target path. On any error the temp file is cleaned up.
func (s *FileStore) writeAtomic(data []byte) error {
	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("coffrefort/session: create temp file: %w", err)
	}

	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("coffrefort/session: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("coffrefort/session: fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("coffrefort/session: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("coffrefort/session: rename temp file: %w", err)
	}
	return nil
}
