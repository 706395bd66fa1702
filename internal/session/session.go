// Package session persists the working record list together with the
// directory it was captured in.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const fileName = "session.json"

// ErrNoSession is returned when nothing has been saved yet.
var ErrNoSession = errors.New("no saved session, run a search first")

// WorkdirError is returned when a session is loaded from a directory other
// than the one it was captured in.
type WorkdirError struct {
	Saved   string
	Current string
}

func (e *WorkdirError) Error() string {
	return fmt.Sprintf("session was captured in %s, not in %s", e.Saved, e.Current)
}

// Session is an ordered list of raw match records.
type Session struct {
	Workdir string    `json:"workdir"`
	Args    []string  `json:"args,omitempty"`
	Records []string  `json:"records"`
	SavedAt time.Time `json:"saved_at"`
}

// Store reads and writes one session blob.
type Store struct {
	path string
}

// DefaultPath returns the per-user session location.
func DefaultPath(appName string) string {
	return filepath.Join(xdg.StateHome, appName, fileName)
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Read returns the stored session without checking its directory.
func (s *Store) Read() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", s.path, err)
	}
	return &sess, nil
}

// Load returns the stored session if it was captured in workdir.
func (s *Store) Load(workdir string) (*Session, error) {
	sess, err := s.Read()
	if err != nil {
		return nil, err
	}
	if filepath.Clean(sess.Workdir) != filepath.Clean(workdir) {
		return nil, &WorkdirError{Saved: sess.Workdir, Current: workdir}
	}
	return sess, nil
}

// Save replaces the stored session. The blob is written to a temporary
// file and renamed into place; a cancelled ctx leaves the old blob intact.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint: errcheck
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}
