package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// saveTask is one background save. err is written before done is closed.
type saveTask struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Saver persists sessions in the background with at most one save in
// flight. Starting a save cancels and waits for the previous one.
type Saver struct {
	store *Store

	mu   sync.Mutex
	task *saveTask
}

// NewSaver creates a Saver writing to store.
func NewSaver(store *Store) *Saver {
	return &Saver{store: store}
}

// Save starts persisting a snapshot of sess.
func (s *Saver) Save(sess Session) {
	sess.Records = slices.Clone(sess.Records)
	sess.Args = slices.Clone(sess.Args)
	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.task; prev != nil {
		prev.cancel()
		<-prev.done
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &saveTask{cancel: cancel, done: make(chan struct{})}
	s.task = task

	go func() {
		defer close(task.done)
		defer cancel()

		err := s.store.Save(ctx, &sess)
		switch {
		case errors.Is(err, context.Canceled):
			slog.Debug("Session save superseded", "records", len(sess.Records))
		case err != nil:
			slog.Error("Failed to save session", "path", s.store.Path(), "error", err)
			task.err = err
		default:
			slog.Debug("Session saved", "path", s.store.Path(), "records", len(sess.Records))
		}
	}()
}

// Wait blocks until the save in flight, if any, has finished and returns
// its error.
func (s *Saver) Wait() error {
	s.mu.Lock()
	task := s.task
	s.mu.Unlock()

	if task == nil {
		return nil
	}
	<-task.done
	return task.err
}
