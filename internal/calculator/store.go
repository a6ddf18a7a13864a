package calculator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one client's keypad.
type Session struct {
	ID        string
	State     State
	Presses   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store keeps sessions in memory. The zero value is not usable; call NewStore.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	maxSessions int
	now         func() time.Time
}

// NewStore returns an empty store holding at most maxSessions sessions
// (0 means unlimited).
func NewStore(maxSessions int) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create starts a new session in the power-on state.
func (s *Store) Create() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return Session{}, fmt.Errorf("create session: %w (max %d)", ErrTooManySessions, s.maxSessions)
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		State:     NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.ID] = sess

	return *sess, nil
}

// Get returns a copy of the session with the given id.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("get session %q: %w", id, ErrSessionNotFound)
	}
	return *sess, nil
}

// StepFunc observes one transition made by PressEach.
type StepFunc func(i int, tok Token, prev, next State)

// Press feeds toks to the session in order. The whole batch is applied
// under one lock so concurrent presses never interleave.
func (s *Store) Press(id string, toks ...Token) (Session, error) {
	return s.PressEach(id, toks, nil)
}

// PressEach is Press with a callback run after every transition while the
// session lock is held. step must not call back into the store.
func (s *Store) PressEach(id string, toks []Token, step StepFunc) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("press session %q: %w", id, ErrSessionNotFound)
	}

	for i, tok := range toks {
		prev := sess.State
		sess.State = Handle(prev, tok)
		if step != nil {
			step(i, tok, prev, sess.State)
		}
	}
	sess.Presses += len(toks)
	sess.UpdatedAt = s.now()

	return *sess, nil
}

// Delete removes the session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("delete session %q: %w", id, ErrSessionNotFound)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict drops sessions not touched within ttl and returns how many were removed.
func (s *Store) Evict(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Janitor calls Evict every interval until ctx is done. onEvict, when
// non-nil, receives the count of every sweep that removed something.
func (s *Store) Janitor(ctx context.Context, interval, ttl time.Duration, onEvict func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(ttl); n > 0 && onEvict != nil {
				onEvict(n)
			}
		}
	}
}
