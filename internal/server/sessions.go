package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-leadform/pkg/controller"
)

// ControllerFactory builds the controller of a new session.
type ControllerFactory func(locale string) (*controller.Controller, error)

// Session is one visitor's form. Each session owns its controller, so
// visitors never share form data or submission state.
type Session struct {
	ID         string
	CSRF       string
	Controller *controller.Controller

	lastSeen time.Time
}

// SessionStore keeps sessions in memory and evicts the ones idle for longer
// than the TTL.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	factory  ControllerFactory
	now      func() time.Time
	onCount  func(int)
}

// NewSessionStore returns an empty store. onCount, when set, receives the
// session count after every change.
func NewSessionStore(ttl time.Duration, factory ControllerFactory, onCount func(int)) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
		onCount:  onCount,
	}
}

// Get returns the live session with id and refreshes its idle timer.
func (s *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	now := s.now()
	if s.expiredLocked(sess, now) {
		delete(s.sessions, id)
		count := len(s.sessions)
		s.mu.Unlock()
		s.report(count)
		return nil, false
	}
	sess.lastSeen = now
	s.mu.Unlock()
	return sess, true
}

// Create starts a session whose messages use locale.
func (s *SessionStore) Create(locale string) (*Session, error) {
	ctrl, err := s.factory(locale)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:         uuid.NewString(),
		CSRF:       uuid.NewString(),
		Controller: ctrl,
	}

	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	s.report(count)
	return sess, nil
}

// Sweep removes expired sessions and returns how many were dropped.
// Sessions with a submission in flight are kept.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expiredLocked(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.report(count)
	}
	return removed
}

// Len reports the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expiredLocked(sess *Session, now time.Time) bool {
	if s.ttl <= 0 || now.Sub(sess.lastSeen) < s.ttl {
		return false
	}
	return !sess.Controller.Submitting()
}

func (s *SessionStore) report(count int) {
	if s.onCount != nil {
		s.onCount(count)
	}
}
