package service

import (
	"sync"
	"time"

	"securebank/internal/common/clock"
	commoncrypto "securebank/internal/common/crypto"
)

// Session is the opaque proof that a username has been authenticated. The
// ID is what callers hand back on subsequent operations.
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

type SessionManager struct {
	mu          sync.Mutex
	sessions    map[string]Session
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	ttl         time.Duration
}

func NewSessionManager(idGenerator commoncrypto.IDGenerator, clk clock.Clock, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]Session),
		idGenerator: idGenerator,
		clock:       clk,
		ttl:         ttl,
	}
}

func (m *SessionManager) Create(username string) (Session, error) {
	id, err := m.idGenerator.NewID()
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		ID:        id,
		Username:  username,
		ExpiresAt: m.clock.Now().Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	incrementSessionsActive()
	return sess, nil
}

// Resolve returns the session for id if it exists and has not expired.
// An expired session is removed on the spot.
func (m *SessionManager) Resolve(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	if m.clock.Now().After(sess.ExpiresAt) {
		delete(m.sessions, id)
		addSessionsExpired(1)
		return Session{}, false
	}
	return sess, true
}

func (m *SessionManager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	decrementSessionsActive()
	return true
}

func (m *SessionManager) PurgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	purged := 0
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
			purged++
		}
	}
	if purged > 0 {
		addSessionsExpired(purged)
	}
	return purged
}
