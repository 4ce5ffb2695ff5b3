package session

import (
	"sync"

	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/gwvar"
)

// Lookup finds sessions by id
type Lookup interface {
	Lookup(id common.SessionID) (*Session, bool)
}

// Manager keeps all open sessions
type Manager struct {
	lock     sync.RWMutex
	sessions map[common.SessionID]*Session
}

// NewManager creates a Manager
func NewManager() *Manager {
	return &Manager{
		sessions: map[common.SessionID]*Session{},
	}
}

// Add adds a session
func (m *Manager) Add(s *Session) {
	m.lock.Lock()
	if _, ok := m.sessions[s.ID()]; !ok {
		gwvar.OpenSessions.Add(1)
	}
	m.sessions[s.ID()] = s
	m.lock.Unlock()
}

// Remove removes a session without closing it
func (m *Manager) Remove(id common.SessionID) {
	m.lock.Lock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		gwvar.OpenSessions.Add(-1)
	}
	m.lock.Unlock()
}

// Lookup implements Lookup
func (m *Manager) Lookup(id common.SessionID) (*Session, bool) {
	m.lock.RLock()
	s, ok := m.sessions[id]
	m.lock.RUnlock()
	return s, ok
}

// Len returns the number of sessions
func (m *Manager) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.sessions)
}

// CloseAll closes and removes all sessions
func (m *Manager) CloseAll() {
	m.lock.Lock()
	sessions := m.sessions
	m.sessions = map[common.SessionID]*Session{}
	gwvar.OpenSessions.Add(-int64(len(sessions)))
	m.lock.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
