// Package session tracks the viewers connected to the dashboard and fans
// every rendered view out to them.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	last     []byte
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Join registers a new viewer. The most recent broadcast, if any, is queued
// for it straight away so it starts from the current view.
func (m *Manager) Join() *Session {
	s := newSession(uuid.New().String())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	if m.last != nil {
		s.send(m.last)
	}
	return s
}

// List returns the connected viewers in no particular order.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

// Leave removes the viewer and closes its Done channel.
func (m *Manager) Leave(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.close()
	delete(m.sessions, id)
	return nil
}

// Broadcast queues payload for every viewer and remembers it for viewers that
// join later. It never blocks on a slow viewer.
func (m *Manager) Broadcast(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.last = payload
	for _, s := range m.sessions {
		s.send(payload)
	}
}

// CloseAll removes every viewer.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.close()
		delete(m.sessions, id)
	}
}
