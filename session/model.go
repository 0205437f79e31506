package session

import (
	"sync"
	"time"
)

// outBuffer is how many renders a viewer may fall behind before updates to it
// are dropped.
const outBuffer = 16

// Session is one connected viewer of the dashboard.
type Session struct {
	ID          string    `json:"id"`
	ConnectedAt time.Time `json:"connected_at"`

	mu       sync.Mutex
	lastSent time.Time
	dropped  int
	out      chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

func newSession(id string) *Session {
	return &Session{
		ID:          id,
		ConnectedAt: time.Now(),
		out:         make(chan []byte, outBuffer),
		done:        make(chan struct{}),
	}
}

// Out delivers rendered payloads for this viewer.
func (s *Session) Out() <-chan []byte {
	return s.out
}

// Done is closed when the viewer is removed from its manager.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Dropped returns how many payloads were discarded because the viewer was
// not keeping up.
func (s *Session) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// LastSent returns when a payload was last queued for the viewer.
func (s *Session) LastSent() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSent
}

// send queues payload without blocking. A full buffer drops the payload.
func (s *Session) send(payload []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case s.out <- payload:
		s.lastSent = time.Now()
		return true
	default:
		s.dropped++
		return false
	}
}

func (s *Session) close() {
	s.doneOnce.Do(func() { close(s.done) })
}
