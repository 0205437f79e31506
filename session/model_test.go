package session

import (
	"testing"
)

func TestSendQueuesPayload(t *testing.T) {
	s := newSession("v1")
	if !s.send([]byte("view")) {
		t.Fatal("expected send to succeed on empty buffer")
	}
	if got := <-s.Out(); string(got) != "view" {
		t.Fatalf("expected 'view', got %q", got)
	}
	if s.LastSent().IsZero() {
		t.Fatal("expected LastSent to be set")
	}
}

func TestSendDropsWhenFull(t *testing.T) {
	s := newSession("v1")
	for i := 0; i < outBuffer; i++ {
		if !s.send([]byte("x")) {
			t.Fatalf("send %d unexpectedly dropped", i)
		}
	}
	if s.send([]byte("overflow")) {
		t.Fatal("expected send to drop on full buffer")
	}
	if s.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", s.Dropped())
	}
}

func TestSendAfterClose(t *testing.T) {
	s := newSession("v1")
	s.close()
	s.close() // idempotent
	if s.send([]byte("late")) {
		t.Fatal("expected send to fail after close")
	}
	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed")
	}
}
