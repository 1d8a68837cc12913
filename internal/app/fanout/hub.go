package fanout

import (
	"sync"

	"github.com/google/uuid"
)

const defaultBufferSize = 32

// Subscriber is one live connection's inbox.
type Subscriber struct {
	ID     string
	send   chan Frame
	rooms  map[string]struct{} // guarded by Hub.mu
	closed bool                // guarded by Hub.mu
}

// Frames yields queued frames until the subscriber is removed.
func (s *Subscriber) Frames() <-chan Frame {
	return s.send
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]map[*Subscriber]struct{}
	bufferSize int
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Subscriber]struct{}),
		bufferSize: defaultBufferSize,
	}
}

func (h *Hub) Subscribe() *Subscriber {
	return &Subscriber{
		ID:    uuid.NewString(),
		send:  make(chan Frame, h.bufferSize),
		rooms: make(map[string]struct{}),
	}
}

func (h *Hub) Join(s *Subscriber, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Subscriber]struct{})
		h.rooms[room] = members
	}
	members[s] = struct{}{}
	s.rooms[room] = struct{}{}
}

func (h *Hub) Leave(s *Subscriber, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(s, room)
}

func (h *Hub) leaveLocked(s *Subscriber, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(s.rooms, room)
}

// Unsubscribe drops s from every room and closes its inbox. Safe to call twice.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return
	}
	for room := range s.rooms {
		h.leaveLocked(s, room)
	}
	s.closed = true
	close(s.send)
}

// Deliver queues frame for every member of room without blocking and returns
// how many subscribers accepted it.
func (h *Hub) Deliver(room string, frame Frame) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for s := range h.rooms[room] {
		if offer(s, frame) {
			delivered++
		}
	}
	return delivered
}

// Send queues frame for a single subscriber without blocking.
func (h *Hub) Send(s *Subscriber, frame Frame) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if s.closed {
		return false
	}
	return offer(s, frame)
}

func offer(s *Subscriber, frame Frame) bool {
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

func (h *Hub) roomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
