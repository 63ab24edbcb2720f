package service

import (
	"sync"
	"time"
)

// Snapshot is the full current state of one collection. The feed never
// carries deltas: every change produces a complete snapshot, so a consumer
// is always one message away from the truth and can replace its copy
// wholesale.
type Snapshot struct {
	Collection string    `json:"collection"`
	Version    int64     `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
	Items      any       `json:"items"`
}

// Store holds the latest snapshot per collection and fans updates out to
// in-process subscribers.
type Store struct {
	mu          sync.RWMutex
	snapshots   map[string]Snapshot
	subscribers map[string]map[int]chan Snapshot
	nextID      int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		snapshots:   map[string]Snapshot{},
		subscribers: map[string]map[int]chan Snapshot{},
	}
}

// Replace swaps in the full item set for a collection and notifies every
// subscriber. A slow subscriber lags to the latest snapshot; intermediate
// snapshots it never saw are dropped, not queued.
func (s *Store) Replace(collection string, items any) {
	s.mu.Lock()
	snap := Snapshot{
		Collection: collection,
		Version:    s.snapshots[collection].Version + 1,
		UpdatedAt:  time.Now().UTC(),
		Items:      items,
	}
	s.snapshots[collection] = snap

	channels := make([]chan Snapshot, 0, len(s.subscribers[collection]))
	for _, ch := range s.subscribers[collection] {
		channels = append(channels, ch)
	}
	s.mu.Unlock()

	for _, ch := range channels {
		deliver(ch, snap)
	}
}

// deliver is latest-wins on a buffer of one: an undrained older snapshot is
// displaced by the new one.
func deliver(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Subscribe registers for a collection's snapshots. The current snapshot, if
// any, is delivered immediately so a new subscriber starts from the present
// state instead of waiting for the next change. The returned func
// unsubscribes.
func (s *Store) Subscribe(collection string) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	if s.subscribers[collection] == nil {
		s.subscribers[collection] = map[int]chan Snapshot{}
	}
	s.subscribers[collection][id] = ch
	if snap, ok := s.snapshots[collection]; ok {
		// Sent under the lock: the just-created buffer is empty and no
		// Replace can reach this channel until the lock is released, so
		// the send cannot block and a later Replace displaces it in order.
		ch <- snap
	}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers[collection], id)
		s.mu.Unlock()
	}
	return ch, cancel
}

// Get returns the latest snapshot of one collection.
func (s *Store) Get(collection string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[collection]
	return snap, ok
}

// All returns the latest snapshot of every collection.
func (s *Store) All() map[string]Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Snapshot, len(s.snapshots))
	for k, v := range s.snapshots {
		out[k] = v
	}
	return out
}
