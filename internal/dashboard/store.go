package dashboard

import "sync"

// Store is the in-memory snapshot cache the HTTP API reads from. Writes come
// only from the refresher; a snapshot, once stored, is replaced whole and
// never mutated in place.
type Store struct {
	mu        sync.RWMutex
	order     []string
	snapshots map[string]Snapshot
}

// NewStore creates a Store that lists snapshots in the given chart order.
func NewStore(order []string) *Store {
	return &Store{
		order:     order,
		snapshots: make(map[string]Snapshot, len(order)),
	}
}

// Put stores or replaces the snapshot for a chart.
func (s *Store) Put(chart string, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[chart] = snap
}

// Get returns the snapshot for a chart, if one has been loaded.
func (s *Store) Get(chart string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[chart]
	return snap, ok
}

// List returns the loaded snapshots in configured chart order. Charts that
// have never refreshed successfully are simply absent.
func (s *Store) List() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, 0, len(s.snapshots))
	for _, chart := range s.order {
		if snap, ok := s.snapshots[chart]; ok {
			out = append(out, snap)
		}
	}
	return out
}

// Len reports how many charts currently have a snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}
