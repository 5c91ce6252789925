package store

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Store guards a CappedMap with a mutex so several goroutines can share it,
// and keeps a few counters for the INFO command.
type Store struct {
	mu   sync.RWMutex
	data *CappedMap

	evictions atomic.Int64 // entries dropped to make room
	reads     atomic.Int64
	writes    atomic.Int64
	rejected  atomic.Int64
}

// Stats is a point-in-time view of a Store. Reads counts lookups made through
// Get and Exists; Writes counts successful puts and deletes.
type Stats struct {
	Keys      int   `json:"keys"`
	Capacity  int   `json:"capacity"`
	Used      int   `json:"used"`
	Evictions int64 `json:"evictions"`
	Reads     int64 `json:"reads"`
	Writes    int64 `json:"writes"`
	Rejected  int64 `json:"rejected"`
}

func NewStore(capacity int) *Store {
	s := &Store{}
	s.data = NewWithOnEvict(capacity, func(int, string) {
		s.evictions.Add(1)
	})
	return s
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Keys:      s.data.Len(),
		Capacity:  s.data.Capacity(),
		Used:      s.data.Used(),
		Evictions: s.evictions.Load(),
		Reads:     s.reads.Load(),
		Writes:    s.writes.Load(),
		Rejected:  s.rejected.Load(),
	}
}

// Put stores value under key, evicting the oldest writes if needed.
func (s *Store) Put(key int, value string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed, err := s.data.Put(key, value)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			s.rejected.Add(1)
		}
		return "", false, err
	}
	s.writes.Add(1)
	return prev, existed, nil
}

// Get returns the value for key without changing its write position.
func (s *Store) Get(key int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reads.Add(1)
	return s.data.Get(key)
}

func (s *Store) Exists(key int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reads.Add(1)
	return s.data.Contains(key)
}

// Del removes key and returns the value it held.
func (s *Store) Del(key int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data.Remove(key)
	if ok {
		s.writes.Add(1)
	}
	return v, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Len()
}

func (s *Store) Capacity() int {
	// fixed at construction
	return s.data.Capacity()
}

func (s *Store) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Used()
}

// Entries returns a snapshot of all entries in write order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Entries()
}

// keys return a snapshot of all keys, oldest write first
func (s *Store) Keys() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Keys()
}
