package store

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/lojhan/chainkv/internal/hashtable"
)

type Stats struct {
	Hits    int64
	Misses  int64
	Inserts int64
	Deletes int64
}

// Store serializes access to a hash table with one lock over the whole
// table. Counters are atomics since readers bump them under the read lock.
type Store struct {
	mu    sync.RWMutex
	table *hashtable.Table[string]

	hits    atomic.Int64
	misses  atomic.Int64
	inserts atomic.Int64
	deletes atomic.Int64
}

func NewStore(options ...func(*hashtable.Config)) *Store {
	return &Store{
		table: hashtable.New[string](options...),
	}
}

func (s *Store) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table.Insert(key, value)
	s.inserts.Inc()
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.table.Get(key)
	if ok {
		s.hits.Inc()
	} else {
		s.misses.Inc()
	}
	return value, ok
}

// Delete removes each key once and reports how many removals happened.
func (s *Store) Delete(keys ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, key := range keys {
		if s.table.Delete(key) {
			deleted++
		}
	}
	s.deletes.Add(int64(deleted))
	return deleted
}

func (s *Store) Exists(keys ...string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, key := range keys {
		if _, ok := s.table.Get(key); ok {
			count++
		}
	}
	return count
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Len()
}

func (s *Store) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Capacity()
}

func (s *Store) LoadFactor() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.LoadFactor()
}

func (s *Store) DuplicatePolicy() hashtable.DuplicatePolicy {
	return s.table.DuplicatePolicy()
}

// HashIndex reports the bucket key maps to at the current capacity.
func (s *Store) HashIndex(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return hashtable.Hash(key, s.table.Capacity())
}

// Keys returns the stored keys matching a glob pattern, in table iteration
// order. An empty pattern matches everything.
func (s *Store) Keys(pattern string) ([]string, error) {
	if !validPattern(pattern) {
		return nil, ErrBadPattern
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, max(s.table.Len(), 0))
	for key := range s.table.Keys() {
		if pattern != "" && !matchPattern(pattern, key) {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *Store) Stats() Stats {
	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Inserts: s.inserts.Load(),
		Deletes: s.deletes.Load(),
	}
}
