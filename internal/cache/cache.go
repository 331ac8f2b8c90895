package cache

import (
	"sync"
	"time"
)

// Store is a bounded in-memory cache mapping a query key to the full article
// set fetched for it. Entries expire after the TTL; when the entry bound is
// exceeded the oldest entry is evicted. All operations are safe for
// concurrent use.
type Store struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	hits       uint64
	misses     uint64

	now func() time.Time // overridable in tests
}

func NewStore(ttl time.Duration, maxEntries int) *Store {
	return &Store{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached articles for key, or false if the key is absent or
// its entry has expired. Expired entries are dropped on read.
func (s *Store) Get(key string) ([]Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return nil, false
	}
	if s.now().Sub(e.created) > s.ttl {
		delete(s.entries, key)
		s.misses++
		return nil, false
	}
	s.hits++
	return e.articles, true
}

// Set stores the full article set for key with a fresh timestamp, evicting
// the oldest entry if the store is over its bound.
func (s *Store) Set(key string, articles []Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{articles: articles, created: s.now()}
	for len(s.entries) > s.maxEntries {
		s.evictOldest()
	}
}

// Delete removes key, if present.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Entries: len(s.entries), Hits: s.hits, Misses: s.misses}
}

// evictOldest removes the entry with the earliest creation time.
// Caller must hold the lock.
func (s *Store) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		first     = true
	)
	for k, e := range s.entries {
		if first || e.created.Before(oldest) {
			oldestKey, oldest = k, e.created
			first = false
		}
	}
	if !first {
		delete(s.entries, oldestKey)
	}
}
