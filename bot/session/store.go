package session

import (
	"sync"
	"time"
)

const janitorInterval = time.Minute

type record struct {
	sess      *Session
	expiresAt time.Time
}

// Store is an in-memory session store with per-entry TTL. Every Set
// refreshes the expiry; the background janitor evicts entries whose
// baseline was not refreshed in time. Safe for concurrent use across
// distinct user ids.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[int64]record

	stopOnce sync.Once
	stop     chan struct{}
}

// NewStore creates a store whose entries live for ttl since their last Set.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		ttl:     ttl,
		entries: make(map[int64]record),
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Get returns a copy of the user's session, or false when absent or
// expired. Callers mutate the copy and write it back via Set.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.RLock()
	rec, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok || time.Now().After(rec.expiresAt) {
		return nil, false
	}
	return rec.sess.clone(), true
}

// Set replaces the user's session entirely and refreshes its expiry.
func (s *Store) Set(userID int64, sess *Session) {
	if sess == nil {
		s.Delete(userID)
		return
	}
	s.mu.Lock()
	s.entries[userID] = record{sess: sess.clone(), expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

// Delete removes the user's session if present.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	delete(s.entries, userID)
	s.mu.Unlock()
}

// Has reports whether a live session exists for the user.
func (s *Store) Has(userID int64) bool {
	_, ok := s.Get(userID)
	return ok
}

// Len returns the number of stored entries, including not-yet-evicted
// expired ones.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background janitor.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evict(now)
		}
	}
}

// evict removes entries expired as of now. The expiry baseline is read
// under the same lock that Set refreshes it, so an eviction can never
// discard a session written after its sweep started.
func (s *Store) evict(now time.Time) {
	s.mu.Lock()
	for id, rec := range s.entries {
		if now.After(rec.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}
