package selection

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"quotedesk/internal/domain"
	"quotedesk/internal/port"
)

// Store keeps each user's plan-selection working set in a TTL cache. Entries
// expire with the session and are purged periodically, so an abandoned
// working set never outlives its user. Saves are whole-value replaces
// (last-writer-wins); keys are per user, so cross-user access never contends.
type Store struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

var _ port.SelectionStore = (*Store)(nil)

// NewStore creates a Store with the given session TTL and purge interval.
func NewStore(ttl, purgeInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if purgeInterval <= 0 {
		purgeInterval = 10 * time.Minute
	}
	return &Store{
		cache: gocache.New(ttl, purgeInterval),
		ttl:   ttl,
	}
}

// Save replaces the user's selection for one document and refreshes the
// session TTL on the whole working set.
func (s *Store) Save(userID, documentID string, sel domain.PlanSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load(userID)
	state[documentID] = sel
	s.cache.Set(userID, state, s.ttl)
}

// Get returns the user's selection for one document.
func (s *Store) Get(userID, documentID string) (domain.PlanSelection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.load(userID)[documentID]
	return sel, ok
}

// GetAll returns a copy of the user's whole working set keyed by document id.
func (s *Store) GetAll(userID string) map[string]domain.PlanSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load(userID)
	out := make(map[string]domain.PlanSelection, len(state))
	for id, sel := range state {
		out[id] = sel
	}
	return out
}

// Remove drops the user's selection for one document.
func (s *Store) Remove(userID, documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load(userID)
	if _, ok := state[documentID]; !ok {
		return
	}
	delete(state, documentID)
	if len(state) == 0 {
		s.cache.Delete(userID)
		return
	}
	s.cache.Set(userID, state, s.ttl)
}

// Clear drops the user's entire working set.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(userID)
}

// load returns the user's live state map, or a fresh one. Callers hold s.mu.
func (s *Store) load(userID string) map[string]domain.PlanSelection {
	if v, ok := s.cache.Get(userID); ok {
		if state, ok := v.(map[string]domain.PlanSelection); ok {
			return state
		}
	}
	return make(map[string]domain.PlanSelection)
}
