package memory

import (
	"sync"
	"time"

	"learner-account-be/internal/deleteaccount"

	"github.com/patrickmn/go-cache"
)

// FlowSessionRepository keeps deletion flow sessions in process memory only.
// Sessions hold the typed password, so they are never written anywhere else.
type FlowSessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewFlowSessionRepository(ttl, cleanupInterval time.Duration) *FlowSessionRepository {
	return &FlowSessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// GetOrCreate returns the user's session, building it with create on first
// access. The bool reports whether a new session was created.
func (r *FlowSessionRepository) GetOrCreate(userId string, create func() *deleteaccount.Session) (*deleteaccount.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, found := r.touch(userId); found {
		return session, false
	}

	session := create()
	r.cache.Set(userId, session, cache.DefaultExpiration)
	return session, true
}

// Get returns the user's session and restarts its TTL, so an active flow
// only expires after it has been idle for the whole TTL.
func (r *FlowSessionRepository) Get(userId string) (*deleteaccount.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touch(userId)
}

// touch must be called with r.mu held.
func (r *FlowSessionRepository) touch(userId string) (*deleteaccount.Session, bool) {
	x, found := r.cache.Get(userId)
	if !found {
		return nil, false
	}
	r.cache.Set(userId, x, cache.DefaultExpiration)
	return x.(*deleteaccount.Session), true
}

func (r *FlowSessionRepository) Delete(userId string) {
	r.cache.Delete(userId)
}

func (r *FlowSessionRepository) Count() int {
	return r.cache.ItemCount()
}
