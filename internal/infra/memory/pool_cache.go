package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quiz-trainer/internal/domain"
)

// PoolCache keeps parsed question pools in process memory with a TTL.
type PoolCache struct {
	ttl   time.Duration
	clock func() time.Time

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedPool
}

type cachedPool struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewPoolCache(ttl time.Duration) *PoolCache {
	return NewPoolCacheWithClock(ttl, time.Now)
}

// NewPoolCacheWithClock allows deterministic expiry in tests.
func NewPoolCacheWithClock(ttl time.Duration, clock func() time.Time) *PoolCache {
	return &PoolCache{
		ttl:   ttl,
		clock: clock,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedPool),
	}
}

func (c *PoolCache) Get(_ context.Context, key string) ([]domain.Question, bool, error) {
	now := c.clock()

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.After(now) {
		c.mu.Lock()
		delete(c.cache, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.questions, true, nil
}

func (c *PoolCache) Set(_ context.Context, key string, questions []domain.Question) error {
	if c.ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cachedPool{
		questions: questions,
		expiresAt: c.clock().Add(c.ttlWithJitterLocked()),
	}
	return nil
}

func (c *PoolCache) ttlWithJitterLocked() time.Duration {
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
