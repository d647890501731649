package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"quiz-trainer/internal/domain"
)

// PoolCache stores parsed question pools as JSON strings:
// SET pool:{key} {"questions":[...]} EX ttl
type PoolCache struct {
	client *redis.Client
	ttl    time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewPoolCache(client *redis.Client, ttl time.Duration) *PoolCache {
	return &PoolCache{
		client: client,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *PoolCache) Get(ctx context.Context, key string) ([]domain.Question, bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var payload domain.UploadResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false, fmt.Errorf("unmarshal pool: %w", err)
	}
	return payload.Questions, true, nil
}

func (c *PoolCache) Set(ctx context.Context, key string, questions []domain.Question) error {
	raw, err := json.Marshal(domain.UploadResponse{Questions: questions})
	if err != nil {
		return fmt.Errorf("marshal pool: %w", err)
	}
	return c.client.Set(ctx, c.key(key), raw, c.ttlWithJitter()).Err()
}

func (c *PoolCache) key(key string) string {
	return "pool:" + key
}

func (c *PoolCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
