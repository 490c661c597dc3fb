package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultLease bounds how long a crashed holder can block a key.
const DefaultLease = 30 * time.Minute

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client is the subset of *redis.Client used by RedisGuard.
type Client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisGuard is a Guard backed by leased Redis locks.
type RedisGuard struct {
	client Client
	prefix string
	lease  time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

// NewRedisGuard creates a RedisGuard. Lock keys are prefix + key.
func NewRedisGuard(client Client, prefix string, lease time.Duration) *RedisGuard {
	if lease <= 0 {
		lease = DefaultLease
	}
	return &RedisGuard{
		client: client,
		prefix: prefix,
		lease:  lease,
		tokens: make(map[string]string),
	}
}

// TryAcquire implements Guard.
func (g *RedisGuard) TryAcquire(ctx context.Context, key string) (bool, error) {
	token := uuid.NewString()
	acquired, err := g.client.SetNX(ctx, g.prefix+key, token, g.lease).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !acquired {
		return false, nil
	}

	g.mu.Lock()
	g.tokens[key] = token
	g.mu.Unlock()
	return true, nil
}

// Release implements Guard. Releasing a key this guard does not hold is a no-op.
func (g *RedisGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	token, ok := g.tokens[key]
	delete(g.tokens, key)
	g.mu.Unlock()
	if !ok {
		return nil
	}

	if err := releaseScript.Run(ctx, g.client, []string{g.prefix + key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

// State implements Guard. It reports only locks held by this instance.
func (g *RedisGuard) State(key string) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.tokens[key]; ok {
		return Running
	}
	return Idle
}
