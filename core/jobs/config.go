package jobs

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config selects and configures the job guard.
type Config struct {
	// Backend is memory or redis.
	Backend string `mapstructure:"backend" default:"memory"`
	// RedisURL is a redis:// URL used by the redis backend.
	RedisURL string `mapstructure:"redis_url" default:"redis://localhost:6379/0"`
	// Prefix namespaces the lock keys.
	Prefix string `mapstructure:"prefix" default:"catalog:sync:"`
	// LeaseMinutes bounds how long a lock survives its holder.
	LeaseMinutes int `mapstructure:"lease_minutes" default:"30"`
}

// NewGuard builds the guard selected by cfg. The returned close function
// releases the redis connection, if any.
func NewGuard(cfg Config) (Guard, func() error, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryGuard(), func() error { return nil }, nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		lease := time.Duration(cfg.LeaseMinutes) * time.Minute
		return NewRedisGuard(client, cfg.Prefix, lease), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported guard backend %q", cfg.Backend)
	}
}
