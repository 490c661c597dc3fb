package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuard(t *testing.T) {
	g, closeFn, err := NewGuard(Config{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryGuard{}, g)
	assert.NoError(t, closeFn())

	g, closeFn, err = NewGuard(Config{Backend: "redis", RedisURL: "redis://localhost:6379/2", Prefix: "p:", LeaseMinutes: 5})
	require.NoError(t, err)
	assert.IsType(t, &RedisGuard{}, g)
	assert.NoError(t, closeFn())

	_, _, err = NewGuard(Config{Backend: "redis", RedisURL: "://bad"})
	assert.Error(t, err)

	_, _, err = NewGuard(Config{Backend: "etcd"})
	assert.ErrorContains(t, err, "unsupported guard backend")
}
