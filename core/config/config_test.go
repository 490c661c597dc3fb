package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 64, cfg.Server.BodyLimitMB)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "catalog-snapshots", cfg.Storage.Bucket)
	assert.Equal(t, "memory", cfg.Guard.Backend)
	assert.Equal(t, "file", cfg.Sync.SnapshotBackend)
	assert.Equal(t, 5*time.Minute, cfg.Sync.PriorityCacheTTL())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_PORT", "5432")
	t.Setenv("SYNC_DELIMITER", "tab")
	t.Setenv("GUARD_BACKEND", "redis")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "redis", cfg.Guard.Backend)

	r, err := cfg.Sync.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, '\t', r)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\nSYNC_SNAPSHOT_BACKEND=s3\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("SYNC_SNAPSHOT_BACKEND")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "s3", cfg.Sync.SnapshotBackend)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("SYNC_SNAPSHOT_BACKEND", "ftp")
	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "unsupported snapshot backend")
}

func TestSyncConfig_DelimiterRune(t *testing.T) {
	for in, want := range map[string]rune{"": ',', ",": ',', "|": '|', ";": ';', "tab": '\t'} {
		got, err := SyncConfig{Delimiter: in}.DelimiterRune()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{`"`, "ab", "\n"} {
		_, err := SyncConfig{Delimiter: in}.DelimiterRune()
		assert.Error(t, err, in)
	}
}
