package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir)

	got, err := s.Load(ctx, "lipseys/global")
	require.NoError(t, err)
	assert.Nil(t, got, "missing snapshot loads as nil")

	require.NoError(t, s.Save(ctx, "lipseys/global", "upc\n1\n"))
	require.NoError(t, s.Save(ctx, "lipseys/global", "upc\n2\n"))

	got, err = s.Load(ctx, "lipseys/global")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "upc\n2\n", *got)

	_, err = os.Stat(filepath.Join(dir, "lipseys", "global.txt"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "lipseys"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, s.Delete(ctx, "lipseys/global"))
	require.NoError(t, s.Delete(ctx, "lipseys/global"))
	got, err = s.Load(ctx, "lipseys/global")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStore_EmptySnapshotIsNotMissing(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())

	require.NoError(t, s.Save(ctx, "lipseys/global", ""))
	got, err := s.Load(ctx, "lipseys/global")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, *got)
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	s := NewFileStore(t.TempDir())
	for _, key := range []string{"", "../x", "a/b/c", "plain"} {
		assert.Error(t, s.Save(context.Background(), key, "x"), key)
	}
}
