package snapshot

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Store loads and saves previous snapshots.
type Store interface {
	// Load returns the stored snapshot for key, or nil when there is none.
	Load(ctx context.Context, key string) (*string, error)
	// Save replaces the snapshot for key.
	Save(ctx context.Context, key, content string) error
	// Delete removes the snapshot for key, forcing a full run next time.
	Delete(ctx context.Context, key string) error
}

// Key builds the snapshot key of a vendor and scope.
func Key(vendor, scope string) string {
	return strings.ToLower(strings.TrimSpace(vendor)) + "/" + scope
}

// objectPath maps key to "<prefix>/<key>.txt" and rejects keys that would
// escape the prefix.
func objectPath(prefix, key string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != key || strings.Count(clean, "/") != 1 {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return path.Join(prefix, clean+".txt"), nil
}
