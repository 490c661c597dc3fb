package priority

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"catalog-reconciler/core/errors"
	"catalog-reconciler/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// SentinelRank is the rank of unknown or misconfigured vendors.
	SentinelRank = 999

	// DefaultTTL is how long a resolved rank is served from cache.
	DefaultTTL = 5 * time.Minute

	maxSlugLength = 100
)

// Registry resolves vendor slugs to ranks with a TTL cache in front of a VendorStore.
type Registry struct {
	store   VendorStore
	logger  *zap.Logger
	metrics *metrics.Metrics
	cache   *rankCache
	sf      singleflight.Group
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
}

// WithTTL overrides DefaultTTL. A zero TTL disables freshness; entries are still
// kept as a stale fallback.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithClock injects the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMetrics records lookup results.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewRegistry creates a Registry over store.
func NewRegistry(store VendorStore, logger *zap.Logger, opts ...Option) *Registry {
	o := options{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		store:   store,
		logger:  logger,
		metrics: o.metrics,
		cache:   newRankCache(o.ttl, o.now),
	}
}

// NormalizeSlug trims and lower-cases a vendor identifier. It returns
// ErrInvalidSlug for identifiers that cannot be looked up.
func NormalizeSlug(slug string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(slug))
	if key == "" || utf8.RuneCountInString(key) > maxSlugLength {
		return "", errors.NewInvalidSlug(slug)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return "", errors.NewInvalidSlug(slug)
		}
	}
	return key, nil
}

// Rank returns the rank of slug. Only a syntactically invalid slug is an error;
// unknown vendors and store failures degrade to the sentinel or a stale entry.
func (r *Registry) Rank(ctx context.Context, slug string) (int, error) {
	key, err := NormalizeSlug(slug)
	if err != nil {
		return 0, err
	}

	if entry, fresh, ok := r.cache.get(key); ok && fresh {
		r.metrics.PriorityLookup("hit")
		return entry.Rank, nil
	}

	v, err, _ := r.sf.Do(key, func() (interface{}, error) {
		return r.resolve(ctx, key)
	})
	if err != nil {
		if entry, _, ok := r.cache.get(key); ok {
			r.logger.Warn("Vendor store unavailable, serving stale rank",
				zap.String("vendor", key),
				zap.Int("rank", entry.Rank),
				zap.Time("cached_at", entry.CachedAt),
				zap.Error(err),
			)
			r.metrics.PriorityLookup("stale")
			return entry.Rank, nil
		}
		r.logger.Warn("Vendor store unavailable, using sentinel rank",
			zap.String("vendor", key),
			zap.Error(err),
		)
		r.metrics.PriorityLookup("sentinel")
		return SentinelRank, nil
	}

	return v.(int), nil
}

// resolve queries the store and caches found vendors.
func (r *Registry) resolve(ctx context.Context, key string) (int, error) {
	vendor, err := r.store.FindVendor(ctx, key)
	if err != nil {
		return 0, errors.NewBackingStoreError("find vendor", err)
	}
	if vendor == nil {
		r.metrics.PriorityLookup("miss")
		return SentinelRank, nil
	}

	rank := effectiveRank(vendor.PriorityRank)
	if rank == SentinelRank {
		r.logger.Debug("Vendor has no usable priority rank",
			zap.String("vendor", key),
			zap.Any("stored_rank", vendor.PriorityRank),
		)
	}
	r.cache.put(key, rank)
	r.metrics.PriorityLookup("miss")
	return rank, nil
}

// CachedRank returns the rank of slug only if a fresh cache entry exists.
func (r *Registry) CachedRank(slug string) (int, bool) {
	key, err := NormalizeSlug(slug)
	if err != nil {
		return 0, false
	}
	entry, fresh, ok := r.cache.get(key)
	if !ok || !fresh {
		return 0, false
	}
	return entry.Rank, true
}

// Invalidate drops the cache entry for slug.
func (r *Registry) Invalidate(slug string) {
	key, err := NormalizeSlug(slug)
	if err != nil {
		return
	}
	r.cache.delete(key)
}

// Preload warms the cache for slugs. Failures are logged and swallowed.
func (r *Registry) Preload(ctx context.Context, slugs []string) {
	for _, slug := range slugs {
		key, err := NormalizeSlug(slug)
		if err != nil {
			r.logger.Debug("Skipping invalid vendor slug during preload", zap.String("vendor", slug))
			continue
		}
		if _, fresh, ok := r.cache.get(key); ok && fresh {
			continue
		}
		if _, err := r.resolve(ctx, key); err != nil {
			r.logger.Debug("Preload lookup failed", zap.String("vendor", key), zap.Error(err))
		}
	}
}

// effectiveRank maps a stored rank to the rank used for decisions.
func effectiveRank(stored *int) int {
	if stored == nil || *stored <= 0 {
		return SentinelRank
	}
	return *stored
}
