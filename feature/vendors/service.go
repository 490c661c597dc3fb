package vendors

import (
	"context"

	"catalog-reconciler/core/priority"
)

// Registry is the subset of *priority.Registry used by the admin surface.
type Registry interface {
	Rank(ctx context.Context, slug string) (int, error)
	CachedRank(slug string) (int, bool)
	Invalidate(slug string)
	ValidateConsistency(ctx context.Context) (priority.ConsistencyReport, error)
	AutoFix(ctx context.Context) (int, error)
}

// Writer creates vendors and sets their rank. Satisfied by *catalog.VendorStore.
type Writer interface {
	UpsertVendor(ctx context.Context, slug, displayName string, rank *int) (*priority.Vendor, error)
}

// Service implements the vendor admin operations.
type Service struct {
	registry Registry
	writer   Writer
}

// NewService creates a Service. A nil writer disables PUT /vendors/:slug.
func NewService(registry Registry, writer Writer) *Service {
	return &Service{registry: registry, writer: writer}
}

// RankInfo is the answer of a rank lookup.
type RankInfo struct {
	Slug     string `json:"slug"`
	Rank     int    `json:"rank"`
	Cached   bool   `json:"cached"`
	Sentinel bool   `json:"sentinel"`
}

// Rank resolves slug, reporting whether the answer came from the cache.
func (s *Service) Rank(ctx context.Context, slug string) (RankInfo, error) {
	key, err := priority.NormalizeSlug(slug)
	if err != nil {
		return RankInfo{}, err
	}
	_, cached := s.registry.CachedRank(key)
	rank, err := s.registry.Rank(ctx, key)
	if err != nil {
		return RankInfo{}, err
	}
	return RankInfo{Slug: key, Rank: rank, Cached: cached, Sentinel: rank == priority.SentinelRank}, nil
}

// SetRank creates or updates a vendor and drops its cached rank.
func (s *Service) SetRank(ctx context.Context, slug, displayName string, rank *int) (*priority.Vendor, error) {
	key, err := priority.NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	v, err := s.writer.UpsertVendor(ctx, key, displayName, rank)
	if err != nil {
		return nil, err
	}
	s.registry.Invalidate(key)
	if v.DisplayName != "" {
		s.registry.Invalidate(v.DisplayName)
	}
	return v, nil
}

// Invalidate drops the cached rank of slug.
func (s *Service) Invalidate(slug string) error {
	key, err := priority.NormalizeSlug(slug)
	if err != nil {
		return err
	}
	s.registry.Invalidate(key)
	return nil
}

// Consistency validates the rank sequence.
func (s *Service) Consistency(ctx context.Context) (priority.ConsistencyReport, error) {
	return s.registry.ValidateConsistency(ctx)
}

// AutoFix renumbers the ranks and returns the number of vendors changed.
func (s *Service) AutoFix(ctx context.Context) (int, error) {
	return s.registry.AutoFix(ctx)
}

// CanWrite reports whether SetRank is available.
func (s *Service) CanWrite() bool {
	return s.writer != nil
}
