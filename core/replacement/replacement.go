// Package replacement decides whether a vendor's candidate data may overwrite
// the non-pricing fields of an existing master record.
//
// Rules are evaluated in order and the first match wins:
//
//  1. A manual override always replaces.
//  2. A vendor may always overwrite data it wrote itself.
//  3. Otherwise the candidate replaces only if its rank is strictly lower
//     (better) than the current owner's. Equal ranks keep the current owner,
//     which stops two equal-priority vendors from flapping on repeated syncs.
package replacement

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Ranker resolves vendor ranks. It is satisfied by *priority.Registry.
type Ranker interface {
	Rank(ctx context.Context, slug string) (int, error)
	CachedRank(slug string) (int, bool)
}

// Owned is a record whose non-pricing fields are owned by one vendor.
type Owned interface {
	OwnerSlug() string
}

// Engine applies the replacement rules.
type Engine struct {
	ranks  Ranker
	logger *zap.Logger
}

// NewEngine creates an Engine.
func NewEngine(ranks Ranker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{ranks: ranks, logger: logger}
}

// ShouldReplace reports whether candidate data from candidateVendor replaces
// existing. The candidate's content does not take part in the decision. An
// error is returned only for a syntactically invalid vendor slug.
func (e *Engine) ShouldReplace(ctx context.Context, existing, candidate Owned, candidateVendor string, manualOverride bool) (bool, error) {
	if manualOverride {
		return true, nil
	}

	owner := ownerOf(existing)
	if owner == "" {
		return true, nil
	}
	if sameVendor(owner, candidateVendor) {
		return true, nil
	}

	candidateRank, err := e.ranks.Rank(ctx, candidateVendor)
	if err != nil {
		return false, err
	}
	existingRank, err := e.ranks.Rank(ctx, owner)
	if err != nil {
		return false, err
	}

	replace := candidateRank < existingRank
	e.logger.Debug("Replacement decision",
		zap.String("owner", owner),
		zap.Int("owner_rank", existingRank),
		zap.String("candidate", candidateVendor),
		zap.Int("candidate_rank", candidateRank),
		zap.Bool("replace", replace),
	)
	return replace, nil
}

// ShouldReplaceCached applies the same rules using cached ranks only. A rank
// missing from cache means priority cannot be confirmed and the answer is false.
func (e *Engine) ShouldReplaceCached(existing, candidate Owned, candidateVendor string, manualOverride bool) bool {
	if manualOverride {
		return true
	}

	owner := ownerOf(existing)
	if owner == "" {
		return true
	}
	if sameVendor(owner, candidateVendor) {
		return true
	}

	candidateRank, ok := e.ranks.CachedRank(candidateVendor)
	if !ok {
		return false
	}
	existingRank, ok := e.ranks.CachedRank(owner)
	if !ok {
		return false
	}
	return candidateRank < existingRank
}

// Source is a plain Owned value for callers that only hold a vendor slug.
type Source string

// OwnerSlug implements Owned.
func (s Source) OwnerSlug() string { return string(s) }

func ownerOf(o Owned) string {
	if o == nil {
		return ""
	}
	return strings.TrimSpace(o.OwnerSlug())
}

func sameVendor(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
