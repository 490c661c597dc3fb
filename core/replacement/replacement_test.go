package replacement

import (
	"context"
	"testing"

	"catalog-reconciler/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRanker is a testify mock of Ranker.
type mockRanker struct {
	mock.Mock
}

func (m *mockRanker) Rank(ctx context.Context, slug string) (int, error) {
	args := m.Called(ctx, slug)
	return args.Int(0), args.Error(1)
}

func (m *mockRanker) CachedRank(slug string) (int, bool) {
	args := m.Called(slug)
	return args.Int(0), args.Bool(1)
}

// staticRanker serves fixed ranks; unknown vendors get 999.
type staticRanker map[string]int

func (s staticRanker) Rank(ctx context.Context, slug string) (int, error) {
	if slug == "" {
		return 0, errors.NewInvalidSlug(slug)
	}
	if r, ok := s[slug]; ok {
		return r, nil
	}
	return 999, nil
}

func (s staticRanker) CachedRank(slug string) (int, bool) {
	r, ok := s[slug]
	return r, ok
}

func TestShouldReplace_Rules(t *testing.T) {
	ranks := staticRanker{"lipseys": 1, "chattanooga": 2, "davidsons": 2}
	engine := NewEngine(ranks, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name      string
		owner     string
		candidate string
		override  bool
		want      bool
	}{
		{"HigherPriorityWins", "chattanooga", "lipseys", false, true},
		{"LowerPriorityLoses", "lipseys", "chattanooga", false, false},
		{"EqualRanksKeepOwner", "chattanooga", "davidsons", false, false},
		{"BothUnranked", "acme", "zenith", false, false},
		{"RankedBeatsUnranked", "acme", "chattanooga", false, true},
		{"UnrankedNeverBeatsRanked", "chattanooga", "acme", false, false},
		{"SameSource", "chattanooga", "chattanooga", false, true},
		{"SameSourceCaseInsensitive", "Chattanooga ", "chattanooga", false, true},
		{"ManualOverride", "lipseys", "acme", true, true},
		{"UnownedRecord", "", "acme", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ShouldReplace(ctx, Source(tt.owner), Source(tt.candidate), tt.candidate, tt.override)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldReplace_Antisymmetric(t *testing.T) {
	ranks := staticRanker{"a": 1, "b": 2, "c": 3, "d": 10}
	engine := NewEngine(ranks, nil)
	ctx := context.Background()

	slugs := []string{"a", "b", "c", "d"}
	for _, x := range slugs {
		for _, y := range slugs {
			if x == y {
				continue
			}
			xy, err := engine.ShouldReplace(ctx, Source(x), nil, y, false)
			require.NoError(t, err)
			yx, err := engine.ShouldReplace(ctx, Source(y), nil, x, false)
			require.NoError(t, err)
			assert.NotEqual(t, xy, yx, "exactly one direction replaces for %s/%s", x, y)
			assert.Equal(t, ranks[y] < ranks[x], xy)
		}
	}
}

func TestShouldReplace_OverrideAndSameSourceSkipLookups(t *testing.T) {
	ranker := new(mockRanker)
	engine := NewEngine(ranker, nil)

	ok, err := engine.ShouldReplace(context.Background(), Source("lipseys"), nil, "acme", true)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = engine.ShouldReplace(context.Background(), Source("lipseys"), nil, "lipseys", false)
	assert.NoError(t, err)
	assert.True(t, ok)

	ranker.AssertNotCalled(t, "Rank", mock.Anything, mock.Anything)
}

func TestShouldReplace_InvalidCandidateSlug(t *testing.T) {
	ranker := new(mockRanker)
	ranker.On("Rank", mock.Anything, "  ").Return(0, errors.NewInvalidSlug("  "))
	engine := NewEngine(ranker, nil)

	_, err := engine.ShouldReplace(context.Background(), Source("lipseys"), nil, "  ", false)
	assert.ErrorIs(t, err, errors.ErrInvalidSlug)
}

func TestShouldReplaceCached(t *testing.T) {
	ranker := new(mockRanker)
	ranker.On("CachedRank", "lipseys").Return(1, true)
	ranker.On("CachedRank", "chattanooga").Return(2, true)
	ranker.On("CachedRank", "cold").Return(0, false)
	engine := NewEngine(ranker, nil)

	assert.True(t, engine.ShouldReplaceCached(Source("chattanooga"), nil, "lipseys", false))
	assert.False(t, engine.ShouldReplaceCached(Source("lipseys"), nil, "chattanooga", false))
	assert.False(t, engine.ShouldReplaceCached(Source("chattanooga"), nil, "cold", false), "uncached candidate")
	assert.False(t, engine.ShouldReplaceCached(Source("cold"), nil, "lipseys", false), "uncached owner")
	assert.True(t, engine.ShouldReplaceCached(Source("cold"), nil, "cold", false))
	assert.True(t, engine.ShouldReplaceCached(Source("lipseys"), nil, "cold", true))

	ranker.AssertNotCalled(t, "Rank", mock.Anything, mock.Anything)
}
