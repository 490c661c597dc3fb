package priority

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"catalog-reconciler/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConsistency(t *testing.T) {
	tests := []struct {
		name       string
		ranks      []*int
		valid      bool
		wantIssues []string
	}{
		{"Contiguous", []*int{intPtr(1), intPtr(2), intPtr(3)}, true, nil},
		{"Unordered", []*int{intPtr(3), intPtr(1), intPtr(2)}, true, nil},
		{"NullRank", []*int{intPtr(1), nil}, false, []string{"without a priority rank", "missing ranks"}},
		{"Duplicate", []*int{intPtr(1), intPtr(1), intPtr(2)}, false, []string{"rank 1 shared", "missing ranks in 1..3: [3]"}},
		{"Gap", []*int{intPtr(1), intPtr(3)}, false, []string{"missing ranks in 1..2: [2]", "ranks above vendor count"}},
		{"NonPositive", []*int{intPtr(0), intPtr(-2)}, false, []string{"non-positive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			for i, r := range tt.ranks {
				store.vendors = append(store.vendors, Vendor{ID: uint(i + 1), Slug: fmt.Sprintf("v%d", i+1), PriorityRank: r})
			}
			reg, _ := newTestRegistry(store)

			report, err := reg.ValidateConsistency(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.valid, report.IsValid)
			for _, want := range tt.wantIssues {
				found := false
				for _, issue := range report.Issues {
					if strings.Contains(issue, want) {
						found = true
					}
				}
				assert.True(t, found, "expected issue containing %q in %v", want, report.Issues)
			}
			if tt.valid {
				assert.Empty(t, report.Issues)
				assert.NoError(t, report.Err())
			} else {
				assert.NotEmpty(t, report.Recommendations)
				assert.ErrorIs(t, report.Err(), errors.ErrConsistency)
			}
		})
	}
}

func TestValidateConsistency_StoreError(t *testing.T) {
	store := &fakeStore{listErr: fmt.Errorf("timeout")}
	reg, _ := newTestRegistry(store)

	_, err := reg.ValidateConsistency(context.Background())
	assert.ErrorIs(t, err, errors.ErrBackingStore)
}

func TestAutoFix(t *testing.T) {
	store := &fakeStore{vendors: []Vendor{
		{ID: 1, Slug: "a", PriorityRank: intPtr(4)},
		{ID: 2, Slug: "b", PriorityRank: nil},
		{ID: 3, Slug: "c", PriorityRank: intPtr(2)},
		{ID: 4, Slug: "d", PriorityRank: intPtr(2)},
		{ID: 5, Slug: "e", PriorityRank: intPtr(-1)},
		{ID: 6, Slug: "f", PriorityRank: intPtr(1)},
	}}
	reg, _ := newTestRegistry(store)
	ctx := context.Background()

	updated, err := reg.AutoFix(ctx)
	require.NoError(t, err)

	got := map[string]int{}
	var ranks []int
	for _, v := range store.vendors {
		require.NotNil(t, v.PriorityRank)
		got[v.Slug] = *v.PriorityRank
		ranks = append(ranks, *v.PriorityRank)
	}
	sort.Ints(ranks)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ranks, "exact 1..N permutation")
	assert.Equal(t, map[string]int{"f": 1, "c": 2, "d": 3, "a": 4, "b": 5, "e": 6}, got)
	assert.Equal(t, 3, updated, "f, c and a already held their target rank")

	report, err := reg.ValidateConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, report.IsValid)

	again, err := reg.AutoFix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}

func TestAutoFix_InvalidatesChangedVendors(t *testing.T) {
	store := &fakeStore{vendors: []Vendor{
		{ID: 1, Slug: "lipseys", DisplayName: "Lipsey's", PriorityRank: intPtr(1)},
		{ID: 2, Slug: "chattanooga", DisplayName: "Chattanooga", PriorityRank: intPtr(5)},
	}}
	reg, _ := newTestRegistry(store)
	ctx := context.Background()

	reg.Preload(ctx, []string{"lipseys", "chattanooga", "Chattanooga"})

	_, err := reg.AutoFix(ctx)
	require.NoError(t, err)

	_, ok := reg.CachedRank("chattanooga")
	assert.False(t, ok)
	rank, ok := reg.CachedRank("lipseys")
	assert.True(t, ok, "unchanged vendors keep their entry")
	assert.Equal(t, 1, rank)

	rank, _ = reg.Rank(ctx, "chattanooga")
	assert.Equal(t, 2, rank)
}

func TestAutoFix_WriteFailure(t *testing.T) {
	store := &fakeStore{
		vendors:  []Vendor{{ID: 1, Slug: "a", PriorityRank: intPtr(3)}},
		writeErr: fmt.Errorf("read-only replica"),
	}
	reg, _ := newTestRegistry(store)

	n, err := reg.AutoFix(context.Background())
	assert.ErrorIs(t, err, errors.ErrBackingStore)
	assert.Equal(t, 0, n)
}
