package priority

import (
	"context"
	"fmt"
	"sort"

	"catalog-reconciler/core/errors"

	"go.uber.org/zap"
)

// ConsistencyReport is the outcome of ValidateConsistency.
type ConsistencyReport struct {
	IsValid         bool     `json:"is_valid"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Err returns a ConsistencyError for an invalid report, nil otherwise.
func (r ConsistencyReport) Err() error {
	if r.IsValid {
		return nil
	}
	return &errors.ConsistencyError{Issues: r.Issues}
}

// ValidateConsistency checks that vendor ranks form the sequence 1..N.
func (r *Registry) ValidateConsistency(ctx context.Context) (ConsistencyReport, error) {
	vendors, err := r.store.ListVendors(ctx)
	if err != nil {
		return ConsistencyReport{}, errors.NewBackingStoreError("list vendors", err)
	}
	return checkRanks(vendors), nil
}

func checkRanks(vendors []Vendor) ConsistencyReport {
	report := ConsistencyReport{Issues: []string{}, Recommendations: []string{}}
	n := len(vendors)

	var nullRanks, invalidRanks, overflow []string
	holders := make(map[int][]string)
	for _, v := range vendors {
		switch {
		case v.PriorityRank == nil:
			nullRanks = append(nullRanks, v.Slug)
		case *v.PriorityRank <= 0:
			invalidRanks = append(invalidRanks, fmt.Sprintf("%s=%d", v.Slug, *v.PriorityRank))
		default:
			holders[*v.PriorityRank] = append(holders[*v.PriorityRank], v.Slug)
			if *v.PriorityRank > n {
				overflow = append(overflow, fmt.Sprintf("%s=%d", v.Slug, *v.PriorityRank))
			}
		}
	}

	if len(nullRanks) > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("%d vendor(s) without a priority rank: %v", len(nullRanks), nullRanks))
	}
	if len(invalidRanks) > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("non-positive priority ranks: %v", invalidRanks))
	}

	ranks := make([]int, 0, len(holders))
	for rank := range holders {
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)
	for _, rank := range ranks {
		if slugs := holders[rank]; len(slugs) > 1 {
			report.Issues = append(report.Issues, fmt.Sprintf("rank %d shared by %v", rank, slugs))
		}
	}

	var gaps []int
	for rank := 1; rank <= n; rank++ {
		if _, ok := holders[rank]; !ok {
			gaps = append(gaps, rank)
		}
	}
	if len(gaps) > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("missing ranks in 1..%d: %v", n, gaps))
	}
	if len(overflow) > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("ranks above vendor count %d: %v", n, overflow))
	}

	report.IsValid = len(report.Issues) == 0
	if !report.IsValid {
		if len(nullRanks) > 0 || len(invalidRanks) > 0 {
			report.Recommendations = append(report.Recommendations, "Assign a positive rank to every vendor; unranked vendors resolve to 999.")
		}
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Run the priority auto-fix to renumber vendors 1..%d in their current order.", n))
	}
	return report
}

// AutoFix renumbers vendors 1..N ordered by current rank, unranked vendors last
// and ties broken by ID. It returns the number of vendors whose rank changed.
func (r *Registry) AutoFix(ctx context.Context) (int, error) {
	vendors, err := r.store.ListVendors(ctx)
	if err != nil {
		return 0, errors.NewBackingStoreError("list vendors", err)
	}

	ordered := make([]Vendor, len(vendors))
	copy(ordered, vendors)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := sortRank(ordered[i].PriorityRank), sortRank(ordered[j].PriorityRank)
		if ri != rj {
			return ri < rj
		}
		return ordered[i].ID < ordered[j].ID
	})

	updates := make(map[uint]int)
	var changed []Vendor
	for i, v := range ordered {
		want := i + 1
		if v.PriorityRank != nil && *v.PriorityRank == want {
			continue
		}
		updates[v.ID] = want
		changed = append(changed, v)
	}

	if len(updates) == 0 {
		return 0, nil
	}

	if err := r.store.UpdateRanks(ctx, updates); err != nil {
		return 0, errors.NewBackingStoreError("update ranks", err)
	}

	for _, v := range changed {
		r.Invalidate(v.Slug)
		if v.DisplayName != "" {
			r.Invalidate(v.DisplayName)
		}
		r.logger.Info("Vendor priority reassigned",
			zap.String("vendor", v.Slug),
			zap.Any("old_rank", v.PriorityRank),
			zap.Int("new_rank", updates[v.ID]),
		)
	}

	return len(updates), nil
}

// sortRank orders unranked and non-positive ranks after every valid rank.
func sortRank(stored *int) int {
	if stored == nil || *stored <= 0 {
		return int(^uint(0) >> 1)
	}
	return *stored
}
