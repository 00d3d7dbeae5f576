// Package aggregate collapses per-reading cluster labels into a single
// channel-level outcome under the configured policy.
package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// ErrUnmappedLabel reports a predicted label that has no entry in the tier
// table. It means the model artifacts and tiers.json are out of sync.
var ErrUnmappedLabel = errors.New("cluster label has no tier mapping")

// Reduce tallies the labels and, under the mode policy, picks the dominant
// one. Every observed label must resolve to a tier; there is no fallback
// tier for labels the table does not know.
func Reduce(labels []int, tiers types.TierMap, policy types.Policy) (*types.AggregateResult, error) {
	if len(labels) == 0 {
		return nil, errors.New("no labels to aggregate")
	}

	counts := make(map[int]int)
	for _, label := range labels {
		counts[label]++
	}

	result := &types.AggregateResult{
		Policy: policy,
		Window: len(labels),
		Counts: make(map[int]types.TierCount, len(counts)),
	}
	for label, count := range counts {
		tier, ok := tiers[label]
		if !ok {
			return nil, fmt.Errorf("%w: label %d", ErrUnmappedLabel, label)
		}
		result.Counts[label] = types.TierCount{Tier: tier, Count: count}
	}

	switch policy {
	case types.PolicyMode:
		dominant := dominantLabel(counts)
		result.DominantLabel = dominant
		result.DominantTier = tiers[dominant]
	case types.PolicyTally:
		// Tally reports the full breakdown instead of electing a winner.
		result.DominantLabel = -1
	default:
		return nil, fmt.Errorf("unknown aggregation policy %q", policy)
	}

	return result, nil
}

// dominantLabel finds the most frequent label. Labels are walked in
// ascending order so a tie always goes to the lowest label.
func dominantLabel(counts map[int]int) int {
	labels := make([]int, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	best := labels[0]
	maxCount := counts[best]
	for _, label := range labels[1:] {
		if counts[label] > maxCount {
			best = label
			maxCount = counts[label]
		}
	}
	return best
}
