package scoring

import (
	"sort"

	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
)

// Unranked is returned when a total is below every configured threshold.
const Unranked = "Unranked"

// ResolveRank returns the label of the highest rank threshold at or below
// total. The input slice is not modified.
func ResolveRank(total float64, ranks []domain.Rank) string {
	sorted := make([]domain.Rank, len(ranks))
	copy(sorted, ranks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})

	for _, r := range sorted {
		if r.Threshold <= total {
			return r.Label
		}
	}
	return Unranked
}
