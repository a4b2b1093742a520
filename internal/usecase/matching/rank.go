package matching

import (
	"sort"

	"github.com/kindph/matching/internal/domain/match"
)

// DefaultLimit is the number of matches returned when the caller gives none.
const DefaultLimit = 20

// Rank drops zero-score results, sorts by score descending and truncates to limit.
// Equal scores keep their input order.
func Rank(results []match.Result, limit int) []match.Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]match.Result, 0, len(results))
	for _, r := range results {
		if r.Score() != 0 {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
