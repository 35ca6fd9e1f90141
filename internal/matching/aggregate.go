package matching

import (
	"math"

	"github.com/jonathan/talent-match/internal/types"
)

// Aggregate returns the weighted mean of the category scores, rounded to the nearest
// integer. Categories with a non-positive weight are left out of both sums.
func Aggregate(scores *types.CategoryScores, weights WeightProfile) int {
	var sum, total float64
	for _, c := range types.Categories {
		w := weights.Weight(c)
		if w <= 0 {
			continue
		}
		sum += scores.Score(c) * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return int(clamp(math.Round(sum/total), 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
