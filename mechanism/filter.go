package mechanism

// SolutionFilter discards solutions that should never reach winner selection.
type SolutionFilter interface {
	// Filter returns the surviving subset of solutions, preserving input order.
	Filter(solutions []Solution) []Solution
}

// BaselineFilter rejects any solution that performs worse, on some directed
// token pair it touches, than the best single-pair solution for that pair.
// Single-pair solutions always survive: they cannot score worse than
// themselves. Pairs without a baseline use a threshold of zero.
type BaselineFilter struct{}

func (BaselineFilter) Filter(solutions []Solution) []Solution {
	baselines := ComputeBaselineSolutions(solutions)
	filtered := make([]Solution, 0, len(solutions))
	for _, solution := range solutions {
		scores := AggregateScores(solution)
		if len(scores) == 1 || meetsBaselines(scores, baselines) {
			filtered = append(filtered, solution)
		}
	}
	return filtered
}

// meetsBaselines reports whether every per-pair aggregated score reaches the
// corresponding baseline solution's total score. Baselines are single-pair by
// construction (ComputeBaselineSolutions), so their total score and their
// per-pair score are the same quantity; the comparison intentionally uses the
// sum over the baseline's trades, matching the on-chain reference.
func meetsBaselines(scores map[TokenPair]int64, baselines map[TokenPair]Solution) bool {
	for pair, score := range scores {
		var threshold int64
		if baseline, ok := baselines[pair]; ok {
			threshold = tradeScoreSum(baseline.Trades)
		}
		if score < threshold {
			return false
		}
	}
	return true
}
