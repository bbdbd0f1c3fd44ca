package mechanism

// AggregateScores sums the trade scores of a solution per directed token pair.
// Integer addition is associative and commutative, so the result does not
// depend on trade order.
func AggregateScores(solution Solution) map[TokenPair]int64 {
	scores := make(map[TokenPair]int64)
	for _, trade := range solution.Trades {
		scores[trade.Pair()] += trade.Score
	}
	return scores
}

// ComputeBaselineSolutions picks, per directed token pair, the best solution
// among those touching exactly that one pair. Multi-pair solutions never
// become baselines. Replacement requires a strictly higher score, so on ties
// the first solution encountered in input order is kept; callers that need
// reproducible baselines must supply solutions in a fixed order.
func ComputeBaselineSolutions(solutions []Solution) map[TokenPair]Solution {
	baselines := make(map[TokenPair]Solution)
	for _, solution := range solutions {
		scores := AggregateScores(solution)
		if len(scores) != 1 {
			continue
		}
		for pair, score := range scores {
			incumbent, exists := baselines[pair]
			if !exists || score > incumbent.Score {
				baselines[pair] = solution
			}
		}
	}
	return baselines
}
