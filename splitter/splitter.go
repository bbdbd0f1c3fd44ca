// Package splitter decomposes multi-pair solutions into single-pair
// sub-solutions before they enter the auction mechanism. Splitting trades
// liquidity coupling for granularity: sub-solutions can win independently,
// at the cost of an efficiency loss applied to every split-off score.
package splitter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Architsharma7/Comb-auction/mechanism"
)

// Approach selects how solutions are decomposed.
type Approach string

const (
	// ApproachComplete splits every multi-pair solution into one
	// sub-solution per directed token pair; single-pair solutions pass
	// through unchanged.
	ApproachComplete Approach = "complete"
)

// Split applies the approach to every solution in order. efficiencyLoss is
// the fraction of score forfeited by each split-off trade, in [0, 1); scaled
// scores are rounded down to whole atoms. Sub-solutions whose score is not
// strictly positive are discarded, since they can never be winner candidates.
//
// Output ordering is deterministic: parents in input order, sub-solutions in
// order of each pair's first appearance in the parent's trades. Sub-solution
// ids are derived from the parent id and the pair, so repeated runs over the
// same input produce identical ids.
func Split(solutions []mechanism.Solution, efficiencyLoss float64, approach Approach) ([]mechanism.Solution, error) {
	if approach != ApproachComplete {
		return nil, fmt.Errorf("splitter: unknown approach %q", approach)
	}
	if efficiencyLoss < 0 || efficiencyLoss >= 1 {
		return nil, fmt.Errorf("splitter: efficiency loss %v outside [0, 1)", efficiencyLoss)
	}

	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(efficiencyLoss))

	split := make([]mechanism.Solution, 0, len(solutions))
	for _, solution := range solutions {
		if len(mechanism.AggregateScores(solution)) <= 1 {
			split = append(split, solution)
			continue
		}
		split = append(split, splitComplete(solution, factor)...)
	}
	return split, nil
}

// splitComplete produces one sub-solution per directed token pair, scaling
// each trade's score by the retained factor with decimal arithmetic.
func splitComplete(solution mechanism.Solution, factor decimal.Decimal) []mechanism.Solution {
	order := make([]mechanism.TokenPair, 0)
	grouped := make(map[mechanism.TokenPair][]mechanism.Trade)
	for _, trade := range solution.Trades {
		pair := trade.Pair()
		if _, seen := grouped[pair]; !seen {
			order = append(order, pair)
		}
		scaled := trade
		scaled.Score = scaleScore(trade.Score, factor)
		grouped[pair] = append(grouped[pair], scaled)
	}

	subs := make([]mechanism.Solution, 0, len(order))
	for _, pair := range order {
		trades := grouped[pair]
		var score int64
		for _, trade := range trades {
			score += trade.Score
		}
		if score <= 0 {
			continue
		}
		subs = append(subs, mechanism.Solution{
			ID:     fmt.Sprintf("%s/%s-%s", solution.ID, pair.Sell, pair.Buy),
			Solver: solution.Solver,
			Score:  score,
			Trades: trades,
		})
	}
	return subs
}

// scaleScore multiplies an atom score by the retained factor, truncating
// toward zero so a split never gains value through rounding.
func scaleScore(score int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(score).Mul(factor).IntPart()
}
