package mechanism

import "fmt"

// RemoveOrders returns a copy of the solution without the trades whose ids
// appear in settled, with the score recomputed from the remaining trades.
// The input solution is not modified.
func RemoveOrders(solution Solution, settled map[string]bool) Solution {
	remaining := make([]Trade, 0, len(solution.Trades))
	for _, trade := range solution.Trades {
		if !settled[trade.ID] {
			remaining = append(remaining, trade)
		}
	}
	derived := Solution{
		ID:     solution.ID,
		Solver: solution.Solver,
		Score:  tradeScoreSum(remaining),
		Trades: remaining,
	}
	assertScoreConsistent(derived)
	return derived
}

// assertScoreConsistent panics when a derived solution's declared score does
// not equal the sum of its trades' scores. A mismatch here is a programming
// error in this package; reward correctness downstream depends on it.
func assertScoreConsistent(solution Solution) {
	if sum := tradeScoreSum(solution.Trades); sum != solution.Score {
		panic(fmt.Sprintf("mechanism: derived solution %s declares score %d but trades sum to %d",
			solution.ID, solution.Score, sum))
	}
}

// RunCounterfactualWinners replays the mechanism over a chronological
// sequence of auctions and returns the winners of each. With
// removeExecutedOrders set, trades already settled by an earlier auction's
// winners are stripped from every later solution before the mechanism runs,
// and solutions whose remaining score is not strictly positive are dropped.
//
// Auctions are processed strictly in order: each auction's candidate set
// depends on the settled orders accumulated from all previous winners, so
// iterations cannot be parallelized.
func RunCounterfactualWinners(auctions [][]Solution, mechanism AuctionMechanism, removeExecutedOrders bool) [][]Solution {
	winnersPerAuction := make([][]Solution, 0, len(auctions))
	settled := make(map[string]bool)

	for _, solutions := range auctions {
		candidates := solutions
		if removeExecutedOrders {
			candidates = make([]Solution, 0, len(solutions))
			for _, solution := range solutions {
				stripped := RemoveOrders(solution, settled)
				if stripped.Score > 0 {
					candidates = append(candidates, stripped)
				}
			}
		}

		winners, _ := mechanism.WinnersAndRewards(candidates)
		winnersPerAuction = append(winnersPerAuction, winners)

		for id := range OrderIDs(winners) {
			settled[id] = true
		}
	}

	return winnersPerAuction
}
