package mechanism

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

var propertyTokens = []string{"A", "B", "C", "D", "E"}

// genSolution generates a solution with 1..4 trades over a small token set
// to encourage pair collisions. Trade ids carry a prefix so they stay unique
// across solutions; the declared score always equals the trade score sum.
func genSolution(prefix string) *rapid.Generator[Solution] {
	return rapid.Custom(func(t *rapid.T) Solution {
		numTrades := rapid.IntRange(1, 4).Draw(t, "numTrades")
		trades := make([]Trade, 0, numTrades)
		for i := 0; i < numTrades; i++ {
			sell := rapid.SampledFrom(propertyTokens).Draw(t, "sell")
			buy := rapid.SampledFrom(propertyTokens).Draw(t, "buy")
			if buy == sell {
				buy = propertyTokens[(indexOf(sell)+1)%len(propertyTokens)]
			}
			trades = append(trades, Trade{
				ID:        fmt.Sprintf("%s-t%d", prefix, i),
				SellToken: sell,
				BuyToken:  buy,
				Score:     rapid.Int64Range(-20, 50).Draw(t, "tradeScore"),
			})
		}
		return Solution{
			ID:     prefix,
			Solver: rapid.SampledFrom([]string{"solver_a", "solver_b", "solver_c"}).Draw(t, "solver"),
			Score:  tradeScoreSum(trades),
			Trades: trades,
		}
	})
}

func genSolutions(prefix string, max int) *rapid.Generator[[]Solution] {
	return rapid.Custom(func(t *rapid.T) []Solution {
		n := rapid.IntRange(0, max).Draw(t, "numSolutions")
		solutions := make([]Solution, 0, n)
		for i := 0; i < n; i++ {
			solutions = append(solutions, genSolution(fmt.Sprintf("%s-s%d", prefix, i)).Draw(t, "solution"))
		}
		return solutions
	})
}

// genPooledSolution draws trade ids from a small shared pool so the same
// order can reappear across solutions and auctions, which is what makes the
// replay's settled-order bookkeeping observable.
func genPooledSolution(id string) *rapid.Generator[Solution] {
	return rapid.Custom(func(t *rapid.T) Solution {
		numTrades := rapid.IntRange(1, 3).Draw(t, "numTrades")
		used := make(map[int]bool)
		trades := make([]Trade, 0, numTrades)
		for i := 0; i < numTrades; i++ {
			order := rapid.IntRange(0, 9).Draw(t, "order")
			if used[order] {
				continue
			}
			used[order] = true
			sell := rapid.SampledFrom(propertyTokens).Draw(t, "sell")
			buy := rapid.SampledFrom(propertyTokens).Draw(t, "buy")
			if buy == sell {
				buy = propertyTokens[(indexOf(sell)+1)%len(propertyTokens)]
			}
			trades = append(trades, Trade{
				ID:        fmt.Sprintf("order-%d", order),
				SellToken: sell,
				BuyToken:  buy,
				Score:     rapid.Int64Range(1, 50).Draw(t, "tradeScore"),
			})
		}
		return Solution{
			ID:     id,
			Solver: rapid.SampledFrom([]string{"solver_a", "solver_b", "solver_c"}).Draw(t, "solver"),
			Score:  tradeScoreSum(trades),
			Trades: trades,
		}
	})
}

func indexOf(token string) int {
	for i, candidate := range propertyTokens {
		if candidate == token {
			return i
		}
	}
	return -1
}

func TestProperty_SinglePairSolutionsAlwaysSurviveBaselineFilter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		solutions := genSolutions("run", 8).Draw(t, "solutions")
		filtered := BaselineFilter{}.Filter(solutions)

		survived := make(map[string]bool)
		for _, solution := range filtered {
			survived[solution.ID] = true
		}
		for _, solution := range solutions {
			if len(AggregateScores(solution)) == 1 && !survived[solution.ID] {
				t.Fatalf("single-pair solution %s was rejected", solution.ID)
			}
		}
	})
}

func TestProperty_SurvivingMultiPairSolutionsMeetEveryBaseline(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		solutions := genSolutions("run", 8).Draw(t, "solutions")
		baselines := ComputeBaselineSolutions(solutions)
		filtered := BaselineFilter{}.Filter(solutions)

		for _, solution := range filtered {
			scores := AggregateScores(solution)
			if len(scores) == 1 {
				continue
			}
			for pair, score := range scores {
				baseline, ok := baselines[pair]
				if !ok {
					continue
				}
				if total := tradeScoreSum(baseline.Trades); score < total {
					t.Fatalf("solution %s survived with score %d on %v below baseline %d",
						solution.ID, score, pair, total)
				}
			}
		}
	})
}

func TestProperty_SelectedSolutionsArePairwiseCompatible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		solutions := genSolutions("run", 10).Draw(t, "solutions")
		cumulative := rapid.Bool().Draw(t, "cumulative")
		selected := SubsetFilteringSelection{CumulativeFiltering: cumulative}.SelectSolutions(solutions)

		compatibility := DirectedTokenPairs{}
		for i := range selected {
			for j := i + 1; j < len(selected); j++ {
				if intersects(compatibility.FilterSet(selected[i]), compatibility.FilterSet(selected[j])) {
					t.Fatalf("selected solutions %s and %s share a directed token pair",
						selected[i].ID, selected[j].ID)
				}
			}
		}
	})
}

func TestProperty_SelectionIsGreedyByScore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		solutions := genSolutions("run", 10).Draw(t, "solutions")
		selected := SubsetFilteringSelection{}.SelectSolutions(solutions)

		// Accepted solutions come out in non-increasing score order.
		for i := 1; i < len(selected); i++ {
			if selected[i].Score > selected[i-1].Score {
				t.Fatalf("selection order not score-descending: %d after %d",
					selected[i].Score, selected[i-1].Score)
			}
		}

		// In non-cumulative mode a solution is only ever rejected because it
		// conflicts with something that was accepted.
		compatibility := DirectedTokenPairs{}
		accepted := make(map[string]bool)
		blocked := make(map[Resource]bool)
		for _, solution := range selected {
			accepted[solution.ID] = true
			union(blocked, compatibility.FilterSet(solution))
		}
		for _, solution := range solutions {
			if !accepted[solution.ID] && !intersects(compatibility.FilterSet(solution), blocked) {
				t.Fatalf("solution %s was rejected without conflicting with any winner", solution.ID)
			}
		}
	})
}

func TestProperty_ReplayNeverReawardsASettledOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numAuctions := rapid.IntRange(1, 4).Draw(t, "numAuctions")
		auctions := make([][]Solution, 0, numAuctions)
		for i := 0; i < numAuctions; i++ {
			numSolutions := rapid.IntRange(0, 5).Draw(t, "numSolutions")
			auction := make([]Solution, 0, numSolutions)
			for j := 0; j < numSolutions; j++ {
				auction = append(auction, genPooledSolution(fmt.Sprintf("a%d-s%d", i, j)).Draw(t, "solution"))
			}
			auctions = append(auctions, auction)
		}

		winners := RunCounterfactualWinners(auctions, DefaultMechanism(), true)

		// The settled set only grows, so no trade id won in an earlier
		// auction may reappear in a later auction's winners.
		settled := make(map[string]bool)
		for i, auctionWinners := range winners {
			for id := range OrderIDs(auctionWinners) {
				if settled[id] {
					t.Fatalf("auction %d re-awarded settled order %s", i, id)
				}
			}
			for id := range OrderIDs(auctionWinners) {
				settled[id] = true
			}
		}
	})
}

func TestProperty_RewardKeysMatchWinningSolvers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		solutions := genSolutions("run", 8).Draw(t, "solutions")
		winners, rewards := DefaultMechanism().WinnersAndRewards(solutions)

		winningSolvers := make(map[string]bool)
		for _, winner := range winners {
			winningSolvers[winner.Solver] = true
		}
		if len(rewards) != len(winningSolvers) {
			t.Fatalf("reward map has %d keys, expected %d winning solvers", len(rewards), len(winningSolvers))
		}
		for solver, reward := range rewards {
			if !winningSolvers[solver] {
				t.Fatalf("non-winner %s appears in reward map", solver)
			}
			if reward != 0 {
				t.Fatalf("NoReward paid %d to %s", reward, solver)
			}
		}
	})
}
