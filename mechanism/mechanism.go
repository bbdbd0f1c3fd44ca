package mechanism

// AuctionMechanism turns the candidate solutions of one auction into winners
// and per-solver rewards.
type AuctionMechanism interface {
	WinnersAndRewards(solutions []Solution) ([]Solution, map[string]int64)
}

// FilterRankReward composes the three auction stages: filter the candidate
// pool, select winners from the survivors, compute rewards from winners plus
// the filtered pool. It holds no state and is safe to use concurrently on
// independent auctions.
type FilterRankReward struct {
	SolutionFilter  SolutionFilter
	WinnerSelection WinnerSelection
	RewardMechanism RewardMechanism
}

func (m FilterRankReward) WinnersAndRewards(solutions []Solution) ([]Solution, map[string]int64) {
	filtered := m.SolutionFilter.Filter(solutions)
	winners := m.WinnerSelection.SelectWinners(filtered)
	rewards := m.RewardMechanism.ComputeRewards(winners, filtered)
	return winners, rewards
}

// DefaultMechanism assembles the mechanism used for reference runs: baseline
// filtering, non-cumulative subset selection over directed token pairs, and
// zero rewards.
func DefaultMechanism() FilterRankReward {
	return FilterRankReward{
		SolutionFilter: BaselineFilter{},
		WinnerSelection: DirectSelection{
			SelectionRule: SubsetFilteringSelection{
				CumulativeFiltering: false,
				BatchCompatibility:  DirectedTokenPairs{},
			},
		},
		RewardMechanism: NoReward{},
	}
}
