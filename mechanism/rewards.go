package mechanism

// RewardMechanism computes per-solver rewards, in atoms of the reference
// asset, for the winners of one auction. The full filtered candidate pool is
// passed alongside the winners so that externality-pricing schemes (VCG-like
// rewards) can price a winner's marginal contribution against the solutions
// it displaced.
type RewardMechanism interface {
	ComputeRewards(winners, solutions []Solution) map[string]int64
}

// NoReward pays every winning solver zero. It is the placeholder mechanism
// used while reward rules are verified off-chain.
type NoReward struct{}

func (NoReward) ComputeRewards(winners, solutions []Solution) map[string]int64 {
	rewards := make(map[string]int64, len(winners))
	for _, winner := range winners {
		rewards[winner.Solver] = 0
	}
	return rewards
}
