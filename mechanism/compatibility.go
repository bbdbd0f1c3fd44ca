package mechanism

// Resource identifies something a solution occupies exclusively while it
// executes. Two solutions can settle in the same batch iff their resource
// sets are disjoint.
type Resource string

// BatchCompatibilityFilter derives the set of resources a solution consumes.
// Implementations define what counts as a resource (directed token pairs,
// individual orders, single tokens, ...); the selection algorithm only needs
// set intersection.
type BatchCompatibilityFilter interface {
	FilterSet(solution Solution) map[Resource]bool
}

// DirectedTokenPairs treats every directed (sell, buy) token pair touched by
// a solution's trades as one resource. Opposite directions of the same pair
// are distinct resources and do not conflict.
type DirectedTokenPairs struct{}

func (DirectedTokenPairs) FilterSet(solution Solution) map[Resource]bool {
	set := make(map[Resource]bool)
	for _, trade := range solution.Trades {
		set[trade.Pair().resource()] = true
	}
	return set
}

func (p TokenPair) resource() Resource {
	return Resource(p.Sell + ">" + p.Buy)
}
