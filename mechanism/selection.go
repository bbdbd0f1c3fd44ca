package mechanism

import "sort"

// SolutionSelection picks a subset of solutions that can all be executed in
// the same batch.
type SolutionSelection interface {
	SelectSolutions(solutions []Solution) []Solution
}

// SubsetFilteringSelection greedily accepts solutions in descending score
// order, skipping any whose resource set intersects the resources already
// blocked. This is a fast greedy approximation to weighted set packing, not
// a global optimum.
//
// With CumulativeFiltering false (the default) only accepted solutions block
// resources. With CumulativeFiltering true every scanned solution blocks its
// resources, accepted or not, which is strictly harder to pass.
type SubsetFilteringSelection struct {
	CumulativeFiltering bool
	// BatchCompatibility defaults to DirectedTokenPairs when nil.
	BatchCompatibility BatchCompatibilityFilter
}

func (s SubsetFilteringSelection) SelectSolutions(solutions []Solution) []Solution {
	compatibility := s.BatchCompatibility
	if compatibility == nil {
		compatibility = DirectedTokenPairs{}
	}

	sorted := make([]Solution, len(solutions))
	copy(sorted, solutions)
	// Stable sort: equal scores keep their input order. The tie-break must
	// stay fixed so results reproduce bit-exactly against the on-chain
	// reference computation.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	selection := make([]Solution, 0, len(sorted))
	blocked := make(map[Resource]bool)
	for _, solution := range sorted {
		filterSet := compatibility.FilterSet(solution)
		if !intersects(filterSet, blocked) {
			selection = append(selection, solution)
			if !s.CumulativeFiltering {
				union(blocked, filterSet)
			}
		}
		if s.CumulativeFiltering {
			union(blocked, filterSet)
		}
	}
	return selection
}

func intersects(a, b map[Resource]bool) bool {
	for resource := range a {
		if b[resource] {
			return true
		}
	}
	return false
}

func union(dst, src map[Resource]bool) {
	for resource := range src {
		dst[resource] = true
	}
}
