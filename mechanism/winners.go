package mechanism

// WinnerSelection maps filtered solutions to the final winners. It is a
// separate layer from SolutionSelection so that auction-theoretic winner
// rules can replace plain subset selection without touching the mechanism.
type WinnerSelection interface {
	SelectWinners(solutions []Solution) []Solution
}

// DirectSelection declares the selected solutions to be the winners.
type DirectSelection struct {
	SelectionRule SolutionSelection
}

func (d DirectSelection) SelectWinners(solutions []Solution) []Solution {
	return d.SelectionRule.SelectSolutions(solutions)
}
