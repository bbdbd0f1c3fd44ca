package mechanism

// Trade is a single order execution proposed as part of a solution.
// Score is denominated in atoms of the reference asset and may be negative.
type Trade struct {
	ID        string
	SellToken string
	BuyToken  string
	Score     int64
}

// Pair returns the directed token pair the trade executes on.
func (t Trade) Pair() TokenPair {
	return TokenPair{Sell: t.SellToken, Buy: t.BuyToken}
}

// TokenPair is a directed (sell, buy) token pair. Direction matters:
// (A, B) and (B, A) are distinct pairs and never conflict with each other.
type TokenPair struct {
	Sell string
	Buy  string
}

// Solution is one solver's proposed batch of trades for a single auction.
// Solutions derived inside this package always satisfy Score == sum of the
// trades' scores; externally supplied solutions are not re-validated.
type Solution struct {
	ID     string
	Solver string
	Score  int64
	Trades []Trade
}

// OrderIDs collects the id of every trade appearing in any of the solutions.
func OrderIDs(solutions []Solution) map[string]bool {
	ids := make(map[string]bool)
	for _, solution := range solutions {
		for _, trade := range solution.Trades {
			ids[trade.ID] = true
		}
	}
	return ids
}

func tradeScoreSum(trades []Trade) int64 {
	var sum int64
	for _, trade := range trades {
		sum += trade.Score
	}
	return sum
}
