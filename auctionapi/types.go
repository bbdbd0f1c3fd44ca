// Package auctionapi defines the wire representation of auction inputs and
// results. Field layout and ordering are contract-relevant: an external
// verifier compares the winners encoded here against an independently
// computed on-chain result, so trades and solutions must round-trip
// losslessly and in order.
package auctionapi

// Trade is the wire form of a single order execution. Scores on the wire are
// unsigned: winners only ever carry positive scores.
type Trade struct {
	ID        string `json:"id"`
	SellToken string `json:"sellToken"`
	BuyToken  string `json:"buyToken"`
	Score     uint64 `json:"score"`
}

// Solution is the wire form of one solver's proposed batch.
type Solution struct {
	ID     string  `json:"id"`
	Solver string  `json:"solver"`
	Score  uint64  `json:"score"`
	Trades []Trade `json:"trades"`
}

// AuctionSeries is the materialized input to a counterfactual run: one
// solutions list per auction, in chronological order. How the series was
// fetched is outside this module.
type AuctionSeries struct {
	Auctions [][]Solution `json:"auctions"`
}

// Snapshot is the output payload of one counterfactual run, written for the
// external verifier. Winner lists are per auction, in auction order.
type Snapshot struct {
	RunID string `json:"run_id,omitempty"`
	// Timestamp is RFC 3339 text rather than a time value so the
	// deterministic CBOR form stays stable across time zones.
	Timestamp           string       `json:"timestamp,omitempty"`
	SolutionsBatch      [][]Solution `json:"solutions_batch,omitempty"`
	SolutionsBatchSplit [][]Solution `json:"solutions_batch_split,omitempty"`
	Winners             [][]Solution `json:"winners"`
}
