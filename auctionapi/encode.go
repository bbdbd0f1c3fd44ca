package auctionapi

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/Architsharma7/Comb-auction/mechanism"
)

// cborEnc uses CBOR core deterministic encoding so two runs over the same
// winners produce byte-identical output for the verifier.
var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("auctionapi: build CBOR encode mode: %v", err))
	}
}

// EncodeSolution converts a mechanism solution to its wire form, preserving
// trade order. It fails on negative scores: the wire contract is unsigned
// and truncation would silently corrupt the verifier comparison.
func EncodeSolution(solution mechanism.Solution) (Solution, error) {
	if solution.Score < 0 {
		return Solution{}, fmt.Errorf("encode solution %s: negative score %d", solution.ID, solution.Score)
	}
	trades := make([]Trade, len(solution.Trades))
	for i, trade := range solution.Trades {
		if trade.Score < 0 {
			return Solution{}, fmt.Errorf("encode solution %s: trade %s has negative score %d",
				solution.ID, trade.ID, trade.Score)
		}
		trades[i] = Trade{
			ID:        trade.ID,
			SellToken: trade.SellToken,
			BuyToken:  trade.BuyToken,
			Score:     uint64(trade.Score),
		}
	}
	return Solution{
		ID:     solution.ID,
		Solver: solution.Solver,
		Score:  uint64(solution.Score),
		Trades: trades,
	}, nil
}

// EncodeSolutions converts a solutions list, preserving order.
func EncodeSolutions(solutions []mechanism.Solution) ([]Solution, error) {
	encoded := make([]Solution, len(solutions))
	for i, solution := range solutions {
		var err error
		if encoded[i], err = EncodeSolution(solution); err != nil {
			return nil, err
		}
	}
	return encoded, nil
}

// EncodeAuctions converts per-auction solution lists (candidate batches or
// winner lists), preserving both the auction order and each list's order.
func EncodeAuctions(auctions [][]mechanism.Solution) ([][]Solution, error) {
	encoded := make([][]Solution, len(auctions))
	for i, solutions := range auctions {
		var err error
		if encoded[i], err = EncodeSolutions(solutions); err != nil {
			return nil, fmt.Errorf("auction %d: %w", i, err)
		}
	}
	return encoded, nil
}

// DecodeSolution converts a wire solution back to its mechanism form.
// Wire scores above the signed 64-bit range cannot be represented and are
// rejected rather than wrapped.
func DecodeSolution(solution Solution) (mechanism.Solution, error) {
	if solution.Score > math.MaxInt64 {
		return mechanism.Solution{}, fmt.Errorf("decode solution %s: score %d overflows", solution.ID, solution.Score)
	}
	trades := make([]mechanism.Trade, len(solution.Trades))
	for i, trade := range solution.Trades {
		if trade.Score > math.MaxInt64 {
			return mechanism.Solution{}, fmt.Errorf("decode solution %s: trade %s score %d overflows",
				solution.ID, trade.ID, trade.Score)
		}
		trades[i] = mechanism.Trade{
			ID:        trade.ID,
			SellToken: trade.SellToken,
			BuyToken:  trade.BuyToken,
			Score:     int64(trade.Score),
		}
	}
	return mechanism.Solution{
		ID:     solution.ID,
		Solver: solution.Solver,
		Score:  int64(solution.Score),
		Trades: trades,
	}, nil
}

// DecodeAuctions converts a materialized auction series into mechanism
// values, preserving auction and solution order.
func DecodeAuctions(series AuctionSeries) ([][]mechanism.Solution, error) {
	auctions := make([][]mechanism.Solution, len(series.Auctions))
	for i, solutions := range series.Auctions {
		auctions[i] = make([]mechanism.Solution, len(solutions))
		for j, solution := range solutions {
			var err error
			if auctions[i][j], err = DecodeSolution(solution); err != nil {
				return nil, fmt.Errorf("auction %d: %w", i, err)
			}
		}
	}
	return auctions, nil
}

// MarshalSnapshotCBOR serializes a snapshot with deterministic CBOR for the
// reference-encoding consumer.
func MarshalSnapshotCBOR(snapshot Snapshot) ([]byte, error) {
	return cborEnc.Marshal(snapshot)
}

// UnmarshalSnapshotCBOR parses a deterministic CBOR snapshot.
func UnmarshalSnapshotCBOR(data []byte) (Snapshot, error) {
	var snapshot Snapshot
	if err := cbor.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("parse CBOR snapshot: %w", err)
	}
	return snapshot, nil
}
