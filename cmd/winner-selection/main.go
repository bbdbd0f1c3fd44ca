package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/Architsharma7/Comb-auction/auctionapi"
	"github.com/Architsharma7/Comb-auction/config"
	"github.com/Architsharma7/Comb-auction/mechanism"
	"github.com/Architsharma7/Comb-auction/splitter"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to YAML config file (optional)")
		input        = flag.String("input", "", "Auction series JSON (overrides config)")
		output       = flag.String("output", "", "Snapshot output path (overrides config)")
		auctionIndex = flag.Int("auction-index", -2, "Run only this auction of the series (-1 = all)")
		noSplit      = flag.Bool("no-split", false, "Skip solution splitting")
		cumulative   = flag.Bool("cumulative", false, "Block resources of rejected solutions too")
		keepExecuted = flag.Bool("keep-executed", false, "Do not remove already-settled orders between auctions")
		format       = flag.String("format", "text", "Output format: text or json")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(2)
		}
	}
	if *input != "" {
		cfg.Run.Input = *input
	}
	if *output != "" {
		cfg.Run.Output = *output
	}
	if *auctionIndex != -2 {
		cfg.Run.AuctionIndex = auctionIndex
	}
	if *noSplit {
		disabled := false
		cfg.Split.Enabled = &disabled
	}
	if *cumulative {
		cfg.Run.CumulativeFiltering = true
	}
	if *keepExecuted {
		removed := false
		cfg.Run.RemoveExecutedOrders = &removed
	}

	if cfg.Run.Input == "" {
		fmt.Fprintf(os.Stderr, "Error: no input file (use -input or the config file)\n")
		os.Exit(2)
	}

	winners, err := run(cfg, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if winners == 0 {
		os.Exit(1)
	}
}

// run executes the counterfactual replay and returns the total number of
// winning solutions across all auctions.
func run(cfg *config.Config, format string) (int, error) {
	auctions, err := loadAuctions(cfg.Run.Input)
	if err != nil {
		return 0, err
	}
	log.Printf("INFO: Loaded %d auctions from %s", len(auctions), cfg.Run.Input)

	if index := *cfg.Run.AuctionIndex; index >= 0 {
		if index >= len(auctions) {
			return 0, fmt.Errorf("auction index %d out of range (%d auctions)", index, len(auctions))
		}
		auctions = auctions[index : index+1]
		log.Printf("INFO: Restricted run to auction index %d", index)
	}

	input := auctions
	if *cfg.Split.Enabled {
		log.Printf("INFO: Splitting solutions with efficiency loss %v and approach %q",
			cfg.Split.EfficiencyLoss, cfg.Split.Approach)
		input = make([][]mechanism.Solution, len(auctions))
		for i, solutions := range auctions {
			if input[i], err = splitter.Split(solutions, cfg.Split.EfficiencyLoss, splitter.Approach(cfg.Split.Approach)); err != nil {
				return 0, fmt.Errorf("split auction %d: %w", i, err)
			}
		}
	}

	auctionMechanism := mechanism.FilterRankReward{
		SolutionFilter: mechanism.BaselineFilter{},
		WinnerSelection: mechanism.DirectSelection{
			SelectionRule: mechanism.SubsetFilteringSelection{
				CumulativeFiltering: cfg.Run.CumulativeFiltering,
				BatchCompatibility:  mechanism.DirectedTokenPairs{},
			},
		},
		RewardMechanism: mechanism.NoReward{},
	}

	winners := mechanism.RunCounterfactualWinners(input, auctionMechanism, *cfg.Run.RemoveExecutedOrders)

	snapshot, err := buildSnapshot(auctions, input, winners, *cfg.Split.Enabled)
	if err != nil {
		return 0, err
	}

	if format == "json" {
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("marshal snapshot: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printWinners(winners)
	}

	if cfg.Run.Output != "" {
		if err := writeSnapshot(cfg.Run.Output, snapshot); err != nil {
			return 0, err
		}
		log.Printf("INFO: Wrote snapshot to %s", cfg.Run.Output)
	}

	total := 0
	for _, auctionWinners := range winners {
		total += len(auctionWinners)
	}
	log.Printf("INFO: %d winning solutions across %d auctions", total, len(winners))
	return total, nil
}

func loadAuctions(path string) ([][]mechanism.Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read auction series: %w", err)
	}
	var series auctionapi.AuctionSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("parse auction series: %w", err)
	}
	return auctionapi.DecodeAuctions(series)
}

func buildSnapshot(raw, split [][]mechanism.Solution, winners [][]mechanism.Solution, didSplit bool) (auctionapi.Snapshot, error) {
	encodedWinners, err := auctionapi.EncodeAuctions(winners)
	if err != nil {
		return auctionapi.Snapshot{}, fmt.Errorf("encode winners: %w", err)
	}
	snapshot := auctionapi.Snapshot{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Winners:   encodedWinners,
	}
	if snapshot.SolutionsBatch, err = auctionapi.EncodeAuctions(raw); err != nil {
		return auctionapi.Snapshot{}, fmt.Errorf("encode solutions batch: %w", err)
	}
	if didSplit {
		if snapshot.SolutionsBatchSplit, err = auctionapi.EncodeAuctions(split); err != nil {
			return auctionapi.Snapshot{}, fmt.Errorf("encode split batch: %w", err)
		}
	}
	return snapshot, nil
}

func writeSnapshot(path string, snapshot auctionapi.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func printWinners(winners [][]mechanism.Solution) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Auction", "Solution", "Solver", "Score", "Trades")

	for i, auctionWinners := range winners {
		if len(auctionWinners) == 0 {
			table.Append(fmt.Sprintf("%d", i), "-", "-", "-", "-")
			continue
		}
		for _, winner := range auctionWinners {
			table.Append(
				fmt.Sprintf("%d", i),
				winner.ID,
				winner.Solver,
				fmt.Sprintf("%d", winner.Score),
				fmt.Sprintf("%d", len(winner.Trades)),
			)
		}
	}

	table.Render()
}
