package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scarecrovv/engine"
	"scarecrovv/experiments/metrics"
	"scarecrovv/game"
	"scarecrovv/searcher"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults apply when empty)")
	games := flag.Int("games", 0, "Number of games to play (overrides config when > 0)")
	outDir := flag.String("out", "", "Output directory for summaries (overrides config when set)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := game.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}

	fmt.Printf("Running %d games, %d players, seed %d, bot %s...\n",
		cfg.Games, cfg.Players, cfg.Seed, botName(cfg))

	series, err := engine.RunMany(cfg, cat, cfg.Games, agentFactory)
	if err != nil {
		log.Fatal().Err(err).Msg("series failed")
	}

	seats := make([]int, 0, len(series.WinnerCounts))
	for seat := range series.WinnerCounts {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	for _, seat := range seats {
		fmt.Printf("Seat %d: %d wins\n", seat, series.WinnerCounts[seat])
	}

	summary := metrics.Aggregate(series.Results)
	writer, err := metrics.NewWriter(cfg.OutDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create summary writer")
	}
	if err := writer.WriteGameSummary(summary.Games); err != nil {
		log.Fatal().Err(err).Msg("failed to write game summary")
	}
	if err := writer.WriteCardSummary(summary.Cards); err != nil {
		log.Fatal().Err(err).Msg("failed to write card summary")
	}
	if err := writer.WriteFieldSummary(summary.Fields); err != nil {
		log.Fatal().Err(err).Msg("failed to write field summary")
	}
	if err := writer.WriteEventLogs(series.Results); err != nil {
		log.Fatal().Err(err).Msg("failed to write event logs")
	}
	fmt.Printf("Summaries written to %s\n", writer.BaseDir())
}

func loadCatalog(cfg game.Config) (*game.Catalog, error) {
	if cfg.CardsCSV == "" {
		return game.DefaultCatalog(), nil
	}
	return game.LoadCatalog(cfg.CardsCSV, cfg.GlobalsCSV)
}

func botName(cfg game.Config) string {
	if cfg.MCTS.Enabled {
		return fmt.Sprintf("mcts@%dx%d", cfg.MCTS.Rollouts, cfg.MCTS.Horizon)
	}
	return "greedy"
}

// agentFactory gives every seat the same bot so a series measures card
// balance rather than bot strength.
func agentFactory(cfg game.Config) []engine.Agent {
	agents := make([]engine.Agent, cfg.Players)
	for i := range agents {
		if cfg.MCTS.Enabled {
			agents[i] = searcher.FromConfig(cfg.MCTS)
		} else {
			agents[i] = searcher.NewGreedy(cfg.Explore)
		}
	}
	return agents
}
