package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"scarecrovv/game"
)

// Series is the outcome of a batch of games played for a card-balance or
// bot-strength comparison.
type Series struct {
	Results      []Result
	WinnerCounts map[int]int
}

// AgentFactory builds the per-seat agents for one game.
type AgentFactory func(cfg game.Config) []Agent

// RunMany plays a series of independent games. Each game derives its own seed
// (base+i) and rotates the starting seat to neutralize first-mover
// advantage across the series. Games share nothing, so callers may shard
// a series across processes by splitting the seed range.
func RunMany(cfg game.Config, cat *game.Catalog, games int, factory AgentFactory) (Series, error) {
	if err := cfg.Validate(); err != nil {
		return Series{}, err
	}
	series := Series{WinnerCounts: make(map[int]int)}

	for i := 0; i < games; i++ {
		gameCfg := cfg
		gameCfg.Seed = cfg.Seed + uint64(i)
		gameCfg.StartOffset = (cfg.StartOffset + i) % cfg.Players

		eng, err := New(gameCfg, cat, uuid.NewString(), factory(gameCfg))
		if err != nil {
			return series, err
		}
		result := eng.Run()
		series.Results = append(series.Results, result)
		series.WinnerCounts[result.Winner]++

		log.Debug().
			Str("game", result.GameID).
			Uint64("seed", result.Seed).
			Int("winner", result.Winner).
			Str("reason", result.Reason).
			Int("rounds", result.Rounds).
			Msg("game finished")
	}
	return series, nil
}
