package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MCTSConfig holds the search-bot knobs.
type MCTSConfig struct {
	Enabled    bool `yaml:"enabled"`
	Rollouts   int  `yaml:"rollouts"`
	Horizon    int  `yaml:"horizon"`
	ActionsCap int  `yaml:"actions_cap"` // 0 = no candidate cap
	TimeMS     int  `yaml:"time_ms"`     // 0 = no soft time budget
}

// VPPlayCost describes the play cost of a VP token: a fixed part plus an
// optional "pay one of" component. Multi-resource costs are the general
// case; plasma-only defaults are a catalog-completeness fallback only.
type VPPlayCost struct {
	Fixed       map[string]int `yaml:"fixed"`
	ChoiceOneOf []string       `yaml:"choice_one_of"`
}

// Config is the full configuration surface consumed by the core. Zero
// values are filled from DefaultConfig by Load.
type Config struct {
	Seed            uint64 `yaml:"seed"`
	Players         int    `yaml:"players"`
	VictoryVP       int    `yaml:"victory_vp"`
	HandSize        int    `yaml:"hand_size"`
	ActionsPerTurn  int    `yaml:"actions_per_turn"`
	WorkersPerRound int    `yaml:"workers_per_round"`
	CopiesPerUnique int    `yaml:"copies_per_unique"`
	PoolSize        int    `yaml:"pool_size"`
	RoundCap        int    `yaml:"round_cap"`
	TurnCap         int    `yaml:"turn_cap"`

	// Greedy knobs.
	Explore            float64 `yaml:"explore"`
	LateRoundThreshold int     `yaml:"late_round_threshold"`
	BigHandThreshold   int     `yaml:"big_hand_threshold"`
	InitiativeBias     float64 `yaml:"initiative_bias"`

	FieldCapacity map[string]int     `yaml:"field_capacity"`
	VPBuyCost     map[int]int        `yaml:"vp_buy_cost"`
	VPPlayCosts   map[int]VPPlayCost `yaml:"vp_play_costs"`

	MCTS MCTSConfig `yaml:"mcts"`

	CardsCSV    string `yaml:"cards_csv"`
	GlobalsCSV  string `yaml:"globals_csv"`
	Games       int    `yaml:"games"`
	StartOffset int    `yaml:"start_offset"`
	OutDir      string `yaml:"out_dir"`
}

func DefaultConfig() Config {
	return Config{
		Seed:            42,
		Players:         3,
		VictoryVP:       24,
		HandSize:        5,
		ActionsPerTurn:  2,
		WorkersPerRound: 2,
		CopiesPerUnique: 2,
		PoolSize:        10,
		RoundCap:        200,
		TurnCap:         5000,

		Explore:            0,
		LateRoundThreshold: 6,
		BigHandThreshold:   6,
		InitiativeBias:     1.0,

		FieldCapacity: map[string]int{
			"plasma": 1, "ash": 1, "shards": 1, "forage": 1,
			"rookery": 1, "compost": 1, "initiative": 1,
		},
		VPBuyCost: map[int]int{1: 1, 3: 2},
		VPPlayCosts: map[int]VPPlayCost{
			1: {
				Fixed:       map[string]int{"plasma": 1, "shards": 1},
				ChoiceOneOf: []string{"plasma", "shards", "ash", "nut", "berry", "mushroom"},
			},
			3: {
				Fixed: map[string]int{
					"plasma": 1, "ash": 1, "shards": 1,
					"nut": 1, "berry": 1, "mushroom": 1,
				},
			},
		},

		MCTS: MCTSConfig{Rollouts: 8, Horizon: 3},

		Games:  25,
		OutDir: "summaries",
	}
}

// Load reads a YAML config file over the defaults. An empty path yields
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects contradictory or out-of-range configuration. A failure
// here is fatal to the run before any game state exists.
func (c Config) Validate() error {
	check := func(ok bool, format string, args ...any) error {
		if ok {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrBadConfig, fmt.Sprintf(format, args...))
	}
	if err := check(c.Players >= 2, "players must be >= 2, got %d", c.Players); err != nil {
		return err
	}
	if err := check(c.VictoryVP > 0, "victory_vp must be > 0, got %d", c.VictoryVP); err != nil {
		return err
	}
	if err := check(c.HandSize > 0, "hand_size must be > 0, got %d", c.HandSize); err != nil {
		return err
	}
	if err := check(c.ActionsPerTurn > 0, "actions_per_turn must be > 0, got %d", c.ActionsPerTurn); err != nil {
		return err
	}
	if err := check(c.WorkersPerRound > 0, "workers_per_round must be > 0, got %d", c.WorkersPerRound); err != nil {
		return err
	}
	if err := check(c.PoolSize > 0, "pool_size must be > 0, got %d", c.PoolSize); err != nil {
		return err
	}
	if err := check(c.CopiesPerUnique > 0, "copies_per_unique must be > 0, got %d", c.CopiesPerUnique); err != nil {
		return err
	}
	if err := check(c.RoundCap > 0 && c.TurnCap > 0, "round_cap and turn_cap must be > 0"); err != nil {
		return err
	}
	if err := check(c.StartOffset >= 0, "start_offset must be >= 0, got %d", c.StartOffset); err != nil {
		return err
	}
	for name, capacity := range c.FieldCapacity {
		if _, ok := fieldByName(name); !ok {
			return fmt.Errorf("%w: unknown field %q", ErrBadConfig, name)
		}
		if capacity < 0 {
			return fmt.Errorf("%w: field %q capacity must be >= 0", ErrBadConfig, name)
		}
	}
	for value, vc := range c.VPPlayCosts {
		if value <= 0 {
			return fmt.Errorf("%w: vp_play_costs key must be > 0, got %d", ErrBadConfig, value)
		}
		for name := range vc.Fixed {
			if _, ok := ParseResource(name); !ok {
				return fmt.Errorf("%w: vp_play_costs[%d]: unknown resource %q", ErrBadConfig, value, name)
			}
		}
		for _, name := range vc.ChoiceOneOf {
			if _, ok := ParseResource(name); !ok {
				return fmt.Errorf("%w: vp_play_costs[%d]: unknown resource %q", ErrBadConfig, value, name)
			}
		}
	}
	return nil
}
