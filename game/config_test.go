package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"players: 4\nvictory_vp: 30\nmcts:\n  enabled: true\n  rollouts: 16\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 4, cfg.Players)
		require.Equal(t, 30, cfg.VictoryVP)
		require.True(t, cfg.MCTS.Enabled)
		require.Equal(t, 16, cfg.MCTS.Rollouts)
		require.Equal(t, DefaultConfig().HandSize, cfg.HandSize, "untouched knobs keep defaults")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid override fails validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("players: 1\n"), 0644))

		_, err := Load(path)
		require.ErrorIs(t, err, ErrBadConfig)
	})
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	mutations := map[string]func(*Config){
		"too few players":        func(c *Config) { c.Players = 1 },
		"zero victory threshold": func(c *Config) { c.VictoryVP = 0 },
		"zero hand size":         func(c *Config) { c.HandSize = 0 },
		"zero action budget":     func(c *Config) { c.ActionsPerTurn = 0 },
		"zero workers":           func(c *Config) { c.WorkersPerRound = 0 },
		"zero pool":              func(c *Config) { c.PoolSize = 0 },
		"zero copies":            func(c *Config) { c.CopiesPerUnique = 0 },
		"zero round cap":         func(c *Config) { c.RoundCap = 0 },
		"negative start offset":  func(c *Config) { c.StartOffset = -1 },
		"unknown field name":     func(c *Config) { c.FieldCapacity = map[string]int{"volcano": 1} },
		"negative field capacity": func(c *Config) {
			c.FieldCapacity = map[string]int{"plasma": -1}
		},
		"unknown fixed resource": func(c *Config) {
			c.VPPlayCosts = map[int]VPPlayCost{1: {Fixed: map[string]int{"plutonium": 1}}}
		},
		"unknown choice resource": func(c *Config) {
			c.VPPlayCosts = map[int]VPPlayCost{1: {ChoiceOneOf: []string{"plutonium"}}}
		},
		"non-positive vp value": func(c *Config) {
			c.VPPlayCosts = map[int]VPPlayCost{0: {}}
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrBadConfig)
		})
	}
}
