package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scarecrovv/game"
)

// richSeat sets seat 0 up with a dominant VP:3 play: slot 1 occupied for
// the bonus, one of each resource for the fixed cost and spare plasma so
// the token is considered affordable by the greedy timing rule.
func richSeat(t *testing.T) *game.GameState {
	t.Helper()
	g := newTestGame(t)
	p := g.Players[0]
	p.Mat[1] = "crow_scout"
	p.Hand = []string{game.VPToken(3), game.ResourceToken(game.Plasma)}
	p.Bank = game.Bank{}
	for _, r := range game.Resources {
		p.Bank.Add(r, 1)
	}
	p.Bank.Add(game.Plasma, 2)
	return g
}

func TestMCTSChooseAction(t *testing.T) {
	vpPlay := game.Action{Kind: game.ActionPlayActive, CardID: game.VPToken(3)}

	t.Run("degenerate search matches the greedy pick", func(t *testing.T) {
		g := richSeat(t)
		bot := NewMCTS(WithRollouts(1), WithHorizon(0))

		require.Equal(t, NewGreedy(0).ChooseAction(g, 0), bot.ChooseAction(g, 0))
		require.Equal(t, vpPlay, bot.ChooseAction(g, 0))
	})

	t.Run("search never mutates the live state", func(t *testing.T) {
		g := richSeat(t)
		p := g.Players[0]
		hand := append([]string(nil), p.Hand...)
		bank := p.Bank
		pool := append([]string(nil), g.Pool...)
		logLen := len(g.Log.Records)

		NewMCTS(WithRollouts(4), WithHorizon(3)).ChooseAction(g, 0)

		require.Equal(t, hand, p.Hand)
		require.Equal(t, bank, p.Bank)
		require.Equal(t, pool, g.Pool)
		require.Zero(t, p.VP)
		require.Len(t, g.Log.Records, logLen, "rollouts never write into the real log")
	})

	t.Run("actions cap narrows the root to the greedy front", func(t *testing.T) {
		g := richSeat(t)
		bot := NewMCTS(WithRollouts(2), WithHorizon(2), WithActionsCap(1))

		require.Equal(t, vpPlay, bot.ChooseAction(g, 0))
	})

	t.Run("single real choice skips the search", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = nil
		p.Bank = game.Bank{}
		p.Workers = 1
		g.Pool = nil
		for _, f := range game.AllFields {
			if f != game.FieldRookery {
				g.FieldOccupancy[f] = g.FieldCapacity[f]
			}
		}

		a := NewMCTS().ChooseAction(g, 0)
		require.Equal(t, game.Action{Kind: game.ActionPlaceWorker, Field: game.FieldRookery}, a)
	})

	t.Run("no real choice passes", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = nil
		p.Bank = game.Bank{}
		g.Pool = nil

		require.Equal(t, game.Pass, NewMCTS().ChooseAction(g, 0))
	})

	t.Run("exhausted time budget falls back to the greedy front", func(t *testing.T) {
		g := richSeat(t)
		bot := NewMCTS(WithRollouts(1000), WithHorizon(3), WithTimeBudget(time.Nanosecond))

		require.Equal(t, vpPlay, bot.ChooseAction(g, 0))
	})

	t.Run("repeated searches agree", func(t *testing.T) {
		g := richSeat(t)
		bot := FromConfig(game.MCTSConfig{Rollouts: 4, Horizon: 2})

		first := bot.ChooseAction(g.Clone(), 0)
		second := bot.ChooseAction(g.Clone(), 0)
		require.Equal(t, first, second)
	})
}
