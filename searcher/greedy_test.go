package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scarecrovv/game"
)

func newTestGame(t *testing.T) *game.GameState {
	t.Helper()
	g, err := game.NewGame(game.DefaultConfig(), game.DefaultCatalog(), "test-game")
	require.NoError(t, err)
	return g
}

func TestGreedyChooseAction(t *testing.T) {
	t.Run("deterministic without exploration", func(t *testing.T) {
		g := newTestGame(t)
		g.StartRound()
		bot := NewGreedy(0)
		seat := g.CurrentSeat

		first := bot.ChooseAction(g, seat)
		for i := 0; i < 5; i++ {
			require.Equal(t, first, bot.ChooseAction(g, seat), "scoring must not depend on call count")
		}
	})

	t.Run("never picks pass while real actions score higher", func(t *testing.T) {
		g := newTestGame(t)
		g.StartRound()
		bot := NewGreedy(0)

		a := bot.ChooseAction(g, g.CurrentSeat)
		require.NotEqual(t, game.ActionPass, a.Kind, "a fresh round always offers something better than passing")
	})

	t.Run("ties keep enumeration order", func(t *testing.T) {
		cat := game.NewCatalog([]game.CardDef{
			{ID: "twin_a", Type: game.TypeWild, BuyCost: game.Bank{game.Plasma: 1}},
			{ID: "twin_b", Type: game.TypeWild, BuyCost: game.Bank{game.Plasma: 1}},
		})
		cfg := game.DefaultConfig()
		cfg.VPBuyCost = nil
		g, err := game.NewGame(cfg, cat, "test-game")
		require.NoError(t, err)

		p := g.Players[0]
		p.Hand = []string{"twin_b", "twin_a"}
		p.Bank = game.Bank{}
		p.Mat = [game.MatSlots + 1]string{}
		g.Pool = nil

		a := NewGreedy(0).ChooseAction(g, 0)
		require.Equal(t, game.ActionPlayActive, a.Kind)
		require.Equal(t, "twin_b", a.CardID, "identical scores resolve to the first enumerated action")
	})

	t.Run("exploration stays on the seeded stream", func(t *testing.T) {
		g := newTestGame(t)
		g.StartRound()
		bot := NewGreedy(1)

		a := bot.ChooseAction(g.Clone(), g.CurrentSeat)
		b := bot.ChooseAction(g.Clone(), g.CurrentSeat)
		require.Equal(t, a, b, "clones replay the same exploration draw")
		require.NotEqual(t, game.ActionPass, a.Kind, "exploration is guided away from passing")
	})
}

func TestGreedyScore(t *testing.T) {
	t.Run("pass is the floor", func(t *testing.T) {
		g := newTestGame(t)
		bot := NewGreedy(0)
		require.Equal(t, -1.0, bot.Score(g, 0, game.Pass))
	})

	t.Run("vp plays wait for a working engine", func(t *testing.T) {
		g := newTestGame(t)
		bot := NewGreedy(0)
		p := g.Players[0]
		p.Hand = []string{game.VPToken(3)}
		p.Bank = game.Bank{}

		play := game.Action{Kind: game.ActionPlayActive, CardID: game.VPToken(3)}
		weak := bot.Score(g, 0, play)

		p.Bank.Add(game.Plasma, 5)
		strong := bot.Score(g, 0, play)

		require.Greater(t, strong, weak)
		require.Greater(t, strong, 3*weak, "a ready engine flips the hold into a priority play")
	})

	t.Run("slot one bonus raises the vp play score", func(t *testing.T) {
		g := newTestGame(t)
		bot := NewGreedy(0)
		p := g.Players[0]
		p.Hand = []string{game.VPToken(1)}
		p.Bank = game.Bank{}
		p.Bank.Add(game.Plasma, 5)

		play := game.Action{Kind: game.ActionPlayActive, CardID: game.VPToken(1)}
		plain := bot.Score(g, 0, play)
		p.Mat[1] = "crow_scout"
		boosted := bot.Score(g, 0, play)

		require.Greater(t, boosted, plain)
	})

	t.Run("initiative is worth more to trailing seats", func(t *testing.T) {
		g := newTestGame(t)
		g.StartRound()
		bot := NewGreedy(0)
		claim := game.Action{Kind: game.ActionPlaceWorker, Field: game.FieldInitiative}

		leader := g.TurnOrder[0]
		trailer := g.TurnOrder[len(g.TurnOrder)-1]
		require.Greater(t, bot.Score(g, trailer, claim), bot.Score(g, leader, claim))
	})
}
