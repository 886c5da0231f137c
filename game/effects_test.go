package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompost(t *testing.T) {
	t.Run("composted cards leave the game and pay their credit", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = []string{"glow_beetle"} // on_compost:ash:1

		id := g.Compost(0, 0, "test")

		require.Equal(t, "glow_beetle", id)
		require.Empty(t, p.Hand)
		require.Equal(t, []string{"glow_beetle"}, g.Composted)
		require.Equal(t, 1, p.Bank.Get(Ash))

		types := []EventType{}
		for _, e := range g.Log.Records[len(g.Log.Records)-2:] {
			types = append(types, e.Type)
		}
		require.Equal(t, []EventType{EventCompostGain, EventCompost}, types)
	})

	t.Run("tokens compost without credit", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = []string{ResourceToken(Plasma)}

		id := g.Compost(0, 0, "test")

		require.Equal(t, ResourceToken(Plasma), id)
		require.True(t, p.Bank == Bank{Plasma: 1}, "only the setup income remains")
	})

	t.Run("out of range index is a no-op", func(t *testing.T) {
		g := newTestGame(t)
		before := len(g.Players[0].Hand)

		require.Empty(t, g.Compost(0, before, "test"))
		require.Empty(t, g.Compost(0, -1, "test"))
		require.Len(t, g.Players[0].Hand, before)
	})
}

func TestSlotThreeTrigger(t *testing.T) {
	g := newTestGame(t)
	p := g.Players[0]
	p.Hand = []string{"glow_beetle", "rat_forager"}
	p.Bank = Bank{}
	p.Bank.Add(Ash, 1)

	require.NoError(t, Apply(g, 0, Action{Kind: ActionPlayToMat, CardID: "glow_beetle", Slot: 3}))

	require.Equal(t, "glow_beetle", p.Mat[3])
	require.Empty(t, p.Hand, "the oldest remaining hand card is composted")
	require.Contains(t, g.Composted, "rat_forager")
}

func TestGlobalEffects(t *testing.T) {
	t.Run("forage bonus lasts the round", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = []string{"harvest_rite"} // forage bonus plus a berry
		p.Bank = Bank{}
		p.Bank.Add(Plasma, 1)

		require.NoError(t, Apply(g, 0, Action{Kind: ActionPlayActive, CardID: "harvest_rite"}))

		require.Equal(t, 1, g.ForageBonus)
		require.Equal(t, 1, p.Bank.Get(Berry))
	})

	t.Run("hand size delta applies to the next refill only", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = []string{"long_winter"} // -1 next hand, +1 vp
		p.Bank = Bank{}
		p.Bank.Add(Plasma, 1)

		require.NoError(t, Apply(g, 0, Action{Kind: ActionPlayActive, CardID: "long_winter"}))
		require.Equal(t, -1, g.HandSizeDelta[0])
		require.Equal(t, 1, p.VP)

		g.EndRound()
		g.StartRound()
		require.Len(t, p.Hand, g.Config.HandSize-1)
		require.Zero(t, g.HandSizeDelta[0], "delta is consumed by the refill")

		g.EndRound()
		g.StartRound()
		require.Len(t, p.Hand, g.Config.HandSize)
	})
}

func TestPeekKeep(t *testing.T) {
	t.Run("keeps the better of the top two", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = []string{"owl_keeper"}
		p.Bank = Bank{}
		p.Bank.Add(Plasma, 1)
		p.Bank.Add(Shards, 1)
		p.Deck = []string{ResourceToken(Plasma), "crow_scout"}
		p.Discard = nil

		require.NoError(t, Apply(g, 0, Action{Kind: ActionPlayActive, CardID: "owl_keeper"}))

		require.Equal(t, []string{"crow_scout"}, p.Hand, "library card beats a resource token")
		require.Equal(t, []string{"owl_keeper", ResourceToken(Plasma)}, p.Discard)
		require.Empty(t, p.Deck)
	})

	t.Run("vp token beats a resource token", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = []string{"owl_keeper"}
		p.Bank = Bank{}
		p.Bank.Add(Plasma, 1)
		p.Bank.Add(Shards, 1)
		p.Deck = []string{ResourceToken(Ash), VPToken(1)}
		p.Discard = nil

		require.NoError(t, Apply(g, 0, Action{Kind: ActionPlayActive, CardID: "owl_keeper"}))

		require.Equal(t, []string{VPToken(1)}, p.Hand)
	})

	t.Run("single remaining card is simply kept", func(t *testing.T) {
		g := newTestGame(t)
		p := g.Players[0]
		p.Hand = []string{"owl_keeper"}
		p.Bank = Bank{}
		p.Bank.Add(Plasma, 1)
		p.Bank.Add(Shards, 1)
		p.Deck = []string{"rat_forager"}
		p.Discard = nil

		require.NoError(t, Apply(g, 0, Action{Kind: ActionPlayActive, CardID: "owl_keeper"}))

		require.Equal(t, []string{"rat_forager"}, p.Hand)
	})
}

func TestUnknownEffectTag(t *testing.T) {
	cat := NewCatalog([]CardDef{
		{
			ID: "odd_relic", Name: "Odd Relic", Type: TypeWild,
			BuyCost: Bank{Plasma: 1}, PlayCost: Bank{Plasma: 1},
			CanPlayOnMat: true,
			Effects:      ParseEffects("frobnicate:3"),
		},
	})
	g, err := NewGame(DefaultConfig(), cat, "test-game")
	require.NoError(t, err)

	p := g.Players[0]
	p.Hand = []string{"odd_relic"}
	p.Bank = Bank{}
	p.Bank.Add(Plasma, 1)

	require.NoError(t, Apply(g, 0, Action{Kind: ActionPlayActive, CardID: "odd_relic"}))

	require.True(t, p.Bank.IsZero())
	require.Zero(t, p.VP)
	require.Equal(t, []string{"odd_relic"}, p.Discard, "unknown tags resolve as no-ops")
}
