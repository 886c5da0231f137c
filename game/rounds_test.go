package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartRound(t *testing.T) {
	g := newTestGame(t)
	g.StartSeat = 1
	g.Players[0].Hand = g.Players[0].Hand[:2]

	g.StartRound()

	require.Equal(t, []int{1, 2, 0}, g.TurnOrder, "order wraps from the start seat")
	require.Equal(t, 1, g.CurrentSeat)
	require.Equal(t, g.Config.ActionsPerTurn, g.ActionsLeft)
	for _, f := range AllFields {
		require.Zero(t, g.FieldOccupancy[f])
	}
	for _, p := range g.Players {
		require.Equal(t, g.Config.WorkersPerRound, p.Workers)
		require.Equal(t, 2, p.Bank.Get(Plasma), "setup income plus round income")
		require.Len(t, p.Hand, g.Config.HandSize)
	}
}

func TestEndRound(t *testing.T) {
	t.Run("initiative hands over the start seat", func(t *testing.T) {
		g := newTestGame(t)
		g.StartRound()
		g.InitiativeSeat = 2

		g.EndRound()

		require.Equal(t, 2, g.StartSeat)
		require.Equal(t, -1, g.InitiativeSeat, "claim resets for the next round")
		require.Equal(t, 1, g.Round)
	})

	t.Run("unclaimed initiative keeps the start seat", func(t *testing.T) {
		g := newTestGame(t)
		g.StartRound()

		g.EndRound()

		require.Zero(t, g.StartSeat)
	})

	t.Run("hands are discarded and round modifiers cleared", func(t *testing.T) {
		g := newTestGame(t)
		g.StartRound()
		g.ForageBonus = 2
		p := g.Players[0]
		held := len(p.Hand)
		require.Positive(t, held)

		g.EndRound()

		require.Empty(t, p.Hand)
		require.Len(t, p.Discard, held)
		require.Zero(t, g.ForageBonus)
	})
}

func TestVictoryWinner(t *testing.T) {
	t.Run("no winner below the threshold", func(t *testing.T) {
		g := newTestGame(t)
		require.Equal(t, -1, g.VictoryWinner())
	})

	t.Run("turn order breaks simultaneous threshold crossings", func(t *testing.T) {
		g := newTestGame(t)
		g.StartSeat = 2
		g.StartRound()
		g.Players[0].VP = g.Config.VictoryVP
		g.Players[2].VP = g.Config.VictoryVP

		require.Equal(t, 2, g.VictoryWinner(), "earlier in round order wins")
	})
}

func TestWinnerByPoints(t *testing.T) {
	t.Run("highest vp wins", func(t *testing.T) {
		g := newTestGame(t)
		g.Players[1].VP = 5
		require.Equal(t, 1, g.WinnerByPoints())
	})

	t.Run("plasma breaks vp ties", func(t *testing.T) {
		g := newTestGame(t)
		g.Players[0].VP = 5
		g.Players[2].VP = 5
		g.Players[2].Bank.Add(Plasma, 3)

		require.Equal(t, 2, g.WinnerByPoints())
	})

	t.Run("full ties resolve to some tied seat", func(t *testing.T) {
		g := newTestGame(t)
		g.Players[0].VP = 5
		g.Players[1].VP = 5

		winner := g.WinnerByPoints()
		require.Contains(t, []int{0, 1}, winner)
	})
}

func TestAdvanceSeat(t *testing.T) {
	g := newTestGame(t)
	g.StartRound()
	require.Equal(t, 0, g.CurrentSeat)

	g.ActionsLeft = 0
	g.AdvanceSeat()
	require.Equal(t, 1, g.CurrentSeat)
	require.Equal(t, g.Config.ActionsPerTurn, g.ActionsLeft, "budget resets for the next actor")

	g.Passed[2] = true
	g.AdvanceSeat()
	require.Equal(t, 0, g.CurrentSeat, "passed seats are skipped")

	g.Passed[0] = true
	g.Passed[1] = true
	g.AdvanceSeat()
	require.Equal(t, 0, g.CurrentSeat, "with everyone passed the pointer stays put")
	require.True(t, g.AllPassed())
}
