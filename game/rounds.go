package game

// StartRound resets field occupancy and worker counts, grants the round's
// plasma income, refills hands and fixes the actor order for the round.
func (g *GameState) StartRound() {
	n := len(g.Players)
	g.TurnOrder = g.TurnOrder[:0]
	for i := 0; i < n; i++ {
		g.TurnOrder = append(g.TurnOrder, (g.StartSeat+i)%n)
	}
	g.CurrentSeat = g.TurnOrder[0]
	g.Log.Emit(Event{Type: EventTurnOrder, Round: g.Round, Seat: g.StartSeat, Order: append([]int(nil), g.TurnOrder...)})

	for _, f := range AllFields {
		g.FieldOccupancy[f] = 0
	}
	for i := range g.Passed {
		g.Passed[i] = false
	}
	g.ActionsLeft = g.Config.ActionsPerTurn

	for seat, p := range g.Players {
		p.Workers = g.Config.WorkersPerRound
		p.Bank.Add(Plasma, 1)
		g.drawToHandSize(p, g.Config.HandSize+g.HandSizeDelta[seat])
		g.HandSizeDelta[seat] = 0
	}

	g.Log.Emit(Event{Type: EventStartRound, Round: g.Round, Seat: g.StartSeat})
}

// EndRound discards every hand, hands initiative to the claiming seat for
// the next round and clears the round-scoped modifiers. Hands are refilled
// by the next StartRound.
func (g *GameState) EndRound() {
	if g.InitiativeSeat >= 0 {
		g.StartSeat = g.InitiativeSeat
		g.InitiativeSeat = -1
	}

	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			p.Discard = append(p.Discard, p.Hand...)
			p.Hand = p.Hand[:0]
		}
	}

	g.ForageBonus = 0
	g.DecreeClaimed = false
	for i := range g.DomainsPlayed {
		g.DomainsPlayed[i] = make(map[string]bool)
	}
	g.Round++
	g.Log.Emit(Event{Type: EventEndRound, Round: g.Round, Seat: g.StartSeat})
}

// VictoryWinner returns the first seat at or above the VP threshold, in
// current turn order, or -1.
func (g *GameState) VictoryWinner() int {
	order := g.TurnOrder
	if len(order) == 0 {
		order = make([]int, len(g.Players))
		for i := range order {
			order[i] = i
		}
	}
	for _, seat := range order {
		if g.Players[seat].VP >= g.Config.VictoryVP {
			return seat
		}
	}
	return -1
}

// WinnerByPoints resolves a capped game: highest VP, then highest banked
// plasma, then uniformly at random among the remaining ties.
func (g *GameState) WinnerByPoints() int {
	bestVP := -1
	for _, p := range g.Players {
		if p.VP > bestVP {
			bestVP = p.VP
		}
	}
	var tied []int
	for seat, p := range g.Players {
		if p.VP == bestVP {
			tied = append(tied, seat)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}

	bestPlasma := -1
	for _, seat := range tied {
		if n := g.Players[seat].Bank.Get(Plasma); n > bestPlasma {
			bestPlasma = n
		}
	}
	var tied2 []int
	for _, seat := range tied {
		if g.Players[seat].Bank.Get(Plasma) == bestPlasma {
			tied2 = append(tied2, seat)
		}
	}
	if len(tied2) == 1 {
		return tied2[0]
	}
	return tied2[g.rng.Intn(len(tied2))]
}

// AllPassed reports whether every seat has passed this round.
func (g *GameState) AllPassed() bool {
	for _, passed := range g.Passed {
		if !passed {
			return false
		}
	}
	return true
}

// AdvanceSeat moves the actor pointer to the next seat in round order that
// has not passed, and resets the action budget. With every seat passed it
// leaves the pointer unchanged; the round is over.
func (g *GameState) AdvanceSeat() {
	n := len(g.TurnOrder)
	if n == 0 {
		return
	}
	idx := 0
	for i, seat := range g.TurnOrder {
		if seat == g.CurrentSeat {
			idx = i
			break
		}
	}
	for step := 1; step <= n; step++ {
		next := g.TurnOrder[(idx+step)%n]
		if !g.Passed[next] {
			g.CurrentSeat = next
			g.ActionsLeft = g.Config.ActionsPerTurn
			return
		}
	}
}
