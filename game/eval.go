package game

// Shared heuristics consumed by both the greedy policy and the search
// bot's rollout values, so the two never drift apart.

// EngineStrength estimates a seat's resource and board development:
// banked plasma, half the banked ash and shards, hand size and mat
// occupancy. Bots use it to time VP plays and to value rollout endpoints.
func (g *GameState) EngineStrength(seat int) float64 {
	p := g.Players[seat]
	return float64(p.Bank.Get(Plasma)) +
		0.5*float64(p.Bank.Get(Ash)+p.Bank.Get(Shards)) +
		float64(len(p.Hand)) +
		float64(p.MatCount())
}

// MatTypes returns the card types currently on the seat's mat.
func (g *GameState) MatTypes(seat int) map[CardType]bool {
	out := make(map[CardType]bool)
	p := g.Players[seat]
	for s := 1; s <= MatSlots; s++ {
		if c := g.Catalog.Card(p.Mat[s]); c != nil {
			out[c.Type] = true
		}
	}
	return out
}

// MatDomains returns the domains currently on the seat's mat.
func (g *GameState) MatDomains(seat int) map[string]bool {
	out := make(map[string]bool)
	p := g.Players[seat]
	for s := 1; s <= MatSlots; s++ {
		if c := g.Catalog.Card(p.Mat[s]); c != nil && c.Domain != "" {
			out[c.Domain] = true
		}
	}
	return out
}

// CheapestNeed scans the seat's hand and returns the smallest per-resource
// shortfall that would let some library card be played. Worker scoring
// boosts the fields that pay down this shortfall.
func (g *GameState) CheapestNeed(seat int) Bank {
	p := g.Players[seat]
	var best Bank
	found := false

	for _, id := range p.Hand {
		c := g.Catalog.Card(id)
		if c == nil {
			continue
		}
		var need Bank
		cost := DiscountedCost(g, seat, c)
		for _, r := range Resources {
			if short := cost.Get(r) - g.available(p, r); short > 0 {
				need.Add(r, short)
			}
		}
		if !found || need.Total() < best.Total() {
			best = need
			found = true
		}
	}
	return best
}

// HandSize returns the seat's current hand size.
func (g *GameState) HandSize(seat int) int { return len(g.Players[seat].Hand) }

// DiscountApplies reports whether the seat's mat currently discounts the
// card's play cost.
func (g *GameState) DiscountApplies(seat int, c *CardDef) bool {
	return DiscountedCost(g, seat, c).Total() < c.PlayCost.Total()
}
