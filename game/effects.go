package game

import "github.com/rs/zerolog/log"

// resolveEffects interprets a card's parsed effect tags at play time.
// On-compost tags wait for the compost primitive; unknown tags are no-ops.
func (g *GameState) resolveEffects(seat int, c *CardDef) {
	p := g.Players[seat]
	for _, e := range c.Effects {
		switch e.Kind {
		case EffectDraw:
			g.draw(p, e.Amount)
			g.Log.Emit(Event{Type: EventEffect, Round: g.Round, Seat: seat, Card: c.ID, Reason: e.Raw})
		case EffectGain:
			p.Bank.Add(e.Resource, e.Amount)
			g.Log.Emit(Event{
				Type: EventEffect, Round: g.Round, Seat: seat, Card: c.ID,
				Resource: e.Resource.String(), Amount: e.Amount, Reason: e.Raw,
			})
		case EffectGainVP:
			p.VP += e.Amount
			g.Log.Emit(Event{
				Type: EventEffect, Round: g.Round, Seat: seat, Card: c.ID,
				Amount: e.Amount, Total: p.VP, Reason: e.Raw,
			})
		case EffectPeekKeep:
			g.peekKeep(seat)
			g.Log.Emit(Event{Type: EventEffect, Round: g.Round, Seat: seat, Card: c.ID, Reason: e.Raw})
		case EffectForageBonus:
			g.ForageBonus += e.Amount
			g.Log.Emit(Event{Type: EventEffect, Round: g.Round, Seat: seat, Card: c.ID, Amount: e.Amount, Reason: e.Raw})
		case EffectHandSizeDelta:
			g.HandSizeDelta[seat] += e.Amount
			g.Log.Emit(Event{Type: EventEffect, Round: g.Round, Seat: seat, Card: c.ID, Amount: e.Amount, Reason: e.Raw})
		case EffectOnCompost:
			// Fires when the instance is composted, not when played.
		default:
			log.Debug().Str("card", c.ID).Str("tag", e.Raw).Msg("ignoring unrecognized effect tag")
		}
	}
}

// Compost permanently removes the card at the given hand index and fires
// its on-compost credits. Returns the removed id, or "" if the index is
// out of range.
func (g *GameState) Compost(seat, handIdx int, reason string) string {
	p := g.Players[seat]
	if handIdx < 0 || handIdx >= len(p.Hand) {
		return ""
	}
	id := p.Hand[handIdx]
	p.Hand = append(p.Hand[:handIdx], p.Hand[handIdx+1:]...)
	g.Composted = append(g.Composted, id)

	if c := g.Catalog.Card(id); c != nil {
		if gains := c.CompostGains(); !gains.IsZero() {
			for _, r := range Resources {
				if n := gains.Get(r); n > 0 {
					p.Bank.Add(r, n)
					g.Log.Emit(Event{
						Type: EventCompostGain, Round: g.Round, Seat: seat, Card: id,
						Resource: r.String(), Amount: n, Reason: reason,
					})
				}
			}
		}
	}

	g.Log.Emit(Event{Type: EventCompost, Round: g.Round, Seat: seat, Card: id, Reason: reason})
	return id
}

// peekKeep looks at the top two cards of the deck (reshuffling if needed),
// keeps the better one in hand and discards the other. Library cards beat
// VP tokens beat resource tokens.
func (g *GameState) peekKeep(seat int) {
	p := g.Players[seat]

	var top []string
	for i := 0; i < 2; i++ {
		if len(p.Deck) == 0 && len(p.Discard) > 0 {
			g.Log.Emit(Event{Type: EventReshuffle, Round: g.Round, Seat: seat, Amount: len(p.Discard)})
			p.Deck = p.Discard
			p.Discard = nil
			g.shuffle(p.Deck)
		}
		if len(p.Deck) == 0 {
			break
		}
		top = append(top, p.Deck[0])
		p.Deck = p.Deck[1:]
	}
	if len(top) == 0 {
		return
	}
	if len(top) == 1 {
		p.Hand = append(p.Hand, top[0])
		return
	}

	keep, dump := top[0], top[1]
	if g.peekRank(dump) > g.peekRank(keep) {
		keep, dump = dump, keep
	}
	p.Hand = append(p.Hand, keep)
	p.Discard = append(p.Discard, dump)
}

func (g *GameState) peekRank(id string) int {
	if g.Catalog.Card(id) != nil {
		return 2
	}
	if _, ok := ParseVPToken(id); ok {
		return 1
	}
	return 0
}
