// Package searcher implements the decision bots: a heuristic greedy policy
// and an MCTS bot that reuses the greedy policy for rollouts.
package searcher

import (
	"scarecrovv/game"
)

// Greedy scores every legal action with a fixed heuristic and picks the
// argmax. Ties keep the earliest enumerated action; the enumeration order
// of game.LegalActions is the declared priority order. The same scorer is
// the rollout policy inside MCTS.
type Greedy struct {
	// Explore is the ε-greedy exploration rate. Exploration draws come
	// from the game's own RNG, so runs stay reproducible per seed.
	Explore float64
}

func NewGreedy(explore float64) *Greedy { return &Greedy{Explore: explore} }

func (b *Greedy) ChooseAction(g *game.GameState, seat int) game.Action {
	acts := game.LegalActions(g, seat)
	if len(acts) == 0 {
		return game.Pass
	}

	if b.Explore > 0 && g.RNG().Float64() < b.Explore {
		var guided []game.Action
		for _, a := range acts {
			if a.Kind != game.ActionPass {
				guided = append(guided, a)
			}
		}
		if len(guided) > 0 {
			return guided[g.RNG().Intn(len(guided))]
		}
		return acts[g.RNG().Intn(len(acts))]
	}

	best := acts[0]
	bestScore := b.Score(g, seat, acts[0])
	for _, a := range acts[1:] {
		if s := b.Score(g, seat, a); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

// Score rates a single legal action for the seat. Higher is better.
func (b *Greedy) Score(g *game.GameState, seat int, a game.Action) float64 {
	late := g.Round > g.Config.LateRoundThreshold

	switch a.Kind {
	case game.ActionPlayActive, game.ActionPlayToMat:
		return b.scorePlay(g, seat, a)

	case game.ActionBuyPool:
		return b.scoreBuy(g, seat, a.CardID)

	case game.ActionBuyVP:
		base := map[int]float64{1: 0.6, 3: 1.2}[a.VPValue]
		if base == 0 {
			base = 0.5
		}
		if !late {
			base *= 0.8
		}
		return base

	case game.ActionPlaceWorker:
		return b.scoreWorker(g, seat, a.Field, late)

	default: // pass
		return -1.0
	}
}

func (b *Greedy) scorePlay(g *game.GameState, seat int, a game.Action) float64 {
	p := g.Players[seat]
	handRelief := 0.0
	if g.HandSize(seat) >= g.Config.BigHandThreshold {
		handRelief = 0.25
	}

	if value, ok := game.ParseVPToken(a.CardID); ok {
		bonus := 0
		if p.Mat[1] != "" {
			bonus = 2
		}
		base := float64(value + bonus)
		// Hold VP plays until the engine can afford them without stalling.
		if g.EngineStrength(seat) >= float64(value) {
			return 3.0*base + 0.6*handRelief
		}
		return 0.3*base + 0.6*handRelief
	}

	c := g.Catalog.Card(a.CardID)
	if c == nil {
		return 0.6 * handRelief
	}

	toMat := a.Kind == game.ActionPlayToMat
	vpNow, vpFuture := b.expectedVP(g, seat, c, toMat)
	syn := b.synergy(g, seat, c, toMat)
	matPref := 0.0
	if toMat && p.MatFree() > 0 {
		matPref = 1.0
	}
	res := -float64(game.DiscountedCost(g, seat, c).Total())

	return 3.0*vpNow + 1.5*vpFuture + 1.0*syn + 0.6*handRelief + 0.4*matPref + 0.2*res
}

func (b *Greedy) expectedVP(g *game.GameState, seat int, c *game.CardDef, toMat bool) (now, future float64) {
	if toMat {
		now += float64(c.MatPoints)
		if c.MatPoints > 0 {
			future += 0.6 // persistent board value
		}
	}
	switch c.Type {
	case game.TypeFarm, game.TypeCritter, game.TypeWild:
		future += 0.2
	}
	if c.Domain != "" {
		future += 0.2
	}
	if c.HasEffect(game.EffectGainVP) {
		now += 1.0
	}
	if !toMat && c.HasEffect(game.EffectPeekKeep) {
		future += 0.5 // improves deck quality
	}
	return now, future
}

func (b *Greedy) synergy(g *game.GameState, seat int, c *game.CardDef, toMat bool) float64 {
	bonus := 0.0
	if toMat && g.DiscountApplies(seat, c) {
		bonus += 0.6
	}
	if g.MatTypes(seat)[c.Type] {
		bonus += 0.3
	}
	if c.Domain != "" && g.MatDomains(seat)[c.Domain] {
		bonus += 0.3
	}
	return bonus
}

func (b *Greedy) scoreBuy(g *game.GameState, seat int, id string) float64 {
	c := g.Catalog.Card(id)
	if c == nil {
		return 0.1
	}
	score := 0.0
	if g.MatTypes(seat)[c.Type] {
		score += 1.5
	}
	if c.Domain != "" && g.MatDomains(seat)[c.Domain] {
		score += 1.5
	}
	if c.HasEffect(game.EffectDraw) {
		score += 1.0
	}
	if c.MatPoints > 0 {
		score += 1.2
	}

	// Discourage mat-only value when the mat is already full.
	if c.MatPoints > 0 && g.Players[seat].MatFree() == 0 {
		score -= 0.6
	}
	if score > 0 {
		score += 0.2 // plausibly playable later
	}
	return 0.7 * score
}

func (b *Greedy) scoreWorker(g *game.GameState, seat int, f game.Field, late bool) float64 {
	if f == game.FieldInitiative {
		return b.initiativeDesire(g, seat)
	}

	base := map[game.Field]float64{
		game.FieldRookery: 1.6, // card draw = tempo
		game.FieldPlasma:  1.3,
		game.FieldAsh:     1.1,
		game.FieldShards:  1.1,
		game.FieldForage:  1.0,
		game.FieldCompost: 0.9,
	}[f]
	if base == 0 {
		base = 0.8
	}

	need := g.CheapestNeed(seat)
	boost := 0.0
	switch f {
	case game.FieldPlasma:
		boost = 0.9 * float64(need.Get(game.Plasma))
	case game.FieldAsh:
		boost = 0.8 * float64(need.Get(game.Ash))
	case game.FieldShards:
		boost = 0.8 * float64(need.Get(game.Shards))
	case game.FieldForage:
		boost = 0.5 * float64(need.Get(game.Nut)+need.Get(game.Berry)+need.Get(game.Mushroom))
	}

	if late {
		switch f {
		case game.FieldPlasma, game.FieldAsh, game.FieldShards, game.FieldForage:
			base *= 0.9
		}
	}
	return base + boost
}

// initiativeDesire values claiming next round's start seat: worth more the
// further the seat sits from first, and late in the game.
func (b *Greedy) initiativeDesire(g *game.GameState, seat int) float64 {
	n := len(g.Players)
	dist := 1.0
	for i, s := range g.TurnOrder {
		if s == seat {
			if n > 1 {
				dist = float64(i) / float64(n-1)
			} else {
				dist = 0
			}
			break
		}
	}

	alreadyFirst := 1.0
	if dist == 0 {
		alreadyFirst = 0.15
	}
	lateBonus := 0.2
	if g.Round > g.Config.LateRoundThreshold {
		lateBonus = 0.6
	}
	workerPenalty := 0.0
	if g.Players[seat].Workers <= 1 {
		workerPenalty = 0.6
	}

	return (1.5*dist + lateBonus - workerPenalty) * alreadyFirst * g.Config.InitiativeBias
}
