package game

import "fmt"

// ActionKind discriminates the action variants.
type ActionKind int

const (
	ActionPass ActionKind = iota
	ActionPlayActive
	ActionPlayToMat
	ActionBuyPool
	ActionBuyVP
	ActionPlaceWorker
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlayActive:
		return "play"
	case ActionPlayToMat:
		return "play_to_mat"
	case ActionBuyPool:
		return "buy_pool"
	case ActionBuyVP:
		return "buy_vp"
	case ActionPlaceWorker:
		return "place_worker"
	default:
		return "pass"
	}
}

// Action is one decision a seat can take. It is a comparable value so bots
// can key rollout statistics by it.
type Action struct {
	Kind    ActionKind
	CardID  string // PlayActive, PlayToMat, BuyPool
	Slot    int    // PlayToMat
	VPValue int    // BuyVP
	Field   Field  // PlaceWorker
}

// Pass is the always-legal no-op action.
var Pass = Action{Kind: ActionPass}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlayActive:
		return fmt.Sprintf("play(%s)", a.CardID)
	case ActionPlayToMat:
		return fmt.Sprintf("play_to_mat(%s,slot=%d)", a.CardID, a.Slot)
	case ActionBuyPool:
		return fmt.Sprintf("buy_pool(%s)", a.CardID)
	case ActionBuyVP:
		return fmt.Sprintf("buy_vp(%d)", a.VPValue)
	case ActionPlaceWorker:
		return fmt.Sprintf("place_worker(%s)", a.Field)
	default:
		return "pass"
	}
}

// LegalActions enumerates every legal action for the seat, in a stable
// order: hand plays, pool buys, VP-pile buys, worker placements, pass.
// The order doubles as the tie-break priority for bots.
func LegalActions(g *GameState, seat int) []Action {
	p := g.Players[seat]
	var acts []Action

	seen := make(map[string]bool, len(p.Hand))
	for _, id := range p.Hand {
		if seen[id] {
			continue
		}
		seen[id] = true

		if value, ok := ParseVPToken(id); ok {
			// Values without a configured play cost are free to play.
			if g.canPayVP(p, g.vpPlay[value]) {
				acts = append(acts, Action{Kind: ActionPlayActive, CardID: id})
			}
			continue
		}
		c := g.Catalog.Card(id)
		if c == nil {
			continue // resource tokens are spent during payment, not played
		}
		if !g.canPay(p, DiscountedCost(g, seat, c)) {
			continue
		}
		acts = append(acts, Action{Kind: ActionPlayActive, CardID: id})
		if c.CanPlayOnMat {
			for slot := 1; slot <= MatSlots; slot++ {
				if p.Mat[slot] == "" {
					acts = append(acts, Action{Kind: ActionPlayToMat, CardID: id, Slot: slot})
				}
			}
		}
	}

	seenPool := make(map[string]bool, len(g.Pool))
	for _, id := range g.Pool {
		if seenPool[id] {
			continue
		}
		seenPool[id] = true
		c := g.Catalog.Card(id)
		if c != nil && g.canPay(p, c.BuyCost) {
			acts = append(acts, Action{Kind: ActionBuyPool, CardID: id})
		}
	}

	for _, value := range []int{1, 3} {
		if cost, ok := g.Config.VPBuyCost[value]; ok && g.available(p, Plasma) >= cost {
			acts = append(acts, Action{Kind: ActionBuyVP, VPValue: value})
		}
	}

	if p.Workers > 0 {
		for _, f := range AllFields {
			if g.FieldOccupancy[f] < g.FieldCapacity[f] {
				acts = append(acts, Action{Kind: ActionPlaceWorker, Field: f})
			}
		}
	}

	acts = append(acts, Pass)
	return acts
}

// IsLegal reports whether the action would pass every legality check.
func IsLegal(g *GameState, seat int, a Action) bool {
	return check(g, seat, a) == nil
}

// check validates an action fully, without mutating anything. Apply runs it
// before touching state, which keeps every application all-or-nothing.
func check(g *GameState, seat int, a Action) error {
	if seat < 0 || seat >= len(g.Players) {
		return fmt.Errorf("%w: no seat %d", ErrIllegalAction, seat)
	}
	p := g.Players[seat]

	switch a.Kind {
	case ActionPass:
		return nil

	case ActionPlayActive, ActionPlayToMat:
		if handIndex(p, a.CardID) < 0 {
			return fmt.Errorf("%w: %s not in hand", ErrIllegalAction, a.CardID)
		}
		if value, ok := ParseVPToken(a.CardID); ok {
			if a.Kind == ActionPlayToMat {
				return fmt.Errorf("%w: VP tokens never occupy mat slots", ErrIllegalAction)
			}
			if !g.canPayVP(p, g.vpPlay[value]) {
				return fmt.Errorf("%w: cannot pay VP:%d play cost", ErrIllegalAction, value)
			}
			return nil
		}
		c := g.Catalog.Card(a.CardID)
		if c == nil {
			return fmt.Errorf("%w: %s is not playable", ErrIllegalAction, a.CardID)
		}
		if a.Kind == ActionPlayToMat {
			if !c.CanPlayOnMat {
				return fmt.Errorf("%w: %s cannot be played to the mat", ErrIllegalAction, c.ID)
			}
			if a.Slot < 1 || a.Slot > MatSlots {
				return fmt.Errorf("%w: mat slot %d out of range", ErrIllegalAction, a.Slot)
			}
			if p.Mat[a.Slot] != "" {
				return fmt.Errorf("%w: mat slot %d occupied", ErrIllegalAction, a.Slot)
			}
		}
		if !g.canPay(p, DiscountedCost(g, seat, c)) {
			return fmt.Errorf("%w: cannot pay play cost of %s", ErrIllegalAction, c.ID)
		}
		return nil

	case ActionBuyPool:
		if !contains(g.Pool, a.CardID) {
			return fmt.Errorf("%w: %s not in pool", ErrIllegalAction, a.CardID)
		}
		c := g.Catalog.Card(a.CardID)
		if c == nil {
			return fmt.Errorf("%w: %s not in catalog", ErrIllegalAction, a.CardID)
		}
		if !g.canPay(p, c.BuyCost) {
			return fmt.Errorf("%w: cannot pay buy cost of %s", ErrIllegalAction, c.ID)
		}
		return nil

	case ActionBuyVP:
		cost, ok := g.Config.VPBuyCost[a.VPValue]
		if !ok {
			return fmt.Errorf("%w: no VP:%d pile", ErrIllegalAction, a.VPValue)
		}
		if g.available(p, Plasma) < cost {
			return fmt.Errorf("%w: cannot pay VP:%d buy cost", ErrIllegalAction, a.VPValue)
		}
		return nil

	case ActionPlaceWorker:
		if p.Workers <= 0 {
			return fmt.Errorf("%w: no workers left", ErrIllegalAction)
		}
		capacity, ok := g.FieldCapacity[a.Field]
		if !ok {
			return fmt.Errorf("%w: unknown field %q", ErrIllegalAction, a.Field)
		}
		if g.FieldOccupancy[a.Field] >= capacity {
			return fmt.Errorf("%w: field %q full", ErrIllegalAction, a.Field)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrIllegalAction, a.Kind)
	}
}

// Apply validates and then applies the action, mutating the state and
// emitting events. On ErrIllegalAction the state is untouched.
func Apply(g *GameState, seat int, a Action) error {
	if err := check(g, seat, a); err != nil {
		return err
	}
	p := g.Players[seat]

	switch a.Kind {
	case ActionPass:
		g.Log.Emit(Event{Type: EventPass, Round: g.Round, Seat: seat})

	case ActionPlayActive, ActionPlayToMat:
		g.applyPlay(seat, a)

	case ActionBuyPool:
		c := g.Catalog.Card(a.CardID)
		g.pay(p, c.BuyCost)
		g.removeFromPool(a.CardID)
		p.Discard = append(p.Discard, c.ID)
		g.refillPool()
		g.Log.Emit(Event{Type: EventBuy, Round: g.Round, Seat: seat, Card: c.ID, Amount: c.BuyCost.Total()})

	case ActionBuyVP:
		cost := g.Config.VPBuyCost[a.VPValue]
		var b Bank
		b.Add(Plasma, cost)
		g.pay(p, b)
		p.Discard = append(p.Discard, VPToken(a.VPValue))
		g.Log.Emit(Event{Type: EventBuyVP, Round: g.Round, Seat: seat, Card: VPToken(a.VPValue), Amount: cost})

	case ActionPlaceWorker:
		g.applyWorker(seat, a.Field)
	}
	return nil
}

func (g *GameState) applyPlay(seat int, a Action) {
	p := g.Players[seat]

	if value, ok := ParseVPToken(a.CardID); ok {
		cost := g.vpPlay[value]
		// Remove the token first so paid hand tokens cannot shift it.
		p.Hand = removeOne(p.Hand, a.CardID)
		g.pay(p, cost.fixed)
		g.payChoice(p, cost.choice)

		bonus := 0
		if p.Mat[1] != "" {
			bonus = 2
		}
		p.VP += value + bonus
		p.Discard = append(p.Discard, a.CardID)
		g.Log.Emit(Event{
			Type: EventPlayVP, Round: g.Round, Seat: seat, Card: a.CardID,
			Amount: value, Bonus: bonus, Total: p.VP,
		})
		return
	}

	c := g.Catalog.Card(a.CardID)
	p.Hand = removeOne(p.Hand, c.ID)
	g.pay(p, DiscountedCost(g, seat, c))

	toMat := a.Kind == ActionPlayToMat
	if toMat {
		p.Mat[a.Slot] = c.ID
		if a.Slot == 3 && len(p.Hand) > 0 {
			// Slot 3 trigger: compost one other card, oldest first. The
			// played card is already off-hand, so index 0 is another card.
			g.Compost(seat, 0, "slot3")
		}
	} else {
		p.Discard = append(p.Discard, c.ID)
	}

	if _, ok := p.FirstPlay[c.ID]; !ok {
		p.FirstPlay[c.ID] = g.Round
	}
	g.Log.Emit(Event{
		Type: EventPlayCard, Round: g.Round, Seat: seat, Card: c.ID,
		ToMat: toMat, Slot: a.Slot,
	})

	// The card's own effects resolve for both modes, after the slot trigger.
	g.resolveEffects(seat, c)

	if c.Domain != "" {
		g.DomainsPlayed[seat][c.Domain] = true
		if !g.DecreeClaimed && len(g.DomainsPlayed[seat]) >= 3 {
			g.DecreeClaimed = true
			p.VP += 2
			g.Log.Emit(Event{Type: EventDecree, Round: g.Round, Seat: seat, Amount: 2, Total: p.VP})
		}
	}
}

func (g *GameState) applyWorker(seat int, f Field) {
	p := g.Players[seat]

	switch f {
	case FieldPlasma:
		p.Bank.Add(Plasma, 1)
	case FieldAsh:
		p.Bank.Add(Ash, 1)
	case FieldShards:
		p.Bank.Add(Shards, 1)
	case FieldForage:
		p.Bank.Add(g.scarcestForage(p), 1+g.ForageBonus)
	case FieldRookery:
		g.draw(p, 1)
	case FieldCompost:
		if len(p.Hand) > 0 {
			g.Compost(seat, 0, "compost_field")
		}
	case FieldInitiative:
		if g.InitiativeSeat < 0 {
			g.InitiativeSeat = seat
			g.Log.Emit(Event{Type: EventInitiative, Round: g.Round, Seat: seat, Field: string(f)})
		}
	}

	p.Workers--
	g.FieldOccupancy[f]++
	p.Visits[f]++
	g.Log.Emit(Event{Type: EventPlaceWorker, Round: g.Round, Seat: seat, Field: string(f)})
}

// scarcestForage picks the forage yield the seat holds least of, ties in
// nut/berry/mushroom order.
func (g *GameState) scarcestForage(p *Player) Resource {
	best := Nut
	for _, r := range []Resource{Berry, Mushroom} {
		if p.Bank.Get(r) < p.Bank.Get(best) {
			best = r
		}
	}
	return best
}

// DiscountedCost applies the mat-slot discount to the card's play cost:
// slot 2 matches its own card's type, slots 4/5/6 match Critter/Farm/Wild.
// At most one aggregate point comes off regardless of qualifying slots, and
// buy costs are never discounted.
func DiscountedCost(g *GameState, seat int, c *CardDef) Bank {
	p := g.Players[seat]
	qualifies := false
	if lockID := p.Mat[2]; lockID != "" {
		if lock := g.Catalog.Card(lockID); lock != nil && lock.Type == c.Type {
			qualifies = true
		}
	}
	if p.Mat[4] != "" && c.Type == TypeCritter {
		qualifies = true
	}
	if p.Mat[5] != "" && c.Type == TypeFarm {
		qualifies = true
	}
	if p.Mat[6] != "" && c.Type == TypeWild {
		qualifies = true
	}

	cost := c.PlayCost
	if qualifies {
		for _, r := range Resources {
			if cost.Get(r) > 0 {
				cost.Add(r, -1)
				break
			}
		}
	}
	return cost
}

// Payment. A cost may be satisfied per resource kind from the banked
// counters and/or matching RES tokens in hand; tokens are spent first.
// Spent tokens permanently leave the game.

func (g *GameState) available(p *Player, r Resource) int {
	return p.Bank.Get(r) + countTokens(p.Hand, r)
}

func (g *GameState) canPay(p *Player, cost Bank) bool {
	for _, r := range Resources {
		if g.available(p, r) < cost.Get(r) {
			return false
		}
	}
	return true
}

func (g *GameState) canPayVP(p *Player, cost vpCost) bool {
	if !g.canPay(p, cost.fixed) {
		return false
	}
	if len(cost.choice) == 0 {
		return true
	}
	for _, r := range cost.choice {
		if g.available(p, r) > cost.fixed.Get(r) {
			return true
		}
	}
	return false
}

func (g *GameState) pay(p *Player, cost Bank) {
	for _, r := range Resources {
		need := cost.Get(r)
		if need == 0 {
			continue
		}
		token := ResourceToken(r)
		for need > 0 && contains(p.Hand, token) {
			p.Hand = removeOne(p.Hand, token)
			g.Composted = append(g.Composted, token)
			need--
		}
		if need > 0 {
			p.Bank.Add(r, -need)
		}
	}
}

// payChoice settles the one-of component of a VP play cost, preferring the
// resource with the most hand tokens, then the most total availability.
func (g *GameState) payChoice(p *Player, choice []Resource) {
	if len(choice) == 0 {
		return
	}
	best := -1
	bestTokens, bestAvail := -1, -1
	for i, r := range choice {
		avail := g.available(p, r)
		if avail < 1 {
			continue
		}
		tokens := countTokens(p.Hand, r)
		if tokens > bestTokens || (tokens == bestTokens && avail > bestAvail) {
			best, bestTokens, bestAvail = i, tokens, avail
		}
	}
	if best < 0 {
		return
	}
	var one Bank
	one.Add(choice[best], 1)
	g.pay(p, one)
}

func countTokens(hand []string, r Resource) int {
	token := ResourceToken(r)
	n := 0
	for _, id := range hand {
		if id == token {
			n++
		}
	}
	return n
}

func handIndex(p *Player, id string) int {
	for i, h := range p.Hand {
		if h == id {
			return i
		}
	}
	return -1
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func removeOne(ids []string, id string) []string {
	for i, x := range ids {
		if x == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (g *GameState) removeFromPool(id string) {
	g.Pool = removeOne(g.Pool, id)
}
