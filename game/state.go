package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Field is a worker-placement location.
type Field string

const (
	FieldPlasma     Field = "plasma"
	FieldAsh        Field = "ash"
	FieldShards     Field = "shards"
	FieldForage     Field = "forage"
	FieldRookery    Field = "rookery"
	FieldCompost    Field = "compost"
	FieldInitiative Field = "initiative"
)

// AllFields lists the fields in enumeration order. LegalActions and the
// summaries depend on this order being stable.
var AllFields = []Field{
	FieldPlasma, FieldAsh, FieldShards, FieldForage,
	FieldRookery, FieldCompost, FieldInitiative,
}

func fieldByName(name string) (Field, bool) {
	for _, f := range AllFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// MatSlots is the number of slots on a seat's persistent mat.
const MatSlots = 6

// Player is one seat's private state. Every zone is owned exclusively by
// the seat; Clone produces fully independent copies.
type Player struct {
	Seat    int
	Deck    []string // front = next draw
	Hand    []string
	Discard []string
	Mat     [MatSlots + 1]string // 1-based; "" = empty
	Bank    Bank
	Workers int
	VP      int

	// Telemetry.
	FirstPlay map[string]int // card id -> round of first play
	Visits    map[Field]int
}

func (p *Player) clone() *Player {
	c := *p
	c.Deck = append([]string(nil), p.Deck...)
	c.Hand = append([]string(nil), p.Hand...)
	c.Discard = append([]string(nil), p.Discard...)
	c.FirstPlay = make(map[string]int, len(p.FirstPlay))
	for k, v := range p.FirstPlay {
		c.FirstPlay[k] = v
	}
	c.Visits = make(map[Field]int, len(p.Visits))
	for k, v := range p.Visits {
		c.Visits[k] = v
	}
	return &c
}

// MatCount returns the number of occupied mat slots.
func (p *Player) MatCount() int {
	n := 0
	for s := 1; s <= MatSlots; s++ {
		if p.Mat[s] != "" {
			n++
		}
	}
	return n
}

// MatFree returns the number of empty mat slots.
func (p *Player) MatFree() int { return MatSlots - p.MatCount() }

type vpCost struct {
	fixed  Bank
	choice []Resource
}

// GameState is the full mutable state of one simulated game. Catalog and
// Config are shared immutable references; everything else is owned by this
// state and deep-copied by Clone.
type GameState struct {
	Config  *Config
	Catalog *Catalog
	GameID  string

	Round       int
	CurrentSeat int
	StartSeat   int
	TurnOrder   []int
	Passed      []bool
	ActionsLeft int

	InitiativeSeat int // -1 = unclaimed this round

	Players     []*Player
	Supply      []string
	Pool        []string
	PoolDiscard []string
	Composted   []string // permanently removed from the game

	FieldCapacity  map[Field]int
	FieldOccupancy map[Field]int

	// Round-scoped modifiers set by global effects.
	ForageBonus   int
	HandSizeDelta []int // per seat, applied to next round's refill

	// Decree: the first seat to play cards from three distinct domains in
	// a round scores a bonus, once per round.
	DecreeClaimed bool
	DomainsPlayed []map[string]bool // per seat, cleared each round

	Winner    int // -1 until decided
	WinReason string
	Terminal  bool

	Log *EventLog

	vpPlay map[int]vpCost

	// RNG state is owned by the state so clones fork it by value and
	// replay identically.
	src rand.PCGSource
	rng *rand.Rand
}

// NewGame builds a fresh game from config and catalog: supply, market pool,
// starting decks and opening hands.
func NewGame(cfg Config, cat *Catalog, gameID string) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrBadConfig)
	}

	g := &GameState{
		Config:         &cfg,
		Catalog:        cat,
		GameID:         gameID,
		InitiativeSeat: -1,
		Winner:         -1,
		FieldCapacity:  make(map[Field]int, len(AllFields)),
		FieldOccupancy: make(map[Field]int, len(AllFields)),
		HandSizeDelta:  make([]int, cfg.Players),
		DomainsPlayed:  make([]map[string]bool, cfg.Players),
		Passed:         make([]bool, cfg.Players),
		Log:            NewEventLog(gameID),
	}
	g.src.Seed(cfg.Seed)
	g.rng = rand.New(&g.src)

	for _, f := range AllFields {
		capacity := 1
		if c, ok := cfg.FieldCapacity[string(f)]; ok {
			capacity = c
		}
		g.FieldCapacity[f] = capacity
		g.FieldOccupancy[f] = 0
	}

	g.vpPlay = make(map[int]vpCost, len(cfg.VPPlayCosts))
	for value, vc := range cfg.VPPlayCosts {
		var c vpCost
		for name, n := range vc.Fixed {
			res, _ := ParseResource(name)
			c.fixed.Add(res, n)
		}
		for _, name := range vc.ChoiceOneOf {
			res, _ := ParseResource(name)
			c.choice = append(c.choice, res)
		}
		g.vpPlay[value] = c
	}

	// Supply: N copies of each non-global card, shuffled face down.
	for _, id := range cat.IDs() {
		if cat.Card(id).Type == TypeGlobal {
			continue
		}
		for i := 0; i < cfg.CopiesPerUnique; i++ {
			g.Supply = append(g.Supply, id)
		}
	}
	g.shuffle(g.Supply)

	for len(g.Pool) < cfg.PoolSize && len(g.Supply) > 0 {
		g.Pool = append(g.Pool, g.popSupply())
	}

	for seat := 0; seat < cfg.Players; seat++ {
		p := &Player{
			Seat:      seat,
			FirstPlay: make(map[string]int),
			Visits:    make(map[Field]int),
		}
		for i := 0; i < 6; i++ {
			p.Deck = append(p.Deck, ResourceToken(Plasma))
		}
		for i := 0; i < 4; i++ {
			p.Deck = append(p.Deck, VPToken(1))
		}
		g.shuffle(p.Deck)
		g.Players = append(g.Players, p)
		g.DomainsPlayed[seat] = make(map[string]bool)
	}

	g.StartSeat = cfg.StartOffset % cfg.Players
	g.CurrentSeat = g.StartSeat

	for _, p := range g.Players {
		g.draw(p, cfg.HandSize)
		p.Bank.Add(Plasma, 1) // setup income
	}

	g.Log.Emit(Event{Type: EventGameStart, Round: 0, Seat: g.StartSeat, Amount: int(cfg.Seed)})
	return g, nil
}

// RNG exposes the game's random stream for seat-owned randomness such as
// exploration and tie-breaks.
func (g *GameState) RNG() *rand.Rand { return g.rng }

func (g *GameState) shuffle(ids []string) {
	g.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}

func (g *GameState) popSupply() string {
	id := g.Supply[len(g.Supply)-1]
	g.Supply = g.Supply[:len(g.Supply)-1]
	return id
}

// draw moves up to n cards from deck to hand, reshuffling the discard into
// the deck when the deck runs dry. With both empty the draw yields nothing.
func (g *GameState) draw(p *Player, n int) {
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 && len(p.Discard) > 0 {
			g.Log.Emit(Event{Type: EventReshuffle, Round: g.Round, Seat: p.Seat, Amount: len(p.Discard)})
			p.Deck = p.Discard
			p.Discard = nil
			g.shuffle(p.Deck)
		}
		if len(p.Deck) == 0 {
			return
		}
		p.Hand = append(p.Hand, p.Deck[0])
		p.Deck = p.Deck[1:]
	}
}

func (g *GameState) drawToHandSize(p *Player, target int) {
	if need := target - len(p.Hand); need > 0 {
		g.draw(p, need)
	}
}

// refillPool tops the market back up to its target size from the supply.
func (g *GameState) refillPool() {
	for len(g.Pool) < g.Config.PoolSize && len(g.Supply) > 0 {
		g.Pool = append(g.Pool, g.popSupply())
	}
}

// Clone produces a fully independent deep copy for search rollouts. The
// RNG state is copied by value so the clone replays the same stream; the
// event log is not carried over so rollouts never pollute the real record.
func (g *GameState) Clone() *GameState {
	c := *g
	c.rng = rand.New(&c.src)
	c.Log = nil

	c.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		c.Players[i] = p.clone()
	}
	c.TurnOrder = append([]int(nil), g.TurnOrder...)
	c.Passed = append([]bool(nil), g.Passed...)
	c.HandSizeDelta = append([]int(nil), g.HandSizeDelta...)
	c.DomainsPlayed = make([]map[string]bool, len(g.DomainsPlayed))
	for i, domains := range g.DomainsPlayed {
		c.DomainsPlayed[i] = make(map[string]bool, len(domains))
		for d := range domains {
			c.DomainsPlayed[i][d] = true
		}
	}
	c.Supply = append([]string(nil), g.Supply...)
	c.Pool = append([]string(nil), g.Pool...)
	c.PoolDiscard = append([]string(nil), g.PoolDiscard...)
	c.Composted = append([]string(nil), g.Composted...)

	c.FieldCapacity = make(map[Field]int, len(g.FieldCapacity))
	for k, v := range g.FieldCapacity {
		c.FieldCapacity[k] = v
	}
	c.FieldOccupancy = make(map[Field]int, len(g.FieldOccupancy))
	for k, v := range g.FieldOccupancy {
		c.FieldOccupancy[k] = v
	}
	// Config, Catalog and vpPlay are immutable after setup and stay shared.
	return &c
}

// NumPlayers returns the seat count.
func (g *GameState) NumPlayers() int { return len(g.Players) }

// NextSeat returns the seat after the given one in seating order.
func (g *GameState) NextSeat(seat int) int { return (seat + 1) % len(g.Players) }
