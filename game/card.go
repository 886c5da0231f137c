package game

import (
	"strconv"
	"strings"
)

// Resource is one of the spendable resource kinds.
type Resource int

const (
	Plasma Resource = iota
	Ash
	Shards
	Nut
	Berry
	Mushroom
	numResources
)

var resourceNames = [numResources]string{"plasma", "ash", "shards", "nut", "berry", "mushroom"}

// Resources lists every resource kind in canonical order. Discounts and
// payment walk this order, so it must stay stable.
var Resources = [numResources]Resource{Plasma, Ash, Shards, Nut, Berry, Mushroom}

func (r Resource) String() string {
	if r < 0 || r >= numResources {
		return "unknown"
	}
	return resourceNames[r]
}

func ParseResource(s string) (Resource, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range resourceNames {
		if name == s {
			return Resource(i), true
		}
	}
	return 0, false
}

// Bank maps each resource kind to a non-negative count. It is a fixed-size
// array so that plain assignment is a full, independent copy; GameState
// cloning relies on that.
type Bank [numResources]int

func (b Bank) Get(r Resource) int { return b[r] }

func (b *Bank) Add(r Resource, n int) { b[r] += n }

func (b Bank) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

func (b Bank) IsZero() bool { return b == Bank{} }

// CardType classifies a card for mat-slot discounts and scoring.
type CardType int

const (
	TypeNone CardType = iota
	TypeFarm
	TypeCritter
	TypeWild
	TypeVP
	TypeGlobal
)

func (t CardType) String() string {
	switch t {
	case TypeFarm:
		return "Farm"
	case TypeCritter:
		return "Critter"
	case TypeWild:
		return "Wild"
	case TypeVP:
		return "VP"
	case TypeGlobal:
		return "Global"
	default:
		return "None"
	}
}

func ParseCardType(s string) CardType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "farm":
		return TypeFarm
	case "critter":
		return TypeCritter
	case "wild":
		return TypeWild
	case "vp":
		return TypeVP
	case "global":
		return TypeGlobal
	default:
		return TypeNone
	}
}

// EffectKind enumerates the parsed effect-tag vocabulary. Tags are parsed
// once at catalog load; anything unrecognized becomes EffectUnknown, which
// resolves to a no-op so new card text never breaks the engine.
type EffectKind int

const (
	EffectUnknown       EffectKind = iota
	EffectDraw                     // draw:<n>
	EffectOnCompost                // on_compost:<res>:<n> or if_composted_gain:<res>:<n>
	EffectGain                     // gain:<res>:<n> or self_gain:<res>:<n>
	EffectGainVP                   // vp:<n> or self_vp:<n>
	EffectPeekKeep                 // peek2_keep1
	EffectForageBonus              // forage_yield_bonus_this_round:<n>
	EffectHandSizeDelta            // hand_size_delta_next_round:<n>
)

// Effect is one parsed effect tag.
type Effect struct {
	Kind     EffectKind
	Resource Resource
	Amount   int
	Raw      string
}

// ParseEffects parses a semicolon-separated effect string into the tagged
// vocabulary. Malformed parameters downgrade the tag to EffectUnknown.
func ParseEffects(s string) []Effect {
	var out []Effect
	for _, raw := range strings.Split(s, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		out = append(out, parseEffect(raw))
	}
	return out
}

func parseEffect(raw string) Effect {
	parts := strings.Split(raw, ":")
	key := strings.ToLower(strings.TrimSpace(parts[0]))
	e := Effect{Kind: EffectUnknown, Raw: raw}

	atoi := func(s string) (int, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, "+")))
		return n, err == nil
	}

	switch key {
	case "draw":
		if len(parts) == 2 {
			if n, ok := atoi(parts[1]); ok && n > 0 {
				return Effect{Kind: EffectDraw, Amount: n, Raw: raw}
			}
		}
	case "on_compost", "if_composted_gain":
		if len(parts) == 3 {
			res, okRes := ParseResource(parts[1])
			n, okN := atoi(parts[2])
			if okRes && okN && n > 0 {
				return Effect{Kind: EffectOnCompost, Resource: res, Amount: n, Raw: raw}
			}
		}
	case "gain", "self_gain":
		if len(parts) == 3 {
			res, okRes := ParseResource(parts[1])
			n, okN := atoi(parts[2])
			if okRes && okN && n > 0 {
				return Effect{Kind: EffectGain, Resource: res, Amount: n, Raw: raw}
			}
		}
	case "vp", "self_vp":
		if len(parts) == 2 {
			if n, ok := atoi(parts[1]); ok && n > 0 {
				return Effect{Kind: EffectGainVP, Amount: n, Raw: raw}
			}
		}
	case "peek2_keep1", "self_peek2_keep1":
		return Effect{Kind: EffectPeekKeep, Raw: raw}
	case "forage_yield_bonus_this_round":
		if len(parts) == 2 {
			if n, ok := atoi(parts[1]); ok {
				return Effect{Kind: EffectForageBonus, Amount: n, Raw: raw}
			}
		}
	case "hand_size_delta_next_round":
		if len(parts) == 2 {
			if n, ok := atoi(parts[1]); ok {
				return Effect{Kind: EffectHandSizeDelta, Amount: n, Raw: raw}
			}
		}
	}
	return e
}

// CardDef is an immutable card definition from the catalog.
type CardDef struct {
	ID           string
	Name         string
	Type         CardType
	Domain       string
	BuyCost      Bank
	PlayCost     Bank
	MatPoints    int
	CanPlayOnMat bool
	Effects      []Effect
}

// HasEffect reports whether any parsed effect has the given kind.
func (c *CardDef) HasEffect(kind EffectKind) bool {
	for _, e := range c.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// CompostGains sums the on-compost credits attached to the card.
func (c *CardDef) CompostGains() Bank {
	var gains Bank
	for _, e := range c.Effects {
		if e.Kind == EffectOnCompost {
			gains.Add(e.Resource, e.Amount)
		}
	}
	return gains
}

// Hand tokens. Besides catalog cards, decks hold resource tokens
// ("RES:plasma") spendable during payment and VP tokens ("VP:1") that score
// when played. Both cycle through deck/hand/discard like cards.
const (
	resTokenPrefix = "RES:"
	vpTokenPrefix  = "VP:"
)

func ResourceToken(r Resource) string { return resTokenPrefix + r.String() }

func VPToken(value int) string { return vpTokenPrefix + strconv.Itoa(value) }

func ParseResourceToken(id string) (Resource, bool) {
	if !strings.HasPrefix(id, resTokenPrefix) {
		return 0, false
	}
	return ParseResource(strings.TrimPrefix(id, resTokenPrefix))
}

func ParseVPToken(id string) (int, bool) {
	if !strings.HasPrefix(id, vpTokenPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, vpTokenPrefix))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
