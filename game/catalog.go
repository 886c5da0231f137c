package game

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Catalog is the immutable card library. Cards are referenced by id
// everywhere else; the catalog itself is shared across games and clones.
type Catalog struct {
	cards map[string]*CardDef
	ids   []string
}

func NewCatalog(defs []CardDef) *Catalog {
	c := &Catalog{cards: make(map[string]*CardDef, len(defs))}
	for i := range defs {
		d := defs[i]
		if _, dup := c.cards[d.ID]; dup {
			continue
		}
		c.cards[d.ID] = &d
		c.ids = append(c.ids, d.ID)
	}
	return c
}

// Card returns the definition for id, or nil for unknown ids and tokens.
func (c *Catalog) Card(id string) *CardDef { return c.cards[id] }

// IDs returns card ids in load order.
func (c *Catalog) IDs() []string { return c.ids }

func (c *Catalog) Len() int { return len(c.ids) }

// LoadCatalog reads the card table and, if globalsPath is non-empty, the
// globals table. Globals are forced to type Global and never enter the
// supply or the mat.
func LoadCatalog(cardsPath, globalsPath string) (*Catalog, error) {
	defs, err := readCardCSV(cardsPath, false)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	if globalsPath != "" {
		globals, err := readCardCSV(globalsPath, true)
		if err != nil {
			return nil, fmt.Errorf("load globals: %w", err)
		}
		defs = append(defs, globals...)
	}
	return NewCatalog(defs), nil
}

func readCardCSV(path string, global bool) ([]CardDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s: empty card table", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["id"]; !ok {
		return nil, fmt.Errorf("%s: missing id column", path)
	}

	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	getInt := func(row []string, name string, def int) int {
		s := get(row, name)
		if s == "" {
			return def
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return def
		}
		return n
	}

	var defs []CardDef
	for _, row := range rows[1:] {
		id := get(row, "id")
		if id == "" {
			continue
		}
		d := CardDef{
			ID:           id,
			Name:         get(row, "name"),
			Domain:       strings.ToLower(get(row, "domain")),
			MatPoints:    getInt(row, "mat_points", 0),
			CanPlayOnMat: parseBool(get(row, "can_play_on_mat"), true),
			Effects:      ParseEffects(get(row, "effect")),
		}
		if d.Name == "" {
			d.Name = id
		}
		for _, res := range Resources {
			if n := getInt(row, "play_cost_"+res.String(), 0); n > 0 {
				d.PlayCost.Add(res, n)
			}
			if n := getInt(row, "buy_cost_"+res.String(), 0); n > 0 {
				d.BuyCost.Add(res, n)
			}
		}
		if d.BuyCost.IsZero() {
			// Legacy plasma-only column.
			d.BuyCost.Add(Plasma, getInt(row, "buy_cost_plasma", 2))
		}
		if global {
			d.Type = TypeGlobal
			d.Domain = ""
			d.MatPoints = 0
			d.CanPlayOnMat = false
		} else {
			d.Type = ParseCardType(get(row, "type"))
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	default:
		return def
	}
}

// DefaultCatalog returns the built-in card set used when no CSV paths are
// configured. It covers every effect kind and all three discountable types.
func DefaultCatalog() *Catalog {
	mk := func(id, name string, t CardType, domain string, buy, play Bank, matPts int, onMat bool, effect string) CardDef {
		return CardDef{
			ID: id, Name: name, Type: t, Domain: domain,
			BuyCost: buy, PlayCost: play,
			MatPoints: matPts, CanPlayOnMat: onMat,
			Effects: ParseEffects(effect),
		}
	}
	cost := func(pairs ...any) Bank {
		var b Bank
		for i := 0; i < len(pairs); i += 2 {
			b.Add(pairs[i].(Resource), pairs[i+1].(int))
		}
		return b
	}

	return NewCatalog([]CardDef{
		mk("crow_scout", "Crow Scout", TypeCritter, "magic",
			cost(Plasma, 1), cost(Plasma, 1), 0, true, "draw:1"),
		mk("rat_forager", "Rat Forager", TypeCritter, "slime",
			cost(Plasma, 2), cost(Plasma, 1), 0, true, "gain:nut:1"),
		mk("glow_beetle", "Glow Beetle", TypeCritter, "radioactive",
			cost(Plasma, 2), cost(Ash, 1), 1, true, "on_compost:ash:1"),
		mk("pumpkin_patch", "Pumpkin Patch", TypeFarm, "slime",
			cost(Plasma, 2), cost(Plasma, 1, Nut, 1), 2, true, ""),
		mk("ash_orchard", "Ash Orchard", TypeFarm, "radioactive",
			cost(Plasma, 2), cost(Ash, 1, Shards, 1), 1, true, "gain:ash:1"),
		mk("moon_meadow", "Moon Meadow", TypeFarm, "magic",
			cost(Plasma, 3), cost(Plasma, 2), 2, true, "draw:1"),
		mk("dust_wraith", "Dust Wraith", TypeWild, "magic",
			cost(Plasma, 3), cost(Shards, 1), 1, true, "on_compost:shards:1"),
		mk("bog_thing", "Bog Thing", TypeWild, "slime",
			cost(Plasma, 2), cost(Plasma, 1, Mushroom, 1), 1, true, "vp:1"),
		mk("feral_sprout", "Feral Sprout", TypeWild, "radioactive",
			cost(Plasma, 1), cost(Plasma, 1), 0, true, "gain:shards:1"),
		mk("owl_keeper", "Owl Keeper", TypeCritter, "magic",
			cost(Plasma, 3), cost(Plasma, 1, Shards, 1), 1, true, "peek2_keep1"),
		mk("harvest_rite", "Harvest Rite", TypeGlobal, "",
			cost(Plasma, 2), cost(Plasma, 1), 0, false, "forage_yield_bonus_this_round:1;gain:berry:1"),
		mk("long_winter", "Long Winter", TypeGlobal, "",
			cost(Plasma, 2), cost(Plasma, 1), 0, false, "hand_size_delta_next_round:-1;vp:1"),
	})
}
