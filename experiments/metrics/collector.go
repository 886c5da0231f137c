// Package metrics turns finished game results into card-balance and
// field-usage summaries for offline analysis.
package metrics

import (
	"sort"

	"scarecrovv/engine"
	"scarecrovv/game"
)

// First-play round buckets for card rows.
const (
	earlyRoundMax = 3
	midRoundMax   = 6
)

// CardRow aggregates one card id across a series of games.
type CardRow struct {
	Card           string
	Bought         int
	Played         int
	ToMat          int
	FirstPlayEarly int
	FirstPlayMid   int
	FirstPlayLate  int
	GamesOwned     int
	WinsWhenOwned  int
}

// FieldRow aggregates one worker field across a series of games.
type FieldRow struct {
	Field            string
	Visits           int
	InitiativeClaims int
}

// GameRow is the one-line outcome of a single game.
type GameRow struct {
	GameID  string
	Seed    uint64
	Starter int
	Winner  int
	Reason  string
	Rounds  int
	VPs     []int
}

// Summary is the full aggregation over a series.
type Summary struct {
	Cards  []CardRow
	Fields []FieldRow
	Games  []GameRow
}

// Aggregate replays the event logs of a series into per-card, per-field and
// per-game rows. Card ownership means a seat bought or played the card at
// least once in that game; a win-when-owned requires the owning seat to also
// be the winner.
func Aggregate(results []engine.Result) Summary {
	cards := make(map[string]*CardRow)
	fields := make(map[string]*FieldRow)

	cardRow := func(id string) *CardRow {
		r, ok := cards[id]
		if !ok {
			r = &CardRow{Card: id}
			cards[id] = r
		}
		return r
	}
	fieldRow := func(name string) *FieldRow {
		r, ok := fields[name]
		if !ok {
			r = &FieldRow{Field: name}
			fields[name] = r
		}
		return r
	}

	summary := Summary{}
	for _, res := range results {
		summary.Games = append(summary.Games, GameRow{
			GameID:  res.GameID,
			Seed:    res.Seed,
			Starter: res.Starter,
			Winner:  res.Winner,
			Reason:  res.Reason,
			Rounds:  res.Rounds,
			VPs:     res.VPs,
		})
		if res.Log == nil {
			continue
		}

		// owners[card] holds the seats that touched the card this game.
		owners := make(map[string]map[int]bool)
		firstPlayed := make(map[string]bool)
		own := func(card string, seat int) {
			seats, ok := owners[card]
			if !ok {
				seats = make(map[int]bool)
				owners[card] = seats
			}
			seats[seat] = true
		}

		for _, e := range res.Log.Records {
			switch e.Type {
			case game.EventBuy, game.EventBuyVP:
				cardRow(e.Card).Bought++
				own(e.Card, e.Seat)
			case game.EventPlayCard, game.EventPlayVP:
				r := cardRow(e.Card)
				r.Played++
				if e.ToMat {
					r.ToMat++
				}
				if !firstPlayed[e.Card] {
					firstPlayed[e.Card] = true
					switch {
					case e.Round <= earlyRoundMax:
						r.FirstPlayEarly++
					case e.Round <= midRoundMax:
						r.FirstPlayMid++
					default:
						r.FirstPlayLate++
					}
				}
				own(e.Card, e.Seat)
			case game.EventPlaceWorker:
				fieldRow(e.Field).Visits++
			case game.EventInitiative:
				fieldRow(e.Field).InitiativeClaims++
			}
		}

		for card, seats := range owners {
			r := cardRow(card)
			r.GamesOwned++
			if seats[res.Winner] {
				r.WinsWhenOwned++
			}
		}
	}

	for _, r := range cards {
		summary.Cards = append(summary.Cards, *r)
	}
	sort.Slice(summary.Cards, func(i, j int) bool {
		return summary.Cards[i].Card < summary.Cards[j].Card
	})
	for _, r := range fields {
		summary.Fields = append(summary.Fields, *r)
	}
	sort.Slice(summary.Fields, func(i, j int) bool {
		return summary.Fields[i].Field < summary.Fields[j].Field
	})
	return summary
}
