package game

import (
	"encoding/json"
	"io"
)

// EventType discriminates event records in the per-game log.
type EventType string

const (
	EventGameStart   EventType = "game_start"
	EventStartRound  EventType = "start_round"
	EventEndRound    EventType = "end_round"
	EventTurnOrder   EventType = "turn_order"
	EventReshuffle   EventType = "reshuffle"
	EventPlaceWorker EventType = "place_worker"
	EventBuy         EventType = "buy"
	EventBuyVP       EventType = "buy_vp"
	EventPlayCard    EventType = "play_card"
	EventPlayVP      EventType = "play_vp"
	EventEffect      EventType = "effect"
	EventCompost     EventType = "compost"
	EventCompostGain EventType = "compost_gain"
	EventInitiative  EventType = "initiative_claimed"
	EventDecree      EventType = "decree_vp"
	EventPass        EventType = "pass"
	EventWin         EventType = "win"
	EventGameEnd     EventType = "game_end"
)

// Event is one record of the append-only per-game stream. Seat is -1 for
// events not tied to a seat. The record set is sufficient to reconstruct
// per-card and per-field statistics downstream.
type Event struct {
	Type     EventType `json:"type"`
	Round    int       `json:"round"`
	Seat     int       `json:"seat"`
	Card     string    `json:"card,omitempty"`
	Field    string    `json:"field,omitempty"`
	Slot     int       `json:"slot,omitempty"`
	ToMat    bool      `json:"to_mat,omitempty"`
	Resource string    `json:"resource,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	Bonus    int       `json:"bonus,omitempty"`
	Total    int       `json:"total,omitempty"`
	Order    []int     `json:"order,omitempty"`
	VPs      []int     `json:"vps,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// EventLog collects events for one game. The game id identifies the run in
// filenames and summary rows but is deliberately kept out of the records,
// so logs from identical seeds stay byte-identical.
type EventLog struct {
	GameID  string
	Records []Event
}

func NewEventLog(gameID string) *EventLog {
	return &EventLog{GameID: gameID}
}

// Emit appends a record. A nil log (rollout clones) drops it.
func (l *EventLog) Emit(e Event) {
	if l == nil {
		return
	}
	l.Records = append(l.Records, e)
}

// WriteJSONL writes one JSON record per line.
func (l *EventLog) WriteJSONL(w io.Writer) error {
	enc := json.NewEncoder(w)
	for i := range l.Records {
		if err := enc.Encode(&l.Records[i]); err != nil {
			return err
		}
	}
	return nil
}
