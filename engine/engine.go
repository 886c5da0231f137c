// Package engine drives complete games: the round/turn state machine over
// the game package, with bots supplying action choices.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"scarecrovv/game"
)

// Agent supplies one action choice for the current actor. Both bots in the
// searcher package implement it.
type Agent interface {
	ChooseAction(g *game.GameState, seat int) game.Action
}

// Result is the outcome of one finished game.
type Result struct {
	GameID  string
	Seed    uint64
	Starter int
	Winner  int
	Reason  string
	Rounds  int
	VPs     []int
	Log     *game.EventLog
}

// Engine runs a single game to completion.
type Engine struct {
	State  *game.GameState
	Agents []Agent
}

// New sets up a fresh game. The agent count must match the seat count.
func New(cfg game.Config, cat *game.Catalog, gameID string, agents []Agent) (*Engine, error) {
	if len(agents) != cfg.Players {
		return nil, fmt.Errorf("%w: %d agents for %d players", game.ErrBadConfig, len(agents), cfg.Players)
	}
	state, err := game.NewGame(cfg, cat, gameID)
	if err != nil {
		return nil, err
	}
	return &Engine{State: state, Agents: agents}, nil
}

// Run executes rounds until a seat reaches the VP threshold or a cap is
// hit. Illegal bot proposals are rejected without consuming the action
// budget; the seat is forced to pass instead.
func (e *Engine) Run() Result {
	g := e.State
	cfg := g.Config
	starter := g.StartSeat

	g.StartRound()

	winner, reason := -1, ""
	for turn := 0; turn < cfg.TurnCap; turn++ {
		if g.AllPassed() {
			g.EndRound()
			if w := g.VictoryWinner(); w >= 0 {
				winner, reason = w, "vp_threshold"
				break
			}
			if g.Round >= cfg.RoundCap {
				winner, reason = g.WinnerByPoints(), "points_at_cap"
				break
			}
			g.StartRound()
			continue
		}

		seat := g.CurrentSeat
		action := e.Agents[seat].ChooseAction(g, seat)
		if err := game.Apply(g, seat, action); err != nil {
			// Never coerce into a different move silently: log, then pass.
			log.Warn().Err(err).Int("seat", seat).Stringer("action", action).
				Msg("agent proposed illegal action, passing")
			action = game.Pass
			_ = game.Apply(g, seat, action)
		}

		if action.Kind == game.ActionPass {
			g.Passed[seat] = true
			g.ActionsLeft = 0
		} else {
			g.ActionsLeft--
		}

		if w := g.VictoryWinner(); w >= 0 {
			winner, reason = w, "vp_threshold"
			break
		}

		if g.ActionsLeft <= 0 {
			g.AdvanceSeat()
		}
	}

	if winner < 0 {
		winner, reason = g.WinnerByPoints(), "points_at_cap"
	}
	g.Winner = winner
	g.WinReason = reason
	g.Terminal = true

	vps := make([]int, len(g.Players))
	for i, p := range g.Players {
		vps[i] = p.VP
	}
	g.Log.Emit(game.Event{Type: game.EventWin, Round: g.Round, Seat: winner, Reason: reason})
	g.Log.Emit(game.Event{Type: game.EventGameEnd, Round: g.Round, Seat: winner, VPs: vps})

	return Result{
		GameID:  g.GameID,
		Seed:    cfg.Seed,
		Starter: starter,
		Winner:  winner,
		Reason:  reason,
		Rounds:  g.Round,
		VPs:     vps,
		Log:     g.Log,
	}
}
