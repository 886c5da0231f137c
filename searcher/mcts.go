package searcher

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"scarecrovv/game"
)

// MCTS samples each candidate action with greedy-policy rollouts on deep
// clones of the game and picks the candidate with the highest mean value.
// Deterministic given the game's RNG seed.
type MCTS struct {
	rollouts   int
	horizon    int
	actionsCap int
	budget     time.Duration
	policy     *Greedy
}

type Option func(*MCTS)

func WithRollouts(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.rollouts = n
		}
	}
}

func WithHorizon(plies int) Option {
	return func(m *MCTS) {
		if plies >= 0 {
			m.horizon = plies
		}
	}
}

// WithActionsCap restricts the root to the top-n candidates by greedy
// score. A performance bound, not a correctness requirement.
func WithActionsCap(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.actionsCap = n
		}
	}
}

// WithTimeBudget sets a soft per-decision budget: once exceeded, no
// further rollouts are issued and the best found so far wins.
func WithTimeBudget(d time.Duration) Option {
	return func(m *MCTS) {
		if d > 0 {
			m.budget = d
		}
	}
}

// WithPolicy replaces the rollout policy. The default shares the plain
// greedy scorer so bot and rollouts never drift apart.
func WithPolicy(p *Greedy) Option {
	return func(m *MCTS) {
		if p != nil {
			m.policy = p
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		rollouts: 8,
		horizon:  3,
		policy:   NewGreedy(0),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FromConfig builds the bot from the game configuration knobs.
func FromConfig(cfg game.MCTSConfig) *MCTS {
	return NewMCTS(
		WithRollouts(cfg.Rollouts),
		WithHorizon(cfg.Horizon),
		WithActionsCap(cfg.ActionsCap),
		WithTimeBudget(time.Duration(cfg.TimeMS)*time.Millisecond),
	)
}

const (
	winValue  = 1000.0
	lossValue = -1000.0
)

func (m *MCTS) ChooseAction(g *game.GameState, seat int) game.Action {
	acts := game.LegalActions(g, seat)
	if len(acts) == 0 {
		return game.Pass
	}

	// With a single real choice the search adds nothing.
	var nonPass []game.Action
	for _, a := range acts {
		if a.Kind != game.ActionPass {
			nonPass = append(nonPass, a)
		}
	}
	if len(nonPass) == 0 {
		return game.Pass
	}
	if len(nonPass) == 1 {
		return nonPass[0]
	}

	candidates, scores := m.candidates(g, seat, acts)

	sums := make([]float64, len(candidates))
	counts := make([]int, len(candidates))
	start := time.Now()
	expired := func() bool {
		return m.budget > 0 && time.Since(start) >= m.budget
	}

	for r := 0; r < m.rollouts && !expired(); r++ {
		for i, a := range candidates {
			if expired() {
				break
			}
			clone := g.Clone()
			if err := game.Apply(clone, seat, a); err != nil {
				log.Warn().Err(err).Stringer("action", a).Msg("candidate rejected inside clone")
				continue
			}
			sums[i] += m.rollout(clone, seat)
			counts[i]++
		}
	}

	best := -1
	var bestMean, bestScore float64
	for i := range candidates {
		if counts[i] == 0 {
			continue
		}
		mean := sums[i] / float64(counts[i])
		if best < 0 || mean > bestMean || (mean == bestMean && scores[i] > bestScore) {
			best, bestMean, bestScore = i, mean, scores[i]
		}
	}
	if best < 0 {
		// Budget too tight for a single rollout: fall back to greedy order.
		return candidates[0]
	}
	return candidates[best]
}

// candidates orders actions by greedy score (stable, enumeration order
// breaking ties) and applies the configured cap.
func (m *MCTS) candidates(g *game.GameState, seat int, acts []game.Action) ([]game.Action, []float64) {
	type scored struct {
		action game.Action
		score  float64
	}
	list := make([]scored, len(acts))
	for i, a := range acts {
		list[i] = scored{a, m.policy.Score(g, seat, a)}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })

	if m.actionsCap > 0 && len(list) > m.actionsCap {
		list = list[:m.actionsCap]
	}
	actions := make([]game.Action, len(list))
	scores := make([]float64, len(list))
	for i, s := range list {
		actions[i] = s.action
		scores[i] = s.score
	}
	return actions, scores
}

// rollout plays the clone forward for the configured horizon, every seat
// driven by the greedy policy, and values the end state for the root seat.
func (m *MCTS) rollout(s *game.GameState, root int) float64 {
	if w := s.VictoryWinner(); w >= 0 {
		return terminal(w == root)
	}

	cur := s.NextSeat(root)
	for depth := 0; depth < m.horizon; depth++ {
		a := m.policy.ChooseAction(s, cur)
		if err := game.Apply(s, cur, a); err != nil {
			a = game.Pass
			_ = game.Apply(s, cur, a)
		}
		if w := s.VictoryWinner(); w >= 0 {
			return terminal(w == root)
		}
		cur = s.NextSeat(cur)
	}
	return float64(s.Players[root].VP) + 0.2*s.EngineStrength(root)
}

func terminal(won bool) float64 {
	if won {
		return winValue
	}
	return lossValue
}
