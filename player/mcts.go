package player

import (
	"github.com/rs/zerolog/log"

	"durak/game"
	"durak/searcher"
)

// MCTS backs a player with one of the search variants. With a single legal
// action the search is skipped. After a search the ranked per-action report
// is kept on the player for the console layer to render.
type MCTS struct {
	name     string
	searcher searcher.Searcher
	report   []searcher.ActionStat
}

// NewDeterminizedMCTS plays by determinized MCTS over deals independent
// worlds with rollouts iterations each.
func NewDeterminizedMCTS(name string, deals, rollouts int, options ...searcher.Option) *MCTS {
	return &MCTS{name: name, searcher: searcher.NewDeterminized(deals, rollouts, options...)}
}

// NewISMCTS plays by single-tree information set MCTS.
func NewISMCTS(name string, rollouts int, options ...searcher.Option) *MCTS {
	return &MCTS{name: name, searcher: searcher.NewISMCTS(rollouts, options...)}
}

// NewISMCTSFPV plays by ISMCTS with uniformly random opponents.
func NewISMCTSFPV(name string, rollouts int, options ...searcher.Option) *MCTS {
	return &MCTS{name: name, searcher: searcher.NewISMCTSFPV(rollouts, options...)}
}

func (m *MCTS) Name() string {
	return m.name
}

// Report returns the ranked statistics of the last searched decision, nil if
// the last decision was forced.
func (m *MCTS) Report() []searcher.ActionStat {
	return m.report
}

func (m *MCTS) ChooseAction(info *game.InformationSet) (game.Action, error) {
	m.report = nil

	acts := info.LegalActions()
	if len(acts) == 1 {
		return acts[0], nil
	}

	stats, err := m.searcher.Decide(info)
	if err != nil {
		return game.Action{}, err
	}
	m.report = stats

	for _, stat := range stats {
		log.Debug().
			Str("player", m.name).
			Stringer("action", stat.Action).
			Float64("winRate", stat.WinRate).
			Float64("wins", stat.Wins).
			Int("visits", stat.Visits).
			Msg("candidate")
	}
	best := stats[0]
	log.Info().
		Str("player", m.name).
		Stringer("action", best.Action).
		Msgf("expects to not lose with %.2f%%", best.WinRate*100)
	return best.Action, nil
}
