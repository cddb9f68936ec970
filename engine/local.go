// Package engine runs local games between players. It observes the state
// for the seat to act, asks its player for an action, and applies it until
// the game ends.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"durak/game"
	"durak/player"
)

// MaxMoves caps a single game; exceeding it indicates a rules bug rather
// than a long game.
const MaxMoves = 2000

// MatchRecord is one pairwise game outcome, consumable by an external
// rating process. Outcome is from PlayerA's perspective: 1 win, 0 loss,
// 0.5 draw.
type MatchRecord struct {
	PlayerA string
	PlayerB string
	Outcome float64
}

// Result is the outcome of a finished game.
type Result struct {
	Loser   string // empty on a draw
	Draw    bool
	Moves   int
	Records []MatchRecord
}

// Engine drives one game between the given players.
type Engine struct {
	State   *game.GameState
	Players []player.Player
}

// Local deals a fresh game for the players, seated in order, with seat
// firstAttacker starting.
func Local(players []player.Player, firstAttacker int, rng *rand.Rand) *Engine {
	if len(players) < 2 || len(players) > 6 {
		panic("engine: need between 2 and 6 players")
	}
	return &Engine{
		State:   game.NewGame(len(players), firstAttacker, rng),
		Players: players,
	}
}

// Run plays the game to its terminal state and returns the result.
func (e *Engine) Run() (Result, error) {
	moves := 0
	for !e.State.IsTerminal() {
		if moves >= MaxMoves {
			return Result{}, fmt.Errorf("engine: no terminal state after %d moves", MaxMoves)
		}
		seat := e.State.PlayerToAct()
		p := e.Players[seat]

		action, err := p.ChooseAction(game.Observe(e.State, seat))
		if err != nil {
			return Result{}, fmt.Errorf("engine: %s failed to choose: %w", p.Name(), err)
		}
		next, err := e.State.Apply(seat, action)
		if err != nil {
			return Result{}, fmt.Errorf("engine: %s played out of turn or rules: %w", p.Name(), err)
		}

		log.Debug().
			Str("player", p.Name()).
			Stringer("action", action).
			Int("move", moves).
			Msg("played")
		e.State = next
		moves++
	}

	result := Result{
		Draw:    e.State.Loser == game.NoPlayer,
		Moves:   moves,
		Records: e.records(),
	}
	if !result.Draw {
		result.Loser = e.Players[e.State.Loser].Name()
		log.Info().Str("loser", result.Loser).Int("moves", moves).Msg("game over")
	} else {
		log.Info().Int("moves", moves).Msg("game drawn")
	}
	return result, nil
}

// records emits the pairwise outcomes: the durak lost against every other
// seat, everyone else drew among themselves.
func (e *Engine) records() []MatchRecord {
	loser := e.State.Loser
	var records []MatchRecord
	for a := 0; a < len(e.Players); a++ {
		for b := a + 1; b < len(e.Players); b++ {
			outcome := 0.5
			switch loser {
			case a:
				outcome = 0
			case b:
				outcome = 1
			}
			records = append(records, MatchRecord{
				PlayerA: e.Players[a].Name(),
				PlayerB: e.Players[b].Name(),
				Outcome: outcome,
			})
		}
	}
	return records
}
