// Package player defines the player abstraction the engine drives and the
// built-in implementations: uniformly random play and the MCTS-backed
// variants. Human front-ends plug in through Func.
package player

import (
	"golang.org/x/exp/rand"

	"durak/game"
)

// Player chooses actions from its own observable view of the game.
type Player interface {
	Name() string
	ChooseAction(info *game.InformationSet) (game.Action, error)
}

// Func adapts a plain function to a Player, for console or test front-ends.
type Func struct {
	PlayerName string
	Choose     func(info *game.InformationSet) (game.Action, error)
}

func (f Func) Name() string {
	return f.PlayerName
}

func (f Func) ChooseAction(info *game.InformationSet) (game.Action, error) {
	return f.Choose(info)
}

// Random plays a uniformly random legal action.
type Random struct {
	name string
	rng  *rand.Rand
}

func NewRandom(name string, rng *rand.Rand) *Random {
	return &Random{name: name, rng: rng}
}

func (r *Random) Name() string {
	return r.name
}

func (r *Random) ChooseAction(info *game.InformationSet) (game.Action, error) {
	acts := info.LegalActions()
	return acts[r.rng.Intn(len(acts))], nil
}
