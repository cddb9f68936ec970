package searcher

import (
	"math"

	"durak/game"
)

// Hyperparameter defaults for the search variants.
const (
	// DefaultExploration is the UCB1 exploration constant C.
	DefaultExploration = 0.8
	// DefaultDrawScore is the backpropagated value of a drawn game.
	DefaultDrawScore = 0.5
	// DefaultCutoff bounds the moves of a single playout; a playout that
	// hits it scores as a draw.
	DefaultCutoff = 1000
)

const (
	winScore  = 1.0
	lossScore = 0.0
)

// ucb scores children of one parent: UCB1 = W/N + C*sqrt(ln(N_parent)/N).
// The numerator C^2*ln(N_parent) is shared across the siblings.
type ucb struct {
	numerator float64
}

func newUCB(exploration float64, parentVisits int) ucb {
	if parentVisits == 0 {
		panic("cannot compute UCB1: parent has 0 visits")
	}
	return ucb{numerator: exploration * exploration * math.Log(float64(parentVisits))}
}

func (u ucb) evaluate(wins float64, visits int) float64 {
	if visits == 0 {
		panic("cannot compute UCB1: child has 0 visits")
	}
	n := float64(visits)
	return wins/n + math.Sqrt(u.numerator/n)
}

// outcomeValue scores a finished playout for one seat.
func outcomeValue(loser, player int, drawScore float64) float64 {
	switch {
	case loser == game.NoPlayer:
		return drawScore
	case player == loser:
		return lossScore
	default:
		return winScore
	}
}
