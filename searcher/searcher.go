// Package searcher implements Monte Carlo Tree Search variants for
// imperfect-information Durak: determinized MCTS over independent sampled
// worlds, single-tree information set MCTS, and its fixed-opponent-policy
// variant. Decisions fan the rollout budget out over a worker pool and merge
// per-action statistics by summation.
package searcher

import (
	"fmt"

	"durak/game"
)

// Searcher decides on an action for the observer of an information set and
// reports ranked per-action statistics. The first entry is the chosen action.
type Searcher interface {
	Decide(info *game.InformationSet) ([]ActionStat, error)
}

// checkDecidable rejects information sets a search cannot act on. The
// observer must be the player to act and must have a choice to make.
func checkDecidable(info *game.InformationSet) error {
	if info.PlayerToAct() != info.Observer {
		return fmt.Errorf("observer %d is not to act (phase %s, attacker %d, defender %d)",
			info.Observer, info.Phase, info.Attacker, info.Defender)
	}
	if len(info.LegalActions()) == 0 {
		return fmt.Errorf("observer %d has no legal actions", info.Observer)
	}
	return nil
}

// splitBudget divides a rollout budget over workers, spreading the remainder
// over the low worker indices.
func splitBudget(budget, workers int) []int {
	shares := make([]int, workers)
	for w := range shares {
		shares[w] = budget / workers
		if w < budget%workers {
			shares[w]++
		}
	}
	return shares
}
