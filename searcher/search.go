package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"durak/game"
)

// params carries the per-iteration search knobs.
type params struct {
	exploration float64
	drawScore   float64
	cutoff      int
}

// iterateDeterminized runs one selection/expansion/rollout/backpropagation
// pass over a tree keyed by the concrete states of a single determinization.
func (t *tree) iterateDeterminized(root *game.GameState, p params, rng *rand.Rand, metrics Collector) error {
	gs := root
	idx := int32(0)

	for !gs.IsTerminal() {
		if len(t.at(idx).untried) > 0 {
			// Expansion: untried actions leave in first-encountered order.
			action := t.at(idx).untried[0]
			t.at(idx).untried = t.at(idx).untried[1:]

			actor := gs.PlayerToAct()
			next, err := gs.Apply(actor, action)
			if err != nil {
				return err
			}
			child := t.add(idx, actor, action)
			t.at(child).untried = next.LegalActions(next.PlayerToAct())
			idx, gs = child, next
			break
		}

		child, err := t.selectChild(idx, gs, nil, p.exploration)
		if err != nil {
			return err
		}
		actor := gs.PlayerToAct()
		next, err := gs.Apply(actor, t.at(child).action)
		if err != nil {
			return err
		}
		idx, gs = child, next
	}

	loser, err := rollout(gs, p.cutoff, rng, metrics)
	if err != nil {
		return err
	}
	t.backpropagate(idx, loser, p.drawScore)
	return nil
}

// iterateISMCTS runs one pass over a tree keyed by the observer's
// information sets: a fresh determinization is sampled, the walk is
// restricted to actions legal in it, and actions first seen in this world
// expand lazily.
func (t *tree) iterateISMCTS(info *game.InformationSet, p params, rng *rand.Rand, metrics Collector) error {
	gs, err := info.Determinize(rng)
	if err != nil {
		return err
	}

	idx := int32(0)
	for !gs.IsTerminal() {
		actor := gs.PlayerToAct()
		legal := gs.LegalActions(actor)

		if action, ok := firstUntried(t.at(idx), legal); ok {
			next, err := gs.Apply(actor, action)
			if err != nil {
				return err
			}
			idx = t.add(idx, actor, action)
			gs = next
			break
		}

		child, err := t.selectChild(idx, gs, legal, p.exploration)
		if err != nil {
			return err
		}
		next, err := gs.Apply(actor, t.at(child).action)
		if err != nil {
			return err
		}
		idx, gs = child, next
	}

	loser, err := rollout(gs, p.cutoff, rng, metrics)
	if err != nil {
		return err
	}
	t.backpropagate(idx, loser, p.drawScore)
	return nil
}

// iterateFPV runs one pass over a perspective-player-only tree. Every other
// seat plays uniformly at random, between the perspective player's decision
// points inside the tree walk as well as during the rollout.
func (t *tree) iterateFPV(info *game.InformationSet, p params, rng *rand.Rand, metrics Collector) error {
	gs, err := info.Determinize(rng)
	if err != nil {
		return err
	}
	perspective := info.Observer
	movesLeft := p.cutoff

	idx := int32(0)
	for !gs.IsTerminal() && movesLeft > 0 {
		legal := gs.LegalActions(perspective)

		if action, ok := firstUntried(t.at(idx), legal); ok {
			next, err := gs.Apply(perspective, action)
			if err != nil {
				return err
			}
			idx = t.add(idx, perspective, action)
			gs = next
			break
		}

		child, err := t.selectChild(idx, gs, legal, p.exploration)
		if err != nil {
			return err
		}
		next, err := gs.Apply(perspective, t.at(child).action)
		if err != nil {
			return err
		}
		idx = child
		gs, err = advanceOpponents(next, perspective, &movesLeft, rng)
		if err != nil {
			return err
		}
	}

	loser, err := playout(gs, &movesLeft, rng, metrics)
	if err != nil {
		return err
	}
	t.backpropagate(idx, loser, p.drawScore)
	return nil
}

// selectChild picks the child maximizing UCB1 among the tried actions, and
// among legal ones when legal is non-nil. Ties keep the first-encountered
// child.
func (t *tree) selectChild(idx int32, gs *game.GameState, legal []game.Action, exploration float64) (int32, error) {
	n := t.at(idx)
	sel := newUCB(exploration, n.visits)

	best := noNode
	bestScore := math.Inf(-1)
	for i, action := range n.actions {
		if legal != nil && !legalContains(legal, action) {
			continue
		}
		c := t.at(n.children[i])
		if score := sel.evaluate(c.wins, c.visits); score > bestScore {
			best, bestScore = n.children[i], score
		}
	}
	if best == noNode {
		// Unreachable for well-formed states: a non-terminal actor always
		// has at least one legal action and untried ones expand first.
		return noNode, errNoSelectableChild(gs)
	}
	return best, nil
}

// firstUntried returns the first legal action the node has not tried yet.
// For determinized trees the untried list is authoritative; for information
// set trees it is whatever this determinization allows beyond the tried set.
func firstUntried(n *node, legal []game.Action) (game.Action, bool) {
	if len(n.untried) > 0 {
		return n.untried[0], true
	}
	for _, a := range legal {
		if n.childFor(a) == noNode {
			return a, true
		}
	}
	return game.Action{}, false
}

// advanceOpponents plays random legal actions for every seat except the
// perspective player until it is the perspective player's turn again, the
// game ends, or the move budget runs out.
func advanceOpponents(gs *game.GameState, perspective int, movesLeft *int, rng *rand.Rand) (*game.GameState, error) {
	for !gs.IsTerminal() && gs.PlayerToAct() != perspective && *movesLeft > 0 {
		actor := gs.PlayerToAct()
		acts := gs.LegalActions(actor)
		next, err := gs.Apply(actor, acts[rng.Intn(len(acts))])
		if err != nil {
			return nil, err
		}
		gs = next
		*movesLeft--
	}
	return gs, nil
}

// rollout plays uniformly random legal actions for all seats until the game
// ends and returns the losing seat (game.NoPlayer on a draw). A playout
// exceeding cutoff moves scores as a draw.
func rollout(gs *game.GameState, cutoff int, rng *rand.Rand, metrics Collector) (int, error) {
	movesLeft := cutoff
	return playout(gs, &movesLeft, rng, metrics)
}

func playout(gs *game.GameState, movesLeft *int, rng *rand.Rand, metrics Collector) (int, error) {
	for *movesLeft > 0 {
		if gs.IsTerminal() {
			metrics.AddFullPlayout()
			return gs.Loser, nil
		}
		actor := gs.PlayerToAct()
		acts := gs.LegalActions(actor)
		next, err := gs.Apply(actor, acts[rng.Intn(len(acts))])
		if err != nil {
			return game.NoPlayer, err
		}
		gs = next
		*movesLeft--
	}
	if gs.IsTerminal() {
		metrics.AddFullPlayout()
		return gs.Loser, nil
	}
	return game.NoPlayer, nil
}

func legalContains(acts []game.Action, action game.Action) bool {
	for _, a := range acts {
		if a == action {
			return true
		}
	}
	return false
}
