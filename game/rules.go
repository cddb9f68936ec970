package game

import "fmt"

// LegalActions enumerates every action player may take in the current state.
// It is a pure function: the state is not modified and repeated calls return
// the same actions in the same order. Players other than the one to act have
// no legal actions.
func (gs *GameState) LegalActions(player int) []Action {
	if gs.IsTerminal() || player != gs.PlayerToAct() {
		return nil
	}
	switch gs.Phase {
	case PhaseAttack:
		return gs.attackerActions()
	case PhaseDefend:
		return gs.defenderActions()
	default:
		return nil
	}
}

func (gs *GameState) attackerActions() []Action {
	var acts []Action

	// A new pile needs a defender who can still respond to it.
	if len(gs.Hands[gs.Defender]) > 0 {
		if len(gs.Table) == 0 {
			for _, card := range gs.Hands[gs.Attacker] {
				acts = append(acts, Action{Kind: Attack, Card: card})
			}
		} else {
			ranks := gs.tableRanks()
			for _, card := range gs.Hands[gs.Attacker] {
				if ranks[card.Rank] {
					acts = append(acts, Action{Kind: Attack, Card: card})
				}
			}
		}
	}

	// Passing ends the trick in the defender's favor; it needs something
	// on the table to pass on.
	if len(gs.Table) > 0 {
		acts = append(acts, Action{Kind: Pass})
	}
	return acts
}

func (gs *GameState) defenderActions() []Action {
	open := gs.Table[gs.openPair()].Attack
	var acts []Action

	for _, card := range gs.Hands[gs.Defender] {
		if card.Beats(open, gs.Trump) {
			acts = append(acts, Action{Kind: Defend, Card: card})
		}
	}

	// Diverting is possible once per trick, only before anything in the
	// trick has been beaten, and only if the would-be defender can respond.
	if !gs.Diverted && gs.defendedCount() == 0 && len(gs.Hands[gs.Attacker]) > 0 {
		for _, card := range gs.Hands[gs.Defender] {
			if card.Suit == gs.Trump && card.Rank == open.Rank {
				acts = append(acts, Action{Kind: DivertWithTrump, Card: card})
			}
		}
	}

	acts = append(acts, Action{Kind: Take})
	return acts
}

// Apply plays an action for player and returns the resulting state. Actions
// outside the legal set are rejected with ErrIllegalAction and the receiver
// is left untouched.
func (gs *GameState) Apply(player int, action Action) (*GameState, error) {
	if !containsAction(gs.LegalActions(player), action) {
		return nil, fmt.Errorf("%w: player %d cannot play %s in phase %s",
			ErrIllegalAction, player, action, gs.Phase)
	}

	next := gs.Copy()
	switch action.Kind {
	case Attack:
		next.Hands[next.Attacker], _ = removeCard(next.Hands[next.Attacker], action.Card)
		next.Table = append(next.Table, TablePair{Attack: action.Card})
		next.Phase = PhaseDefend

	case Defend:
		next.Hands[next.Defender], _ = removeCard(next.Hands[next.Defender], action.Card)
		open := next.openPair()
		next.Table[open].Defend = action.Card
		next.Table[open].Defended = true
		next.Phase = PhaseAttack

	case DivertWithTrump:
		// The trump is shown, not played: it stays in the hand.
		next.Diverted = true
		next.Attacker, next.Defender = next.Defender, next.Attacker
		next.Phase = PhaseDefend

	case Take:
		for _, pair := range next.Table {
			next.Hands[next.Defender] = insertCard(next.Hands[next.Defender], pair.Attack)
			if pair.Defended {
				next.Hands[next.Defender] = insertCard(next.Hands[next.Defender], pair.Defend)
			}
		}
		next.Table = nil
		next.drawAll()
		// The defender is skipped: the next active seat attacks.
		next.newTrick((next.Defender + 1) % next.NumPlayers())

	case Pass:
		for _, pair := range next.Table {
			next.Discard = append(next.Discard, pair.Attack)
			if pair.Defended {
				next.Discard = append(next.Discard, pair.Defend)
			}
		}
		next.Table = nil
		next.drawAll()
		// A successful defense earns the attack.
		next.newTrick(next.Defender)
	}
	return next, nil
}

func containsAction(acts []Action, action Action) bool {
	for _, a := range acts {
		if a == action {
			return true
		}
	}
	return false
}
