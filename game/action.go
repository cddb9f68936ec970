package game

import "fmt"

// ActionKind tags the variants of a player action.
type ActionKind uint8

const (
	// Attack plays a card onto the table for the defender to beat.
	Attack ActionKind = iota
	// Defend beats the open attack card with a higher card or a trump.
	Defend
	// DivertWithTrump shows a trump of the attacked rank instead of
	// defending, swapping the trick roles. The shown card stays in hand.
	DivertWithTrump
	// Take collects every card on the table into the defender's hand.
	Take
	// Pass ends the attacker's trick once at least one pair is defended.
	Pass
)

var actionKindNames = [...]string{"Attack", "Defend", "DivertWithTrump", "Take", "Pass"}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is one legal play. Card is meaningful for Attack, Defend and
// DivertWithTrump only. Actions are comparable so they can key statistics.
type Action struct {
	Kind ActionKind
	Card Card
}

func (a Action) String() string {
	switch a.Kind {
	case Take, Pass:
		return a.Kind.String()
	default:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Card)
	}
}

// Order gives a total order on actions so merged statistics can be ranked
// identically regardless of which worker reported an action first.
func (a Action) Order() int {
	return int(a.Kind)*DeckSize + a.Card.order()
}
