package game

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// Phase is the stage of the current trick.
type Phase uint8

const (
	// PhaseAttack means the attacker must play an attack card or pass.
	PhaseAttack Phase = iota
	// PhaseDefend means the defender must beat the open card, take or divert.
	PhaseDefend
	// PhaseOver means the game has ended.
	PhaseOver
)

var phaseNames = [...]string{"Attack", "Defend", "Over"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// NoPlayer marks the absence of a player index: no loser (draw) or no one to
// act (terminal state).
const NoPlayer = -1

// TablePair is one attack card on the table together with the card that beat
// it, if any. At most one pair per trick is open (not yet defended).
type TablePair struct {
	Attack   Card
	Defend   Card
	Defended bool
}

// GameState is the complete, perfect-information state of a Durak game.
// Transitions happen only through Apply, which copies the state; a value is
// never mutated in place once handed out.
type GameState struct {
	Hands    [][]Card // sorted per player, indexed by seat
	Deck     []Card   // draw from the front; the back card fixed the trump
	Discard  []Card
	Table    []TablePair
	Trump    Suit
	Attacker int
	Defender int
	Phase    Phase
	Diverted bool // a diversion already happened this trick
	Loser    int  // valid in PhaseOver; NoPlayer on a draw
}

// NewGame shuffles and deals a fresh game for players seated 0..numPlayers-1.
// The bottom card fixes the trump suit; a deck with an ace on the bottom is
// reshuffled. The first trick starts with seat firstAttacker attacking.
func NewGame(numPlayers, firstAttacker int, rng *rand.Rand) *GameState {
	if numPlayers < 2 || numPlayers > 6 {
		panic("game: need between 2 and 6 players")
	}
	if firstAttacker < 0 || firstAttacker >= numPlayers {
		panic("game: first attacker out of range")
	}

	deck := NewDeck()
	for {
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
		if deck[len(deck)-1].Rank != Ace {
			break
		}
	}

	gs := &GameState{
		Hands: make([][]Card, numPlayers),
		Deck:  deck,
		Trump: deck[len(deck)-1].Suit,
		Loser: NoPlayer,
	}
	for p := 0; p < numPlayers; p++ {
		gs.fillHand(p)
	}
	gs.newTrick(firstAttacker)
	return gs
}

// NumPlayers returns the number of seats in the game.
func (gs *GameState) NumPlayers() int {
	return len(gs.Hands)
}

// PlayerToAct returns the seat that must act, or NoPlayer when terminal.
func (gs *GameState) PlayerToAct() int {
	switch gs.Phase {
	case PhaseAttack:
		return gs.Attacker
	case PhaseDefend:
		return gs.Defender
	default:
		return NoPlayer
	}
}

// IsTerminal reports whether the game has ended.
func (gs *GameState) IsTerminal() bool {
	return gs.Phase == PhaseOver
}

// WinnerOrder ranks the seats of a terminal state: everyone who escaped in
// seat order first, the durak last. On a draw nobody is ranked last.
func (gs *GameState) WinnerOrder() []int {
	if !gs.IsTerminal() {
		panic("game: winner order of a non-terminal state")
	}
	order := make([]int, 0, gs.NumPlayers())
	for p := 0; p < gs.NumPlayers(); p++ {
		if p != gs.Loser {
			order = append(order, p)
		}
	}
	if gs.Loser != NoPlayer {
		order = append(order, gs.Loser)
	}
	return order
}

// Copy returns a deep copy of the state.
func (gs *GameState) Copy() *GameState {
	hands := make([][]Card, len(gs.Hands))
	for p, hand := range gs.Hands {
		hands[p] = append([]Card(nil), hand...)
	}
	return &GameState{
		Hands:    hands,
		Deck:     append([]Card(nil), gs.Deck...),
		Discard:  append([]Card(nil), gs.Discard...),
		Table:    append([]TablePair(nil), gs.Table...),
		Trump:    gs.Trump,
		Attacker: gs.Attacker,
		Defender: gs.Defender,
		Phase:    gs.Phase,
		Diverted: gs.Diverted,
		Loser:    gs.Loser,
	}
}

// openPair returns the index of the single undefended pair, or -1.
func (gs *GameState) openPair() int {
	for i := len(gs.Table) - 1; i >= 0; i-- {
		if !gs.Table[i].Defended {
			return i
		}
	}
	return -1
}

// defendedCount counts the fully beaten pairs of the current trick.
func (gs *GameState) defendedCount() int {
	n := 0
	for _, pair := range gs.Table {
		if pair.Defended {
			n++
		}
	}
	return n
}

// tableRanks collects the ranks on the table; follow-up attacks must match one.
func (gs *GameState) tableRanks() map[Rank]bool {
	ranks := make(map[Rank]bool, len(gs.Table)*2)
	for _, pair := range gs.Table {
		ranks[pair.Attack.Rank] = true
		if pair.Defended {
			ranks[pair.Defend.Rank] = true
		}
	}
	return ranks
}

// fillHand draws for player p until the hand holds HandSize cards or the
// deck is exhausted.
func (gs *GameState) fillHand(p int) {
	for len(gs.Hands[p]) < HandSize && len(gs.Deck) > 0 {
		card := gs.Deck[0]
		gs.Deck = gs.Deck[1:]
		gs.Hands[p] = insertCard(gs.Hands[p], card)
	}
}

// drawAll refills every hand after a trick, attacker first, defender last,
// remaining seats in between in seat order.
func (gs *GameState) drawAll() {
	n := gs.NumPlayers()
	for i := 0; i < n; i++ {
		p := (gs.Attacker + i) % n
		if p != gs.Defender {
			gs.fillHand(p)
		}
	}
	gs.fillHand(gs.Defender)
}

// active reports whether seat p still participates: it holds cards or can
// still draw some.
func (gs *GameState) active(p int) bool {
	return len(gs.Hands[p]) > 0 || len(gs.Deck) > 0
}

// newTrick assigns trick roles starting the search for an attacker at seat
// start, or ends the game when at most one seat remains active.
func (gs *GameState) newTrick(start int) {
	n := gs.NumPlayers()
	activeSeats := make([]int, 0, n)
	for i := 0; i < n; i++ {
		p := (start + i) % n
		if gs.active(p) {
			activeSeats = append(activeSeats, p)
		}
	}

	gs.Table = nil
	gs.Diverted = false

	switch len(activeSeats) {
	case 0:
		// Everyone shed their last card simultaneously: a draw.
		gs.Phase = PhaseOver
		gs.Loser = NoPlayer
	case 1:
		gs.Phase = PhaseOver
		gs.Loser = activeSeats[0]
	default:
		gs.Attacker = activeSeats[0]
		gs.Defender = activeSeats[1]
		gs.Phase = PhaseAttack
	}
}

// insertCard keeps hands sorted so action enumeration is deterministic.
func insertCard(hand []Card, card Card) []Card {
	i := sort.Search(len(hand), func(i int) bool {
		return hand[i].order() >= card.order()
	})
	hand = append(hand, Card{})
	copy(hand[i+1:], hand[i:])
	hand[i] = card
	return hand
}

// removeCard removes one copy of card, reporting whether it was present.
func removeCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			return append(hand[:i:i], hand[i+1:]...), true
		}
	}
	return hand, false
}
