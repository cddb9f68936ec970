package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// InformationSet is one player's view of a game state: the own hand verbatim,
// everyone else's hand size only, the deck size only, and the public zones.
type InformationSet struct {
	Observer  int
	Hand      []Card
	HandSizes []int
	DeckSize  int
	Discard   []Card
	Table     []TablePair
	Trump     Suit
	Attacker  int
	Defender  int
	Phase     Phase
	Diverted  bool
}

// Observe projects the state onto what the observer is allowed to know.
func Observe(gs *GameState, observer int) *InformationSet {
	sizes := make([]int, gs.NumPlayers())
	for p, hand := range gs.Hands {
		sizes[p] = len(hand)
	}
	return &InformationSet{
		Observer:  observer,
		Hand:      append([]Card(nil), gs.Hands[observer]...),
		HandSizes: sizes,
		DeckSize:  len(gs.Deck),
		Discard:   append([]Card(nil), gs.Discard...),
		Table:     append([]TablePair(nil), gs.Table...),
		Trump:     gs.Trump,
		Attacker:  gs.Attacker,
		Defender:  gs.Defender,
		Phase:     gs.Phase,
		Diverted:  gs.Diverted,
	}
}

// PlayerToAct returns the seat that must act, or NoPlayer when terminal.
func (is *InformationSet) PlayerToAct() int {
	switch is.Phase {
	case PhaseAttack:
		return is.Attacker
	case PhaseDefend:
		return is.Defender
	default:
		return NoPlayer
	}
}

// LegalActions enumerates the observer's legal actions. They depend only on
// the own hand, the table and the other players' hand sizes, so the observer
// can compute them without determinizing.
func (is *InformationSet) LegalActions() []Action {
	if is.Observer != is.PlayerToAct() {
		return nil
	}
	// The rules consult hidden hands only for their size, so placeholder
	// cards stand in for them.
	gs := &GameState{
		Hands:    make([][]Card, len(is.HandSizes)),
		Table:    is.Table,
		Trump:    is.Trump,
		Attacker: is.Attacker,
		Defender: is.Defender,
		Phase:    is.Phase,
		Diverted: is.Diverted,
	}
	for p, size := range is.HandSizes {
		if p == is.Observer {
			gs.Hands[p] = is.Hand
		} else {
			gs.Hands[p] = make([]Card, size)
		}
	}
	return gs.LegalActions(is.Observer)
}

// Determinize samples a complete state consistent with the information set:
// the hidden cards are distributed uniformly at random over the other hands
// and the deck, matching the published sizes exactly. The sample is a pure
// function of the rng stream. A hidden-card accounting mismatch returns
// ErrInconsistentInformationSet.
func (is *InformationSet) Determinize(rng *rand.Rand) (*GameState, error) {
	if len(is.Hand) != is.HandSizes[is.Observer] {
		return nil, fmt.Errorf("%w: observer holds %d cards, published size is %d",
			ErrInconsistentInformationSet, len(is.Hand), is.HandSizes[is.Observer])
	}

	visible := make(map[Card]bool, DeckSize)
	for _, c := range is.Hand {
		visible[c] = true
	}
	for _, c := range is.Discard {
		visible[c] = true
	}
	for _, pair := range is.Table {
		visible[pair.Attack] = true
		if pair.Defended {
			visible[pair.Defend] = true
		}
	}

	hidden := make([]Card, 0, DeckSize-len(visible))
	for _, c := range NewDeck() {
		if !visible[c] {
			hidden = append(hidden, c)
		}
	}

	slots := is.DeckSize
	for p, size := range is.HandSizes {
		if p != is.Observer {
			slots += size
		}
	}
	if len(hidden) != slots {
		return nil, fmt.Errorf("%w: %d hidden cards for %d slots",
			ErrInconsistentInformationSet, len(hidden), slots)
	}

	rng.Shuffle(len(hidden), func(i, j int) {
		hidden[i], hidden[j] = hidden[j], hidden[i]
	})

	gs := &GameState{
		Hands:    make([][]Card, len(is.HandSizes)),
		Discard:  append([]Card(nil), is.Discard...),
		Table:    append([]TablePair(nil), is.Table...),
		Trump:    is.Trump,
		Attacker: is.Attacker,
		Defender: is.Defender,
		Phase:    is.Phase,
		Diverted: is.Diverted,
		Loser:    NoPlayer,
	}
	for p, size := range is.HandSizes {
		if p == is.Observer {
			gs.Hands[p] = append([]Card(nil), is.Hand...)
			continue
		}
		hand := []Card(nil)
		for _, c := range hidden[:size] {
			hand = insertCard(hand, c)
		}
		gs.Hands[p] = hand
		hidden = hidden[size:]
	}
	gs.Deck = append([]Card(nil), hidden...)
	return gs, nil
}
