package game

import "fmt"

// Suit of a playing card. The order matches the traditional Durak glyphs.
type Suit uint8

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

var suitGlyphs = [...]string{"♣", "♠", "♥", "♦"}

func (s Suit) String() string {
	if int(s) < len(suitGlyphs) {
		return suitGlyphs[s]
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// Rank of a playing card, six through ace: Durak uses a short deck.
type Rank uint8

const (
	Six Rank = iota
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = [...]string{"6", "7", "8", "9", "10", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// Card is an immutable playing card compared by value.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Beats reports whether c defends against other given the trump suit.
func (c Card) Beats(other Card, trump Suit) bool {
	if c.Suit == other.Suit {
		return c.Rank > other.Rank
	}
	return c.Suit == trump
}

// order gives a total order on cards, used for stable action orderings.
func (c Card) order() int {
	return int(c.Suit)*len(rankNames) + int(c.Rank)
}

// DeckSize is the total number of cards in play.
const DeckSize = 36

// HandSize is the number of cards each hand is refilled to while the deck
// lasts.
const HandSize = 6

// NewDeck returns the 36 cards of a Durak deck in canonical order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Clubs; s <= Diamonds; s++ {
		for r := Six; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}
