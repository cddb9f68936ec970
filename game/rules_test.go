package game

/* spec:
- attack: fresh trick -> whole hand; follow-up -> rank-matching cards + Pass;
  defender out of cards -> Pass only
- defend: higher same suit or trump + Take; divert only with a trump of the
  attacked rank, before anything is defended, at most once per trick,
  defender-only (assumption: the attacker never diverts)
- apply: moves cards between zones, rejects illegal actions unchanged
- resolution: Pass discards and hands the attack to the defender; Take feeds
  the defender and keeps the attack on the attacker's side; both refill
  attacker-first
- terminal: empty deck + one non-empty hand -> sole loser; all empty -> draw
- conservation: 36 cards across hands/deck/table/discard after every apply
*/

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// twoPlayerState builds a trick-start state with sorted hands.
func twoPlayerState(attacker, defender []Card, deck []Card, trump Suit) *GameState {
	gs := &GameState{
		Hands: make([][]Card, 2),
		Deck:  deck,
		Trump: trump,
		Loser: NoPlayer,
		Phase: PhaseAttack,
	}
	for _, c := range attacker {
		gs.Hands[0] = insertCard(gs.Hands[0], c)
	}
	for _, c := range defender {
		gs.Hands[1] = insertCard(gs.Hands[1], c)
	}
	gs.Attacker = 0
	gs.Defender = 1
	return gs
}

func kinds(acts []Action) map[ActionKind]int {
	counts := make(map[ActionKind]int)
	for _, a := range acts {
		counts[a.Kind]++
	}
	return counts
}

func TestAttackerActions(t *testing.T) {
	t.Run("fresh trick offers the whole hand and no pass", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Six}, {Clubs, Ten}},
			[]Card{{Hearts, Seven}},
			nil, Spades)

		acts := gs.LegalActions(0)

		require.Len(t, acts, 2)
		require.Equal(t, 2, kinds(acts)[Attack])
	})

	t.Run("follow-up attacks must match a rank on the table", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Six}, {Clubs, Six}, {Clubs, Ten}},
			[]Card{{Hearts, Seven}, {Hearts, Eight}},
			nil, Spades)
		gs.Table = []TablePair{{Attack: Card{Diamonds, Six}, Defend: Card{Diamonds, Seven}, Defended: true}}

		acts := gs.LegalActions(0)

		require.ElementsMatch(t, []Action{
			{Kind: Attack, Card: Card{Clubs, Six}},
			{Kind: Attack, Card: Card{Hearts, Six}},
			{Kind: Pass},
		}, acts, "only sixes and sevens are on the table")
	})

	t.Run("defender out of cards leaves pass only", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Six}},
			nil,
			nil, Spades)
		gs.Table = []TablePair{{Attack: Card{Hearts, Nine}, Defend: Card{Hearts, Ten}, Defended: true}}

		acts := gs.LegalActions(0)

		require.Equal(t, []Action{{Kind: Pass}}, acts)
	})

	t.Run("other seats have no legal actions", func(t *testing.T) {
		gs := twoPlayerState([]Card{{Hearts, Six}}, []Card{{Hearts, Seven}}, nil, Spades)

		require.Nil(t, gs.LegalActions(1))
	})
}

func TestDefenderActions(t *testing.T) {
	openTrick := func(attack Card, defender []Card, attackerLeft []Card) *GameState {
		gs := twoPlayerState(attackerLeft, defender, nil, Spades)
		gs.Table = []TablePair{{Attack: attack}}
		gs.Phase = PhaseDefend
		return gs
	}

	t.Run("beating cards plus take", func(t *testing.T) {
		gs := openTrick(Card{Hearts, Nine},
			[]Card{{Hearts, Ten}, {Hearts, Six}, {Spades, Six}, {Clubs, Ace}},
			[]Card{{Diamonds, Six}})

		acts := gs.LegalActions(1)

		require.ElementsMatch(t, []Action{
			{Kind: Defend, Card: Card{Spades, Six}},
			{Kind: Defend, Card: Card{Hearts, Ten}},
			{Kind: Take},
		}, acts)
	})

	t.Run("trump attack needs a higher trump", func(t *testing.T) {
		gs := openTrick(Card{Spades, Ten},
			[]Card{{Spades, Jack}, {Spades, Six}, {Hearts, Ace}},
			[]Card{{Diamonds, Six}})

		acts := gs.LegalActions(1)

		require.ElementsMatch(t, []Action{
			{Kind: Defend, Card: Card{Spades, Jack}},
			{Kind: Take},
		}, acts)
	})

	t.Run("divert with the trump of the attacked rank", func(t *testing.T) {
		gs := openTrick(Card{Hearts, Nine},
			[]Card{{Spades, Nine}, {Clubs, Six}},
			[]Card{{Diamonds, Six}})

		acts := gs.LegalActions(1)

		require.Contains(t, acts, Action{Kind: DivertWithTrump, Card: Card{Spades, Nine}})
		require.Contains(t, acts, Action{Kind: Defend, Card: Card{Spades, Nine}},
			"the trump of the attacked rank also simply beats it")
	})

	t.Run("no divert after a defended pair", func(t *testing.T) {
		gs := openTrick(Card{Hearts, Nine},
			[]Card{{Spades, Nine}},
			[]Card{{Diamonds, Six}})
		gs.Table = append([]TablePair{
			{Attack: Card{Clubs, Nine}, Defend: Card{Clubs, Ten}, Defended: true},
		}, gs.Table...)

		require.Zero(t, kinds(gs.LegalActions(1))[DivertWithTrump])
	})

	t.Run("no second divert in a trick", func(t *testing.T) {
		gs := openTrick(Card{Hearts, Nine},
			[]Card{{Spades, Nine}},
			[]Card{{Diamonds, Six}})
		gs.Diverted = true

		require.Zero(t, kinds(gs.LegalActions(1))[DivertWithTrump])
	})

	t.Run("no divert onto an empty-handed attacker", func(t *testing.T) {
		gs := openTrick(Card{Hearts, Nine},
			[]Card{{Spades, Nine}},
			nil)

		require.Zero(t, kinds(gs.LegalActions(1))[DivertWithTrump])
	})

	t.Run("divert is defender-only", func(t *testing.T) {
		// Assumption flagged per the rules: the attacker never has actions,
		// diverting included, while the defender must act.
		gs := openTrick(Card{Hearts, Nine},
			[]Card{{Spades, Nine}},
			[]Card{{Spades, Nine}})

		require.Nil(t, gs.LegalActions(0))
	})
}

func TestApplyRejectsIllegalActions(t *testing.T) {
	gs := twoPlayerState([]Card{{Hearts, Six}}, []Card{{Hearts, Seven}}, nil, Spades)
	snapshot := gs.Copy()

	for _, action := range []Action{
		{Kind: Defend, Card: Card{Hearts, Seven}}, // defender is not to act
		{Kind: Attack, Card: Card{Clubs, Ace}},    // card not in hand
		{Kind: Take},
		{Kind: Pass}, // nothing on the table
	} {
		next, err := gs.Apply(0, action)
		require.ErrorIs(t, err, ErrIllegalAction, "action %s", action)
		require.Nil(t, next)
	}

	require.Equal(t, snapshot, gs, "a rejected action must leave the state unchanged")
}

func TestApplyTrickFlow(t *testing.T) {
	t.Run("pass discards the trick and hands over the attack", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Six}, {Clubs, Ten}},
			[]Card{{Hearts, Seven}, {Clubs, Jack}},
			nil, Spades)

		gs, err := gs.Apply(0, Action{Kind: Attack, Card: Card{Hearts, Six}})
		require.NoError(t, err)
		require.Equal(t, PhaseDefend, gs.Phase)
		require.Equal(t, []TablePair{{Attack: Card{Hearts, Six}}}, gs.Table)

		gs, err = gs.Apply(1, Action{Kind: Defend, Card: Card{Hearts, Seven}})
		require.NoError(t, err)
		require.Equal(t, PhaseAttack, gs.Phase)
		require.True(t, gs.Table[0].Defended)

		gs, err = gs.Apply(0, Action{Kind: Pass})
		require.NoError(t, err)
		require.ElementsMatch(t, []Card{{Hearts, Six}, {Hearts, Seven}}, gs.Discard)
		require.Empty(t, gs.Table)
		require.Equal(t, 1, gs.Attacker, "the defender earned the attack")
		require.Equal(t, 0, gs.Defender)
	})

	t.Run("take feeds the defender and keeps the attacker attacking", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Six}, {Clubs, Ten}},
			[]Card{{Diamonds, Seven}, {Clubs, Jack}},
			nil, Spades)

		gs, err := gs.Apply(0, Action{Kind: Attack, Card: Card{Hearts, Six}})
		require.NoError(t, err)
		gs, err = gs.Apply(1, Action{Kind: Take})
		require.NoError(t, err)

		require.Empty(t, gs.Table)
		require.Empty(t, gs.Discard)
		require.ElementsMatch(t,
			[]Card{{Diamonds, Seven}, {Clubs, Jack}, {Hearts, Six}},
			gs.Hands[1])
		require.Equal(t, 0, gs.Attacker, "taking does not earn the attack")
	})

	t.Run("divert swaps the roles and keeps the shown trump in hand", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Nine}, {Clubs, Ten}},
			[]Card{{Spades, Nine}, {Clubs, Jack}},
			nil, Spades)

		gs, err := gs.Apply(0, Action{Kind: Attack, Card: Card{Hearts, Nine}})
		require.NoError(t, err)
		gs, err = gs.Apply(1, Action{Kind: DivertWithTrump, Card: Card{Spades, Nine}})
		require.NoError(t, err)

		require.True(t, gs.Diverted)
		require.Equal(t, 1, gs.Attacker)
		require.Equal(t, 0, gs.Defender)
		require.Equal(t, PhaseDefend, gs.Phase, "the open card still needs defending")
		require.Contains(t, gs.Hands[1], Card{Spades, Nine}, "the trump was shown, not played")
		require.Len(t, gs.Hands[1], 2)
	})

	t.Run("resolution refills the attacker first", func(t *testing.T) {
		deck := []Card{{Diamonds, Ace}, {Diamonds, King}, {Diamonds, Queen}}
		gs := twoPlayerState(
			[]Card{{Hearts, Six}, {Clubs, Ten}, {Clubs, Nine}, {Clubs, Eight}, {Clubs, Seven}, {Clubs, Six}},
			[]Card{{Hearts, Seven}, {Diamonds, Six}, {Diamonds, Seven}, {Diamonds, Eight}, {Diamonds, Nine}},
			deck, Spades)

		gs, err := gs.Apply(0, Action{Kind: Attack, Card: Card{Hearts, Six}})
		require.NoError(t, err)
		gs, err = gs.Apply(1, Action{Kind: Defend, Card: Card{Hearts, Seven}})
		require.NoError(t, err)
		gs, err = gs.Apply(0, Action{Kind: Pass})
		require.NoError(t, err)

		require.Contains(t, gs.Hands[0], Card{Diamonds, Ace},
			"the attacker of the resolved trick draws first")
		require.Contains(t, gs.Hands[1], Card{Diamonds, King})
		require.Contains(t, gs.Hands[1], Card{Diamonds, Queen})
		require.Empty(t, gs.Deck)
	})
}

func TestTerminal(t *testing.T) {
	t.Run("sole card holder is the durak", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Six}},
			[]Card{{Hearts, Seven}, {Spades, Eight}},
			nil, Spades)

		gs, err := gs.Apply(0, Action{Kind: Attack, Card: Card{Hearts, Six}})
		require.NoError(t, err)
		gs, err = gs.Apply(1, Action{Kind: Defend, Card: Card{Hearts, Seven}})
		require.NoError(t, err)
		gs, err = gs.Apply(0, Action{Kind: Pass})
		require.NoError(t, err)

		require.True(t, gs.IsTerminal())
		require.Equal(t, 1, gs.Loser)
		require.Equal(t, []int{0, 1}, gs.WinnerOrder())
	})

	t.Run("simultaneous empty hands draw", func(t *testing.T) {
		gs := twoPlayerState(
			[]Card{{Hearts, Six}},
			[]Card{{Hearts, Seven}},
			nil, Spades)

		gs, err := gs.Apply(0, Action{Kind: Attack, Card: Card{Hearts, Six}})
		require.NoError(t, err)
		gs, err = gs.Apply(1, Action{Kind: Defend, Card: Card{Hearts, Seven}})
		require.NoError(t, err)
		gs, err = gs.Apply(0, Action{Kind: Pass})
		require.NoError(t, err)

		require.True(t, gs.IsTerminal())
		require.Equal(t, NoPlayer, gs.Loser)
		require.Equal(t, []int{0, 1}, gs.WinnerOrder())
	})

	t.Run("no actions once terminal", func(t *testing.T) {
		gs := &GameState{Hands: make([][]Card, 2), Phase: PhaseOver, Loser: NoPlayer}

		require.Nil(t, gs.LegalActions(0))
		require.Nil(t, gs.LegalActions(1))
	})
}

func TestLegalActionsArePure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gs := NewGame(2, 0, rng)

	first := gs.LegalActions(gs.PlayerToAct())
	snapshot := gs.Copy()
	second := gs.LegalActions(gs.PlayerToAct())

	require.Equal(t, first, second, "repeated calls must yield identical action sets")
	require.Equal(t, snapshot, gs)
}

// countCards collects the multiset of cards across every zone.
func countCards(gs *GameState) map[Card]int {
	counts := make(map[Card]int)
	for _, hand := range gs.Hands {
		for _, c := range hand {
			counts[c]++
		}
	}
	for _, c := range gs.Deck {
		counts[c]++
	}
	for _, c := range gs.Discard {
		counts[c]++
	}
	for _, pair := range gs.Table {
		counts[pair.Attack]++
		if pair.Defended {
			counts[pair.Defend]++
		}
	}
	return counts
}

func TestCardConservation(t *testing.T) {
	full := make(map[Card]int, DeckSize)
	for _, c := range NewDeck() {
		full[c] = 1
	}

	for _, numPlayers := range []int{2, 3, 4} {
		rng := rand.New(rand.NewSource(42))
		gs := NewGame(numPlayers, 0, rng)
		require.Equal(t, full, countCards(gs))

		for moves := 0; !gs.IsTerminal() && moves < 2000; moves++ {
			p := gs.PlayerToAct()
			acts := gs.LegalActions(p)
			require.NotEmpty(t, acts, "a non-terminal actor must have actions")

			next, err := gs.Apply(p, acts[rng.Intn(len(acts))])
			require.NoError(t, err)
			gs = next

			require.Equal(t, full, countCards(gs),
				"every card exactly once across hands/deck/table/discard")
		}
		require.True(t, gs.IsTerminal(), "a random %d-player game should finish", numPlayers)
	}
}

func TestNewGame(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	gs := NewGame(3, 1, rng)

	for p := 0; p < 3; p++ {
		require.Len(t, gs.Hands[p], HandSize)
	}
	require.Len(t, gs.Deck, DeckSize-3*HandSize)
	require.Equal(t, gs.Deck[len(gs.Deck)-1].Suit, gs.Trump, "the bottom card fixes the trump")
	require.NotEqual(t, Ace, gs.Deck[len(gs.Deck)-1].Rank, "an ace on the bottom forces a redeal")
	require.Equal(t, 1, gs.Attacker)
	require.Equal(t, 2, gs.Defender)
	require.Equal(t, PhaseAttack, gs.Phase)
}
