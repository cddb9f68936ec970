package engine

/* spec:
- a seeded random-vs-random game reaches a terminal state within the move cap
- the result names the losing player, or marks a draw with no loser
- pairwise records: the loser lost to everyone, everyone else drew
- a failing player surfaces as a wrapped error
*/

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"durak/game"
	"durak/player"
)

func randomPlayers(n int, rng *rand.Rand) []player.Player {
	players := make([]player.Player, n)
	for i := range players {
		players[i] = player.NewRandom(fmt.Sprintf("random-%d", i), rng)
	}
	return players
}

func TestRunTerminates(t *testing.T) {
	for _, numPlayers := range []int{2, 3, 4} {
		t.Run(fmt.Sprintf("%d players", numPlayers), func(t *testing.T) {
			for seed := uint64(1); seed <= 10; seed++ {
				rng := rand.New(rand.NewSource(seed))
				e := Local(randomPlayers(numPlayers, rng), int(seed)%numPlayers, rng)

				result, err := e.Run()
				require.NoError(t, err, "seed %d", seed)
				require.True(t, e.State.IsTerminal())
				require.Positive(t, result.Moves)
				require.LessOrEqual(t, result.Moves, MaxMoves)
				if result.Draw {
					require.Empty(t, result.Loser)
				} else {
					require.Contains(t, result.Loser, "random-")
				}
			}
		})
	}
}

func TestRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	e := Local(randomPlayers(3, rng), 0, rng)

	result, err := e.Run()
	require.NoError(t, err)
	require.Len(t, result.Records, 3, "one record per seat pair")

	for _, rec := range result.Records {
		switch {
		case result.Draw:
			require.Equal(t, 0.5, rec.Outcome)
		case rec.PlayerA == result.Loser:
			require.Equal(t, 0.0, rec.Outcome, "%s lost to %s", rec.PlayerA, rec.PlayerB)
		case rec.PlayerB == result.Loser:
			require.Equal(t, 1.0, rec.Outcome, "%s beat %s", rec.PlayerA, rec.PlayerB)
		default:
			require.Equal(t, 0.5, rec.Outcome, "%s and %s both survived", rec.PlayerA, rec.PlayerB)
		}
	}
}

func TestRunWrapsPlayerError(t *testing.T) {
	cause := errors.New("front-end gone")
	broken := player.Func{
		PlayerName: "broken",
		Choose: func(*game.InformationSet) (game.Action, error) {
			return game.Action{}, cause
		},
	}

	rng := rand.New(rand.NewSource(1))
	e := Local([]player.Player{broken, broken}, 0, rng)

	_, err := e.Run()
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "broken")
}

func TestRunRejectsIllegalPlay(t *testing.T) {
	cheater := player.Func{
		PlayerName: "cheater",
		Choose: func(*game.InformationSet) (game.Action, error) {
			return game.Action{Kind: game.Pass}, nil // never legal on an empty table
		},
	}

	rng := rand.New(rand.NewSource(1))
	e := Local([]player.Player{cheater, cheater}, 0, rng)

	_, err := e.Run()
	require.ErrorIs(t, err, game.ErrIllegalAction)
}

func TestLocalRejectsBadSeatCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	require.Panics(t, func() { Local(randomPlayers(1, rng), 0, rng) })
	require.Panics(t, func() { Local(randomPlayers(7, rng), 0, rng) })
}
