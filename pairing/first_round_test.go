package pairing

import (
	"math/rand"
	"testing"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/stretchr/testify/require"
)

func testRoster(ratings ...int) []models.Player {
	players := make([]models.Player, len(ratings))
	for i, r := range ratings {
		players[i] = models.Player{ID: i + 1, Name: string(rune('A' + i)), Rating: r}
	}
	return players
}

// collectIDs asserts that no player appears twice and returns the set of
// paired ids.
func collectIDs(t *testing.T, pairings []Pairing) map[int]bool {
	t.Helper()
	seen := make(map[int]bool)
	for _, p := range pairings {
		require.False(t, seen[p.Player1ID], "player %d paired twice", p.Player1ID)
		seen[p.Player1ID] = true
		if p.Player2ID != nil {
			require.False(t, seen[*p.Player2ID], "player %d paired twice", *p.Player2ID)
			seen[*p.Player2ID] = true
		}
	}
	return seen
}

func TestFirstRoundShape(t *testing.T) {
	for n := 2; n <= 9; n++ {
		players := make([]models.Player, n)
		for i := range players {
			players[i] = models.Player{ID: i + 1, Rating: 1000 + i}
		}

		pairings, err := FirstRound(players, rand.New(rand.NewSource(int64(n))))
		require.NoError(t, err)

		boards := 0
		byes := 0
		for _, p := range pairings {
			if p.IsBye() {
				byes++
			} else {
				boards++
			}
		}
		require.Equal(t, n/2, boards, "boards for %d players", n)
		require.Equal(t, n%2, byes, "byes for %d players", n)

		seen := collectIDs(t, pairings)
		require.Len(t, seen, n, "every player must appear exactly once")
	}
}

func TestFirstRoundByeGoesToLowestRated(t *testing.T) {
	players := testRoster(2000, 1900, 1800, 1700, 1600)

	// The bye must land on the lowest rating no matter how the shuffle
	// falls out.
	for seed := int64(0); seed < 100; seed++ {
		pairings, err := FirstRound(players, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		var bye *Pairing
		for i := range pairings {
			if pairings[i].IsBye() {
				bye = &pairings[i]
			}
		}
		require.NotNil(t, bye, "seed %d produced no bye", seed)
		require.Equal(t, 5, bye.Player1ID, "seed %d gave the bye to the wrong player", seed)
	}
}

func TestFirstRoundNotEnoughPlayers(t *testing.T) {
	_, err := FirstRound(testRoster(1500), rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrNotEnoughPlayers)

	_, err = FirstRound(nil, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestFirstRoundDeterministicForSeed(t *testing.T) {
	players := testRoster(2000, 1900, 1800, 1700, 1600, 1500)

	first, err := FirstRound(players, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := FirstRound(players, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	require.Equal(t, first, second)
}
