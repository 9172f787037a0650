package pairing

import (
	"math/rand"
	"sort"

	"github.com/PoojanJaviya/chess-pairing/models"
)

// SwissRound pairs players by score group for rounds two and up.
//
// Players are bucketed by current score and each bucket is sorted by rating
// descending. Buckets are processed from the highest score down; a player who
// cannot find a fresh opponent in their bucket floats into the next one.
// After the last bucket, anyone still unpaired forms the leftover pool: with
// an odd pool the first member takes the bye, and the rest are paired
// consecutively even if that repeats an earlier matchup. The search is
// greedy and order-sensitive, not globally optimal.
func SwissRound(players []models.Player, history models.MatchHistory) ([]Pairing, error) {
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	groups := make(map[float64][]models.Player)
	for _, p := range players {
		groups[p.Score] = append(groups[p.Score], p)
	}
	scores := make([]float64, 0, len(groups))
	for s := range groups {
		scores = append(scores, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	pairings := make([]Pairing, 0, len(players)/2+1)
	var carry []models.Player

	for _, score := range scores {
		group := groups[score]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Rating > group[j].Rating
		})

		// Floaters from higher groups are tried before the group itself.
		working := append(carry, group...)
		carry = nil

		for len(working) > 0 {
			p1 := working[0]
			idx := findOpponent(p1, working[1:], history)
			if idx < 0 {
				carry = append(carry, p1)
				working = working[1:]
				continue
			}
			p2 := working[idx+1]
			pairings = append(pairings, pairOf(p1.ID, p2.ID))
			working = append(working[1:idx+1], working[idx+2:]...)
		}
	}

	// Leftover pool: rematch avoidance has been exhausted for these players,
	// so consecutive pairing here may repeat a matchup.
	if len(carry)%2 != 0 {
		pairings = append(pairings, byeOf(carry[0].ID))
		carry = carry[1:]
	}
	for i := 0; i+1 < len(carry); i += 2 {
		pairings = append(pairings, pairOf(carry[i].ID, carry[i+1].ID))
	}

	return pairings, nil
}

// NextRound dispatches between the random first round and Swiss pairing.
// roundsPlayed is the number of rounds already generated.
func NextRound(players []models.Player, history models.MatchHistory, roundsPlayed int, rng *rand.Rand) ([]Pairing, error) {
	if roundsPlayed == 0 {
		return FirstRound(players, rng)
	}
	return SwissRound(players, history)
}
