package pairing

import (
	"math/rand"

	"github.com/PoojanJaviya/chess-pairing/models"
)

// FirstRound pairs a fresh roster at random. The players are shuffled and
// paired consecutively; with an odd roster the lowest-rated player (ties
// resolved by shuffle order) is moved to the end of the sequence so that the
// bye always lands on the lowest rating regardless of the shuffle.
func FirstRound(players []models.Player, rng *rand.Rand) ([]Pairing, error) {
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	shuffled := make([]models.Player, len(players))
	copy(shuffled, players)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled)%2 != 0 {
		lowest := 0
		for i, p := range shuffled {
			if p.Rating < shuffled[lowest].Rating {
				lowest = i
			}
		}
		low := shuffled[lowest]
		shuffled = append(shuffled[:lowest], shuffled[lowest+1:]...)
		shuffled = append(shuffled, low)
	}

	pairings := make([]Pairing, 0, (len(shuffled)+1)/2)
	for i := 0; i < len(shuffled); i += 2 {
		if i+1 < len(shuffled) {
			pairings = append(pairings, pairOf(shuffled[i].ID, shuffled[i+1].ID))
		} else {
			pairings = append(pairings, byeOf(shuffled[i].ID))
		}
	}
	return pairings, nil
}
