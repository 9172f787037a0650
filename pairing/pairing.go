// Package pairing generates round pairings for a Swiss-system tournament:
// a random first round and greedy score-group pairing for every round after.
package pairing

import (
	"errors"

	"github.com/PoojanJaviya/chess-pairing/models"
)

// ErrNotEnoughPlayers is returned when a round is requested for fewer than
// two players.
var ErrNotEnoughPlayers = errors.New("at least two players are required to generate pairings")

// Pairing is a single generated board. Player2ID == nil means Player1
// receives a bye.
type Pairing struct {
	Player1ID int
	Player2ID *int
}

func (p Pairing) IsBye() bool {
	return p.Player2ID == nil
}

func pairOf(a, b int) Pairing {
	return Pairing{Player1ID: a, Player2ID: &b}
}

func byeOf(a int) Pairing {
	return Pairing{Player1ID: a}
}

// findOpponent scans candidates in order for the first player that p1 has not
// yet faced. It returns the index of that player, or -1 when every candidate
// is a rematch. Absence of an opponent is a normal outcome (the player floats
// down), not an error.
func findOpponent(p1 models.Player, candidates []models.Player, history models.MatchHistory) int {
	for i, p2 := range candidates {
		if !history.Contains(p1.ID, p2.ID) {
			return i
		}
	}
	return -1
}
