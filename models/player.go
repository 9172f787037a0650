package models

// Player is a tournament entrant. Score is a non-negative multiple of 0.5 and
// is only ever changed through the score ledger.
type Player struct {
	ID     int     `json:"sr_no"`
	Name   string  `json:"name"`
	Rating int     `json:"rating"`
	Score  float64 `json:"score"`
}
