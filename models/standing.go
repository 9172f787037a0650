package models

// StandingRow is the view type produced by the standings calculation. It is
// deliberately distinct from Player so stored records stay untouched by
// presentation-time fields.
type StandingRow struct {
	Rank     int     `json:"rank"`
	PlayerID int     `json:"sr_no"`
	Name     string  `json:"name"`
	Rating   int     `json:"rating"`
	Score    float64 `json:"score"`
	Tiebreak float64 `json:"tiebreak"`
}
