package models

type MatchResult string

const (
	ResultPending    MatchResult = "pending"
	ResultPlayer1Win MatchResult = "1-0"
	ResultPlayer2Win MatchResult = "0-1"
	ResultDraw       MatchResult = "0.5-0.5"
	// ResultDoubleZero is the forced result applied to matches still pending
	// when a round is concluded. Neither side scores.
	ResultDoubleZero MatchResult = "0-0"
)

// Match is a single board in a round. Player2ID == nil marks a bye; bye rows
// keep ResultPending and are excluded from pending/finished queries.
type Match struct {
	TableNumber int         `json:"table_no"`
	Round       int         `json:"round"`
	Player1ID   int         `json:"player1_sr_no"`
	Player2ID   *int        `json:"player2_sr_no,omitempty"`
	Result      MatchResult `json:"result"`
}

// IsBye reports whether the match has no second player.
func (m *Match) IsBye() bool {
	return m.Player2ID == nil
}

// RoundPairing is a match joined with player names, as shown on the
// pairings board.
type RoundPairing struct {
	TableNumber int         `json:"table_no"`
	Round       int         `json:"round"`
	Player1ID   int         `json:"player1_sr_no"`
	Player1Name string      `json:"player1_name"`
	Player2ID   *int        `json:"player2_sr_no,omitempty"`
	Player2Name *string     `json:"player2_name,omitempty"`
	Result      MatchResult `json:"result"`
}

// PairKey identifies an unordered pair of players.
type PairKey struct {
	LowID  int
	HighID int
}

func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{LowID: a, HighID: b}
}

// MatchHistory is the set of unordered player pairs that have already met in
// a non-bye match, regardless of result. Used to avoid rematches when pairing.
type MatchHistory map[PairKey]struct{}

func (h MatchHistory) Add(a, b int) {
	h[NewPairKey(a, b)] = struct{}{}
}

func (h MatchHistory) Contains(a, b int) bool {
	_, ok := h[NewPairKey(a, b)]
	return ok
}
