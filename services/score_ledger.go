package services

import (
	"context"
	"fmt"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/PoojanJaviya/chess-pairing/repositories"
)

// ScoreDelta is one player's share of a result's point value.
type ScoreDelta struct {
	PlayerID int
	Delta    float64
}

// ScoreLedger is the only component that mutates player scores. Every score
// change is expressed as a delta so that a result correction can reverse the
// previous result exactly before applying the new one.
type ScoreLedger struct {
	playerRepo repositories.PlayerRepository
}

func NewScoreLedger(playerRepo repositories.PlayerRepository) *ScoreLedger {
	return &ScoreLedger{playerRepo: playerRepo}
}

// ResultDeltas maps a result code onto the per-player deltas it implies for
// the match. Pending and forced 0-0 score nothing. An unrecognized code
// returns ErrUnknownStoredResult.
func ResultDeltas(match *models.Match, result models.MatchResult) ([]ScoreDelta, error) {
	var d1, d2 float64
	switch result {
	case models.ResultPlayer1Win:
		d1 = 1
	case models.ResultPlayer2Win:
		d2 = 1
	case models.ResultDraw:
		d1, d2 = 0.5, 0.5
	case models.ResultPending, models.ResultDoubleZero:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoredResult, result)
	}

	deltas := make([]ScoreDelta, 0, 2)
	if d1 != 0 {
		deltas = append(deltas, ScoreDelta{PlayerID: match.Player1ID, Delta: d1})
	}
	if d2 != 0 && match.Player2ID != nil {
		deltas = append(deltas, ScoreDelta{PlayerID: *match.Player2ID, Delta: d2})
	}
	return deltas, nil
}

// CorrectionDeltas is the reversal half of the correction protocol: the exact
// negation of what the stored result awarded, followed by the forward deltas
// of the new result. Applying the returned sequence leaves each player's
// score as if only the new result had ever been recorded.
func CorrectionDeltas(match *models.Match, oldResult, newResult models.MatchResult) ([]ScoreDelta, error) {
	reverse, err := ResultDeltas(match, oldResult)
	if err != nil {
		return nil, err
	}
	forward, err := ResultDeltas(match, newResult)
	if err != nil {
		return nil, err
	}

	deltas := make([]ScoreDelta, 0, len(reverse)+len(forward))
	for _, d := range reverse {
		deltas = append(deltas, ScoreDelta{PlayerID: d.PlayerID, Delta: -d.Delta})
	}
	deltas = append(deltas, forward...)
	return deltas, nil
}

// Apply writes the deltas through the player repository, using the caller's
// executor so a correction's reverse and forward halves share a transaction.
func (l *ScoreLedger) Apply(ctx context.Context, exec repositories.SQLExecutor, deltas []ScoreDelta) error {
	for _, d := range deltas {
		if err := l.playerRepo.AddScore(ctx, exec, d.PlayerID, d.Delta); err != nil {
			return fmt.Errorf("failed to apply score delta %+v: %w", d, err)
		}
	}
	return nil
}

// AwardBye grants the full point a bye is worth.
func (l *ScoreLedger) AwardBye(ctx context.Context, exec repositories.SQLExecutor, playerID int) error {
	return l.playerRepo.AddScore(ctx, exec, playerID, 1)
}
