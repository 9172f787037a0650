package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/PoojanJaviya/chess-pairing/pairing"
	"github.com/PoojanJaviya/chess-pairing/repositories"
)

// recordableResults are the codes a director may set on a playable match.
var recordableResults = map[models.MatchResult]bool{
	models.ResultPlayer1Win: true,
	models.ResultPlayer2Win: true,
	models.ResultDraw:       true,
	models.ResultDoubleZero: true,
}

type MatchService interface {
	// RecordResult sets or corrects a match result. A correction first
	// reverses the score deltas of the stored result, then applies the new
	// ones, in a single transaction, so repeated corrections net out to the
	// final result alone.
	RecordResult(ctx context.Context, tableNo int, newResult models.MatchResult) (*models.Match, error)
}

type matchService struct {
	db        repositories.Database
	matchRepo repositories.MatchRepository
	ledger    *ScoreLedger
	hub       *pairing.Hub
	logger    *slog.Logger
}

func NewMatchService(
	db repositories.Database,
	matchRepo repositories.MatchRepository,
	ledger *ScoreLedger,
	hub *pairing.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:        db,
		matchRepo: matchRepo,
		ledger:    ledger,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) RecordResult(ctx context.Context, tableNo int, newResult models.MatchResult) (*models.Match, error) {
	if !recordableResults[newResult] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResultCode, newResult)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr))
			}
		}
	}()

	// The stored result is read under a row lock so the reversal half of the
	// correction negates exactly what this transaction sees.
	match, txErr := s.matchRepo.GetByTableNumberForUpdate(ctx, tx, tableNo)
	if txErr != nil {
		if errors.Is(txErr, repositories.ErrMatchNotFound) {
			txErr = fmt.Errorf("%w: table %d", ErrMatchNotFound, tableNo)
			return nil, txErr
		}
		txErr = fmt.Errorf("failed to load match %d: %w", tableNo, txErr)
		return nil, txErr
	}
	if match.IsBye() {
		txErr = ErrByeMatchResult
		return nil, txErr
	}

	// A stored result outside the known set is data corruption; abort before
	// touching any score.
	deltas, txErr := CorrectionDeltas(match, match.Result, newResult)
	if txErr != nil {
		return nil, txErr
	}

	if txErr = s.ledger.Apply(ctx, tx, deltas); txErr != nil {
		return nil, txErr
	}
	if txErr = s.matchRepo.UpdateResult(ctx, tx, tableNo, newResult); txErr != nil {
		return nil, txErr
	}
	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit result for table %d: %w", tableNo, txErr)
	}

	previous := match.Result
	match.Result = newResult

	s.logger.Info("result recorded",
		slog.Int("table_no", tableNo),
		slog.String("previous", string(previous)),
		slog.String("result", string(newResult)),
	)
	if s.hub != nil {
		s.hub.BroadcastEvent(pairing.EventResultRecorded, match)
	}
	return match, nil
}
