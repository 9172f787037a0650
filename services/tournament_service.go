package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PoojanJaviya/chess-pairing/pairing"
	"github.com/PoojanJaviya/chess-pairing/repositories"
	"github.com/PoojanJaviya/chess-pairing/storage"
)

type TournamentService interface {
	// Reset clears all players and matches and restarts numbering.
	Reset(ctx context.Context) error
	// Archive uploads the final standings CSV to object storage, then resets
	// the tournament. Fails with ErrArchiveUnavailable when no uploader is
	// configured.
	Archive(ctx context.Context) (*storage.UploadResult, error)
}

type tournamentService struct {
	db         repositories.Database
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	standings  StandingsService
	uploader   storage.FileUploader
	hub        *pairing.Hub
	logger     *slog.Logger
}

func NewTournamentService(
	db repositories.Database,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	uploader storage.FileUploader,
	hub *pairing.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:         db,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		standings:  standings,
		uploader:   uploader,
		hub:        hub,
		logger:     logger,
	}
}

func (s *tournamentService) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
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

	if txErr = s.matchRepo.DeleteAll(ctx, tx); txErr != nil {
		return fmt.Errorf("failed to clear matches: %w", txErr)
	}
	if txErr = s.playerRepo.DeleteAll(ctx, tx); txErr != nil {
		return fmt.Errorf("failed to clear players: %w", txErr)
	}
	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit reset: %w", txErr)
	}

	s.logger.Info("tournament reset")
	if s.hub != nil {
		s.hub.BroadcastEvent(pairing.EventTournamentReset, nil)
	}
	return nil
}

func (s *tournamentService) Archive(ctx context.Context) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrArchiveUnavailable
	}

	var buf bytes.Buffer
	if err := s.standings.WriteCSV(ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to render final standings: %w", err)
	}

	key := fmt.Sprintf("archives/standings-%s.csv", time.Now().UTC().Format("20060102-150405"))
	result, err := s.uploader.Upload(ctx, key, "text/csv", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to upload archive: %w", err)
	}
	s.logger.Info("standings archived", slog.String("key", result.Key), slog.String("location", result.Location))

	if err := s.Reset(ctx); err != nil {
		return nil, err
	}
	return result, nil
}
