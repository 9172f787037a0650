package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/PoojanJaviya/chess-pairing/pairing"
	"github.com/PoojanJaviya/chess-pairing/repositories"
)

type RoundState string

const (
	StateNoRound        RoundState = "no_round"
	StateRoundOpen      RoundState = "open"
	StateReadyToAdvance RoundState = "ready_to_advance"
)

// RoundStatus describes where the tournament sits in the round cycle.
type RoundStatus struct {
	Round        int        `json:"round"`
	State        RoundState `json:"state"`
	PendingCount int        `json:"pending_count"`
}

// DeriveRoundState computes the round gate from the latest round number and
// its pending playable-match count. A bye never counts as pending.
func DeriveRoundState(latestRound, pendingCount int) RoundState {
	switch {
	case latestRound == 0:
		return StateNoRound
	case pendingCount > 0:
		return StateRoundOpen
	default:
		return StateReadyToAdvance
	}
}

type RoundService interface {
	Status(ctx context.Context) (*RoundStatus, error)
	// GenerateNextRound produces and stores the next round's pairings:
	// random for round one, Swiss for every round after. Byes are awarded
	// their point inside the same transaction. Fails with ErrRoundStillOpen
	// while the current round has pending results.
	GenerateNextRound(ctx context.Context) ([]models.RoundPairing, error)
	// ConcludeRound forces the latest round's pending playable matches to
	// 0-0, scoring no points, so the next round can be generated.
	ConcludeRound(ctx context.Context) (int64, error)
	CurrentPairings(ctx context.Context) ([]models.RoundPairing, error)
}

type roundService struct {
	db         repositories.Database
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	ledger     *ScoreLedger
	hub        *pairing.Hub
	rng        *rand.Rand
	logger     *slog.Logger
}

func NewRoundService(
	db repositories.Database,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	ledger *ScoreLedger,
	hub *pairing.Hub,
	rng *rand.Rand,
	logger *slog.Logger,
) RoundService {
	return &roundService{
		db:         db,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		ledger:     ledger,
		hub:        hub,
		rng:        rng,
		logger:     logger,
	}
}

func (s *roundService) Status(ctx context.Context) (*RoundStatus, error) {
	latest, err := s.matchRepo.LatestRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest round: %w", err)
	}

	pending := 0
	if latest > 0 {
		pending, err = s.matchRepo.CountPending(ctx, latest)
		if err != nil {
			return nil, fmt.Errorf("failed to count pending matches for round %d: %w", latest, err)
		}
	}

	return &RoundStatus{
		Round:        latest,
		State:        DeriveRoundState(latest, pending),
		PendingCount: pending,
	}, nil
}

func (s *roundService) GenerateNextRound(ctx context.Context) ([]models.RoundPairing, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	status, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}
	if status.State == StateRoundOpen {
		return nil, fmt.Errorf("%w: round %d has %d pending", ErrRoundStillOpen, status.Round, status.PendingCount)
	}

	var history models.MatchHistory
	if status.Round > 0 {
		history, err = s.matchRepo.PastPairs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load match history: %w", err)
		}
	}

	pairings, err := pairing.NextRound(players, history, status.Round, s.rng)
	if err != nil {
		if errors.Is(err, pairing.ErrNotEnoughPlayers) {
			return nil, ErrNotEnoughPlayers
		}
		return nil, fmt.Errorf("failed to generate pairings: %w", err)
	}

	newRound := status.Round + 1
	if err := s.storeRound(ctx, newRound, pairings); err != nil {
		return nil, err
	}

	stored, err := s.matchRepo.ListPairingsByRound(ctx, newRound)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored pairings for round %d: %w", newRound, err)
	}

	s.logger.Info("round generated",
		slog.Int("round", newRound),
		slog.Int("boards", len(stored)),
	)
	if s.hub != nil {
		s.hub.BroadcastEvent(pairing.EventPairingsGenerated, stored)
	}
	return stored, nil
}

// storeRound writes a generated round and its bye award in one transaction.
func (s *roundService) storeRound(ctx context.Context, round int, pairings []pairing.Pairing) error {
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

	for _, p := range pairings {
		match := &models.Match{
			Round:     round,
			Player1ID: p.Player1ID,
			Player2ID: p.Player2ID,
			Result:    models.ResultPending,
		}
		if txErr = s.matchRepo.Create(ctx, tx, match); txErr != nil {
			return txErr
		}
		// A bye is settled at creation: the full point is awarded now and
		// the row never counts toward pending.
		if p.IsBye() {
			if txErr = s.ledger.AwardBye(ctx, tx, p.Player1ID); txErr != nil {
				return txErr
			}
		}
	}

	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit round %d: %w", round, txErr)
	}
	return nil
}

func (s *roundService) ConcludeRound(ctx context.Context) (int64, error) {
	latest, err := s.matchRepo.LatestRound(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read latest round: %w", err)
	}
	if latest == 0 {
		return 0, ErrNoRoundToConclude
	}

	forced, err := s.matchRepo.ConcludePending(ctx, s.db, latest)
	if err != nil {
		return 0, fmt.Errorf("failed to conclude round %d: %w", latest, err)
	}

	s.logger.Info("round concluded", slog.Int("round", latest), slog.Int64("forced", forced))
	if s.hub != nil {
		s.hub.BroadcastEvent(pairing.EventRoundConcluded, map[string]interface{}{
			"round":  latest,
			"forced": forced,
		})
	}
	return forced, nil
}

func (s *roundService) CurrentPairings(ctx context.Context) ([]models.RoundPairing, error) {
	latest, err := s.matchRepo.LatestRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest round: %w", err)
	}
	if latest == 0 {
		return []models.RoundPairing{}, nil
	}
	return s.matchRepo.ListPairingsByRound(ctx, latest)
}
