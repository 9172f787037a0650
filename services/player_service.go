package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/PoojanJaviya/chess-pairing/repositories"
)

type PlayerService interface {
	// Register adds a player to the roster. Names are unique
	// case-insensitively; the rating must be supplied and is immutable after
	// registration.
	Register(ctx context.Context, name string, rating *int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) Register(ctx context.Context, name string, rating *int) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if rating == nil {
		return nil, ErrPlayerRatingRequired
	}

	player := &models.Player{Name: name, Rating: *rating}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNameConflict, name)
		}
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}
