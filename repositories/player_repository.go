package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	// List returns the roster ordered by score descending, rating descending.
	List(ctx context.Context) ([]models.Player, error)
	// AddScore adds delta to a player's score. The only write path for scores.
	AddScore(ctx context.Context, exec SQLExecutor, id int, delta float64) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, rating)
		VALUES ($1, $2)
		RETURNING sr_no, points`

	err := r.db.QueryRowContext(ctx, query, player.Name, player.Rating).
		Scan(&player.ID, &player.Score)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return ErrPlayerNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT sr_no, name, rating, points
		FROM players
		WHERE sr_no = $1`
	return r.scanPlayer(ctx, query, id)
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `
		SELECT sr_no, name, rating, points
		FROM players
		WHERE lower(name) = lower($1)`
	return r.scanPlayer(ctx, query, name)
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT sr_no, name, rating, points
		FROM players
		ORDER BY points DESC, rating DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := rows.Scan(&p.ID, &p.Name, &p.Rating, &p.Score); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) AddScore(ctx context.Context, exec SQLExecutor, id int, delta float64) error {
	query := `UPDATE players SET points = points + $1 WHERE sr_no = $2`

	result, err := exec.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update score for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	// RESTART IDENTITY so sr_no and table_no numbering begin again after a
	// full tournament reset.
	_, err := exec.ExecContext(ctx, `TRUNCATE players RESTART IDENTITY CASCADE`)
	return err
}

func (r *postgresPlayerRepository) scanPlayer(ctx context.Context, query string, args ...interface{}) (*models.Player, error) {
	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&player.ID,
		&player.Name,
		&player.Rating,
		&player.Score,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}
