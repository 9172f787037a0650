package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PoojanJaviya/chess-pairing/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// Create inserts one board of a round and fills in the assigned table
	// number. Called in bulk, inside the round-generation transaction.
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByTableNumber(ctx context.Context, tableNo int) (*models.Match, error)
	// GetByTableNumberForUpdate reads a match with a row lock so a result
	// correction reverses the stored result as of its own transaction.
	GetByTableNumberForUpdate(ctx context.Context, exec SQLExecutor, tableNo int) (*models.Match, error)
	// ListPairingsByRound returns a round's boards joined with player names.
	ListPairingsByRound(ctx context.Context, round int) ([]models.RoundPairing, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, tableNo int, result models.MatchResult) error
	// LatestRound returns the highest round number present, 0 when no round
	// has been generated.
	LatestRound(ctx context.Context) (int, error)
	// CountPending counts playable (non-bye) matches of a round still pending.
	CountPending(ctx context.Context, round int) (int, error)
	// ListFinished returns every non-bye match with a recorded result,
	// including forced 0-0 conclusions.
	ListFinished(ctx context.Context) ([]models.Match, error)
	// PastPairs returns the set of unordered player pairs from all non-bye
	// matches across all rounds, regardless of result.
	PastPairs(ctx context.Context) (models.MatchHistory, error)
	// ConcludePending forces every pending non-bye match of the round to 0-0
	// and returns how many were forced.
	ConcludePending(ctx context.Context, exec SQLExecutor, round int) (int64, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (round, player1_sr_no, player2_sr_no, result)
		VALUES ($1, $2, $3, $4)
		RETURNING table_no`

	err := exec.QueryRowContext(ctx, query,
		match.Round,
		match.Player1ID,
		match.Player2ID,
		match.Result,
	).Scan(&match.TableNumber)
	if err != nil {
		return fmt.Errorf("failed to insert match for round %d: %w", match.Round, err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByTableNumber(ctx context.Context, tableNo int) (*models.Match, error) {
	query := `
		SELECT table_no, round, player1_sr_no, player2_sr_no, result
		FROM matches
		WHERE table_no = $1`
	return scanMatchRow(ctx, r.db, query, tableNo)
}

func (r *postgresMatchRepository) GetByTableNumberForUpdate(ctx context.Context, exec SQLExecutor, tableNo int) (*models.Match, error) {
	query := `
		SELECT table_no, round, player1_sr_no, player2_sr_no, result
		FROM matches
		WHERE table_no = $1
		FOR UPDATE`
	return scanMatchRow(ctx, exec, query, tableNo)
}

func scanMatchRow(ctx context.Context, exec SQLExecutor, query string, tableNo int) (*models.Match, error) {
	match := &models.Match{}
	err := exec.QueryRowContext(ctx, query, tableNo).Scan(
		&match.TableNumber,
		&match.Round,
		&match.Player1ID,
		&match.Player2ID,
		&match.Result,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListPairingsByRound(ctx context.Context, round int) ([]models.RoundPairing, error) {
	query := `
		SELECT m.table_no, m.round, m.player1_sr_no, p1.name, m.player2_sr_no, p2.name, m.result
		FROM matches m
		JOIN players p1 ON m.player1_sr_no = p1.sr_no
		LEFT JOIN players p2 ON m.player2_sr_no = p2.sr_no
		WHERE m.round = $1
		ORDER BY m.table_no`

	rows, err := r.db.QueryContext(ctx, query, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairings := make([]models.RoundPairing, 0)
	for rows.Next() {
		var rp models.RoundPairing
		if scanErr := rows.Scan(
			&rp.TableNumber,
			&rp.Round,
			&rp.Player1ID,
			&rp.Player1Name,
			&rp.Player2ID,
			&rp.Player2Name,
			&rp.Result,
		); scanErr != nil {
			return nil, scanErr
		}
		pairings = append(pairings, rp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return pairings, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, tableNo int, result models.MatchResult) error {
	query := `UPDATE matches SET result = $1 WHERE table_no = $2`

	res, err := exec.ExecContext(ctx, query, result, tableNo)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRepository) LatestRound(ctx context.Context) (int, error) {
	var latest sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(round) FROM matches`).Scan(&latest)
	if err != nil {
		return 0, err
	}
	if !latest.Valid {
		return 0, nil
	}
	return int(latest.Int64), nil
}

func (r *postgresMatchRepository) CountPending(ctx context.Context, round int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM matches
		WHERE round = $1 AND result = $2 AND player2_sr_no IS NOT NULL`

	var count int
	err := r.db.QueryRowContext(ctx, query, round, models.ResultPending).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresMatchRepository) ListFinished(ctx context.Context) ([]models.Match, error) {
	query := `
		SELECT table_no, round, player1_sr_no, player2_sr_no, result
		FROM matches
		WHERE result <> $1 AND player2_sr_no IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query, models.ResultPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(&m.TableNumber, &m.Round, &m.Player1ID, &m.Player2ID, &m.Result); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) PastPairs(ctx context.Context) (models.MatchHistory, error) {
	query := `
		SELECT player1_sr_no, player2_sr_no
		FROM matches
		WHERE player2_sr_no IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make(models.MatchHistory)
	for rows.Next() {
		var p1, p2 int
		if scanErr := rows.Scan(&p1, &p2); scanErr != nil {
			return nil, scanErr
		}
		history.Add(p1, p2)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *postgresMatchRepository) ConcludePending(ctx context.Context, exec SQLExecutor, round int) (int64, error) {
	query := `
		UPDATE matches
		SET result = $1
		WHERE round = $2 AND result = $3 AND player2_sr_no IS NOT NULL`

	res, err := exec.ExecContext(ctx, query, models.ResultDoubleZero, round, models.ResultPending)
	if err != nil {
		return 0, err
	}
	forced, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return forced, nil
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	_, err := exec.ExecContext(ctx, `TRUNCATE matches RESTART IDENTITY`)
	return err
}
