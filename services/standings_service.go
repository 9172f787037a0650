package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/PoojanJaviya/chess-pairing/repositories"
	"golang.org/x/sync/errgroup"
)

type StandingsService interface {
	Compute(ctx context.Context) ([]models.StandingRow, error)
	WriteCSV(ctx context.Context, w io.Writer) error
}

type standingsService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewStandingsService(playerRepo repositories.PlayerRepository, matchRepo repositories.MatchRepository) StandingsService {
	return &standingsService{playerRepo: playerRepo, matchRepo: matchRepo}
}

func (s *standingsService) Compute(ctx context.Context) ([]models.StandingRow, error) {
	var (
		players  []models.Player
		finished []models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		finished, err = s.matchRepo.ListFinished(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings inputs: %w", err)
	}

	return ComputeStandings(players, finished), nil
}

// ComputeStandings ranks players by score, then Buchholz tiebreak, then
// rating; ties beyond that keep their input order.
//
// The tiebreak is a "live" Buchholz: for each player it sums the current
// scores of every opponent faced in a non-bye finished match, recomputed
// against present standings rather than frozen at game time. This diverges
// from the conventional definition on purpose; it is the behavior the
// tournament has always shown its players.
func ComputeStandings(players []models.Player, finished []models.Match) []models.StandingRow {
	scoreByID := make(map[int]float64, len(players))
	for _, p := range players {
		scoreByID[p.ID] = p.Score
	}

	tiebreak := make(map[int]float64, len(players))
	for _, m := range finished {
		if m.Player2ID == nil {
			continue
		}
		tiebreak[m.Player1ID] += scoreByID[*m.Player2ID]
		tiebreak[*m.Player2ID] += scoreByID[m.Player1ID]
	}

	rows := make([]models.StandingRow, len(players))
	for i, p := range players {
		rows[i] = models.StandingRow{
			PlayerID: p.ID,
			Name:     p.Name,
			Rating:   p.Rating,
			Score:    p.Score,
			Tiebreak: tiebreak[p.ID],
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if rows[i].Tiebreak != rows[j].Tiebreak {
			return rows[i].Tiebreak > rows[j].Tiebreak
		}
		return rows[i].Rating > rows[j].Rating
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func (s *standingsService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.Compute(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "name", "rating", "score", "buchholz"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.Name,
			strconv.Itoa(row.Rating),
			strconv.FormatFloat(row.Score, 'f', -1, 64),
			strconv.FormatFloat(row.Tiebreak, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
