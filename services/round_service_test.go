package services

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func TestDeriveRoundState(t *testing.T) {
	cases := []struct {
		name    string
		latest  int
		pending int
		want    RoundState
	}{
		{name: "no round yet", latest: 0, pending: 0, want: StateNoRound},
		{name: "round open", latest: 1, pending: 2, want: StateRoundOpen},
		{name: "ready to advance", latest: 1, pending: 0, want: StateReadyToAdvance},
		{name: "later round open", latest: 4, pending: 1, want: StateRoundOpen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DeriveRoundState(tc.latest, tc.pending))
		})
	}
}

func newTestRoundService(playerRepo *fakePlayerRepo, matchRepo *fakeMatchRepo) RoundService {
	ledger := NewScoreLedger(playerRepo)
	rng := rand.New(rand.NewSource(1))
	return NewRoundService(fakeDB{}, playerRepo, matchRepo, ledger, nil, rng, quietLogger())
}

func TestRoundStatus(t *testing.T) {
	players := newFakePlayerRepo(
		models.Player{Name: "Anand", Rating: 2000},
		models.Player{Name: "Boris", Rating: 1900},
	)
	matches := newFakeMatchRepo(
		models.Match{Round: 1, Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultPending},
	)
	svc := newTestRoundService(players, matches)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, status.Round)
	require.Equal(t, StateRoundOpen, status.State)
	require.Equal(t, 1, status.PendingCount)
}

func TestRoundStatusIgnoresByeWhenCounting(t *testing.T) {
	players := newFakePlayerRepo(
		models.Player{Name: "Anand", Rating: 2000},
		models.Player{Name: "Boris", Rating: 1900},
		models.Player{Name: "Carla", Rating: 1800},
	)
	matches := newFakeMatchRepo(
		models.Match{Round: 1, Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultDraw},
		// The bye row stays pending but never gates the round.
		models.Match{Round: 1, Player1ID: 3, Result: models.ResultPending},
	)
	svc := newTestRoundService(players, matches)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateReadyToAdvance, status.State)
	require.Equal(t, 0, status.PendingCount)
}

func TestGenerateNextRoundStoresMatchesAndAwardsBye(t *testing.T) {
	players := newFakePlayerRepo(
		models.Player{Name: "Anand", Rating: 2000},
		models.Player{Name: "Boris", Rating: 1900},
		models.Player{Name: "Carla", Rating: 1800},
		models.Player{Name: "Dina", Rating: 1700},
		models.Player{Name: "Egon", Rating: 1600},
	)
	matches := newFakeMatchRepo()
	svc := newTestRoundService(players, matches)

	pairings, err := svc.GenerateNextRound(context.Background())
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	byes := 0
	for _, p := range pairings {
		require.Equal(t, 1, p.Round)
		require.Equal(t, models.ResultPending, p.Result)
		if p.Player2ID == nil {
			byes++
			require.Equal(t, 5, p.Player1ID, "first-round bye must fall to the lowest rating")
		}
	}
	require.Equal(t, 1, byes)

	// The bye's point is settled as part of round storage.
	byePlayer, err := players.GetByID(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 1.0, byePlayer.Score)
	for _, id := range []int{1, 2, 3, 4} {
		p, err := players.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Zero(t, p.Score)
	}

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, status.Round)
	require.Equal(t, StateRoundOpen, status.State)
	require.Equal(t, 2, status.PendingCount)
}

func TestGenerateNextRoundRejectsOpenRound(t *testing.T) {
	players := newFakePlayerRepo(
		models.Player{Name: "Anand", Rating: 2000},
		models.Player{Name: "Boris", Rating: 1900},
		models.Player{Name: "Carla", Rating: 1800},
		models.Player{Name: "Dina", Rating: 1700},
	)
	matches := newFakeMatchRepo(
		models.Match{Round: 1, Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultPlayer1Win},
		models.Match{Round: 1, Player1ID: 3, Player2ID: intPtr(4), Result: models.ResultPending},
	)
	svc := newTestRoundService(players, matches)

	_, err := svc.GenerateNextRound(context.Background())
	require.ErrorIs(t, err, ErrRoundStillOpen)
}

func TestGenerateNextRoundNotEnoughPlayers(t *testing.T) {
	players := newFakePlayerRepo(models.Player{Name: "Anand", Rating: 2000})
	svc := newTestRoundService(players, newFakeMatchRepo())

	_, err := svc.GenerateNextRound(context.Background())
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestConcludeRoundWithoutRound(t *testing.T) {
	players := newFakePlayerRepo(
		models.Player{Name: "Anand", Rating: 2000},
		models.Player{Name: "Boris", Rating: 1900},
	)
	svc := newTestRoundService(players, newFakeMatchRepo())

	_, err := svc.ConcludeRound(context.Background())
	require.ErrorIs(t, err, ErrNoRoundToConclude)
}

func TestConcludeRoundForcesPendingToDoubleZero(t *testing.T) {
	players := newFakePlayerRepo(
		models.Player{Name: "Anand", Rating: 2000, Score: 1},
		models.Player{Name: "Boris", Rating: 1900},
		models.Player{Name: "Carla", Rating: 1800, Score: 0.5},
		models.Player{Name: "Dina", Rating: 1700, Score: 0.5},
		models.Player{Name: "Egon", Rating: 1600},
		models.Player{Name: "Fatima", Rating: 1500},
	)
	matches := newFakeMatchRepo(
		models.Match{Round: 1, Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultPlayer1Win},
		models.Match{Round: 1, Player1ID: 3, Player2ID: intPtr(4), Result: models.ResultDraw},
		models.Match{Round: 1, Player1ID: 5, Player2ID: intPtr(6), Result: models.ResultPending},
	)
	svc := newTestRoundService(players, matches)

	forced, err := svc.ConcludeRound(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), forced)

	m, err := matches.GetByTableNumber(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, models.ResultDoubleZero, m.Result)

	// Forcing scores nothing for either side.
	for _, id := range []int{5, 6} {
		p, err := players.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Zero(t, p.Score)
	}

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateReadyToAdvance, status.State)
}
