package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/PoojanJaviya/chess-pairing/repositories"
)

// In-memory repository stand-ins. The exec argument is ignored; these fakes
// have no transactions.

// fakeDB hands out no-op transactions so services can drive their
// transactional paths against the in-memory repositories.
type fakeDB struct{}

func (fakeDB) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeDB) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (fakeDB) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (fakeDB) BeginTx(context.Context, *sql.TxOptions) (repositories.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (fakeTx) Commit() error                                                    { return nil }
func (fakeTx) Rollback() error                                                  { return nil }

type fakePlayerRepo struct {
	players []models.Player
	nextID  int
}

func newFakePlayerRepo(players ...models.Player) *fakePlayerRepo {
	r := &fakePlayerRepo{nextID: 1}
	for _, p := range players {
		p.ID = r.nextID
		r.nextID++
		r.players = append(r.players, p)
	}
	return r
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, player.Name) {
			return repositories.ErrPlayerNameConflict
		}
	}
	player.ID = r.nextID
	r.nextID++
	r.players = append(r.players, *player)
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	for i := range r.players {
		if r.players[i].ID == id {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) GetByName(_ context.Context, name string) (*models.Player, error) {
	for i := range r.players {
		if strings.EqualFold(r.players[i].Name, name) {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	out := make([]models.Player, len(r.players))
	copy(out, r.players)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Rating > out[j].Rating
	})
	return out, nil
}

func (r *fakePlayerRepo) AddScore(_ context.Context, _ repositories.SQLExecutor, id int, delta float64) error {
	for i := range r.players {
		if r.players[i].ID == id {
			r.players[i].Score += delta
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) DeleteAll(_ context.Context, _ repositories.SQLExecutor) error {
	r.players = nil
	r.nextID = 1
	return nil
}

type fakeMatchRepo struct {
	matches   []models.Match
	nextTable int
}

func newFakeMatchRepo(matches ...models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{nextTable: 1}
	for _, m := range matches {
		m.TableNumber = r.nextTable
		r.nextTable++
		r.matches = append(r.matches, m)
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	match.TableNumber = r.nextTable
	r.nextTable++
	r.matches = append(r.matches, *match)
	return nil
}

func (r *fakeMatchRepo) GetByTableNumber(_ context.Context, tableNo int) (*models.Match, error) {
	for i := range r.matches {
		if r.matches[i].TableNumber == tableNo {
			m := r.matches[i]
			return &m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) GetByTableNumberForUpdate(ctx context.Context, _ repositories.SQLExecutor, tableNo int) (*models.Match, error) {
	return r.GetByTableNumber(ctx, tableNo)
}

func (r *fakeMatchRepo) ListPairingsByRound(_ context.Context, round int) ([]models.RoundPairing, error) {
	pairings := make([]models.RoundPairing, 0)
	for _, m := range r.matches {
		if m.Round != round {
			continue
		}
		rp := models.RoundPairing{
			TableNumber: m.TableNumber,
			Round:       m.Round,
			Player1ID:   m.Player1ID,
			Player1Name: fmt.Sprintf("player-%d", m.Player1ID),
			Player2ID:   m.Player2ID,
			Result:      m.Result,
		}
		if m.Player2ID != nil {
			name := fmt.Sprintf("player-%d", *m.Player2ID)
			rp.Player2Name = &name
		}
		pairings = append(pairings, rp)
	}
	return pairings, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, tableNo int, result models.MatchResult) error {
	for i := range r.matches {
		if r.matches[i].TableNumber == tableNo {
			r.matches[i].Result = result
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) LatestRound(_ context.Context) (int, error) {
	latest := 0
	for _, m := range r.matches {
		if m.Round > latest {
			latest = m.Round
		}
	}
	return latest, nil
}

func (r *fakeMatchRepo) CountPending(_ context.Context, round int) (int, error) {
	count := 0
	for _, m := range r.matches {
		if m.Round == round && m.Result == models.ResultPending && m.Player2ID != nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeMatchRepo) ListFinished(_ context.Context) ([]models.Match, error) {
	finished := make([]models.Match, 0)
	for _, m := range r.matches {
		if m.Result != models.ResultPending && m.Player2ID != nil {
			finished = append(finished, m)
		}
	}
	return finished, nil
}

func (r *fakeMatchRepo) PastPairs(_ context.Context) (models.MatchHistory, error) {
	history := make(models.MatchHistory)
	for _, m := range r.matches {
		if m.Player2ID != nil {
			history.Add(m.Player1ID, *m.Player2ID)
		}
	}
	return history, nil
}

func (r *fakeMatchRepo) ConcludePending(_ context.Context, _ repositories.SQLExecutor, round int) (int64, error) {
	var forced int64
	for i := range r.matches {
		m := &r.matches[i]
		if m.Round == round && m.Result == models.ResultPending && m.Player2ID != nil {
			m.Result = models.ResultDoubleZero
			forced++
		}
	}
	return forced, nil
}

func (r *fakeMatchRepo) DeleteAll(_ context.Context, _ repositories.SQLExecutor) error {
	r.matches = nil
	r.nextTable = 1
	return nil
}
