package solve_service

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
)

var errStoreDown = errors.New("store down")

type solveKey struct {
	userID    string
	problemID string
}

type fakeUser struct {
	username string
	counters Counters
	active   time.Time
}

// fakeLedger keeps everything in maps and restores a snapshot when the
// transaction callback fails
type fakeLedger struct {
	problems       map[string]problem_service.Problem
	users          map[string]fakeUser
	solved         map[solveKey]SolveRecord
	failOn         string
	// InsertSolved reports a conflicting row that GetSolved did not see
	insertConflict bool
	txCalls        int
	writes         int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		problems: map[string]problem_service.Problem{},
		users:    map[string]fakeUser{},
		solved:   map[solveKey]SolveRecord{},
	}
}

func (f *fakeLedger) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	f.txCalls++
	problems := maps.Clone(f.problems)
	users := maps.Clone(f.users)
	solved := maps.Clone(f.solved)
	if err := fn(f); err != nil {
		f.problems, f.users, f.solved = problems, users, solved
		return err
	}
	return nil
}

func (f *fakeLedger) fail(op string) error {
	if f.failOn == op {
		return errors.Join(bot_errors.ErrPersistenceFailed, errStoreDown)
	}
	return nil
}

func (f *fakeLedger) EnsureProblem(_ context.Context, p problem_service.Problem) (problem_service.Problem, error) {
	if err := f.fail("EnsureProblem"); err != nil {
		return problem_service.Problem{}, err
	}
	if stored, ok := f.problems[p.ID]; ok {
		return stored, nil
	}
	f.writes++
	f.problems[p.ID] = p
	return p, nil
}

func (f *fakeLedger) UpsertUser(_ context.Context, userID, username string, at time.Time) error {
	if err := f.fail("UpsertUser"); err != nil {
		return err
	}
	f.writes++
	u := f.users[userID]
	u.username, u.active = username, at
	f.users[userID] = u
	return nil
}

func (f *fakeLedger) GetSolved(_ context.Context, userID, problemID string) (SolveRecord, bool, error) {
	if err := f.fail("GetSolved"); err != nil {
		return SolveRecord{}, false, err
	}
	r, ok := f.solved[solveKey{userID, problemID}]
	return r, ok, nil
}

func (f *fakeLedger) InsertSolved(_ context.Context, r SolveRecord) (bool, error) {
	if err := f.fail("InsertSolved"); err != nil {
		return false, err
	}
	key := solveKey{r.UserID, r.ProblemID}
	if _, ok := f.solved[key]; ok || f.insertConflict {
		return false, nil
	}
	f.writes++
	f.solved[key] = r
	return true, nil
}

func (f *fakeLedger) DeleteSolved(_ context.Context, userID, problemID string) (bool, error) {
	if err := f.fail("DeleteSolved"); err != nil {
		return false, err
	}
	key := solveKey{userID, problemID}
	if _, ok := f.solved[key]; !ok {
		return false, nil
	}
	f.writes++
	delete(f.solved, key)
	return true, nil
}

func (f *fakeLedger) ApplyDelta(
	_ context.Context,
	userID string,
	difficulty problem_service.Difficulty,
	delta int32,
	at time.Time,
) (Counters, error) {
	if err := f.fail("ApplyDelta"); err != nil {
		return Counters{}, err
	}
	f.writes++
	u := f.users[userID]
	clamp := func(v int32) int32 { return max(v+delta, 0) }
	u.counters.Total = clamp(u.counters.Total)
	switch difficulty.Bucket() {
	case "easy":
		u.counters.Easy = clamp(u.counters.Easy)
	case "medium":
		u.counters.Medium = clamp(u.counters.Medium)
	case "hard":
		u.counters.Hard = clamp(u.counters.Hard)
	}
	u.active = at
	f.users[userID] = u
	return u.counters, nil
}

func (f *fakeLedger) counters(userID string) Counters {
	return f.users[userID].counters
}

// shadow of one user's state, used to check the ledger invariants
func (f *fakeLedger) solvedCount(userID string) (total, easy, medium, hard int32) {
	for key := range f.solved {
		if key.userID != userID {
			continue
		}
		total++
		switch f.problems[key.problemID].Difficulty.Bucket() {
		case "easy":
			easy++
		case "medium":
			medium++
		case "hard":
			hard++
		}
	}
	return
}

type recordingInvalidator struct {
	invalidated []string
}

func (r *recordingInvalidator) InvalidateUserStats(userID string) {
	r.invalidated = append(r.invalidated, userID)
}
